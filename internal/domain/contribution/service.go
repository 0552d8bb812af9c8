package contribution

import "context"

type ContributionService interface {
	UpsertConfig(ctx context.Context, req UpsertConfigRequest) (ConfigResponse, error)
	GetConfig(ctx context.Context, month, year int) (ConfigResponse, error)
	ListConfigs(ctx context.Context) ([]ConfigResponse, error)
}
