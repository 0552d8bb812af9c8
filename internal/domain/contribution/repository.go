package contribution

import "context"

type ContributionRepository interface {
	// Upsert creates or replaces the config for (month, year).
	Upsert(ctx context.Context, cfg Config) (Config, error)
	GetByPeriod(ctx context.Context, month, year int) (Config, error)
	List(ctx context.Context) ([]Config, error)
}
