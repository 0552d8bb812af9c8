package contribution

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/contribution"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/google/uuid"
)

type ContributionServiceImpl struct {
	contributionRepo contribution.ContributionRepository
}

func NewContributionService(contributionRepo contribution.ContributionRepository) contribution.ContributionService {
	return &ContributionServiceImpl{contributionRepo: contributionRepo}
}

func (s *ContributionServiceImpl) UpsertConfig(ctx context.Context, req contribution.UpsertConfigRequest) (contribution.ConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return contribution.ConfigResponse{}, err
	}

	cfg := req.ToConfig()
	cfg.ID = uuid.Must(uuid.NewV7()).String()

	saved, err := s.contributionRepo.Upsert(ctx, cfg)
	if err != nil {
		return contribution.ConfigResponse{}, err
	}

	slog.Info("Contribution config saved",
		"month", saved.Month,
		"year", saved.Year,
		"employee_rate", saved.EmployeeRate.String(),
		"employer_rate", saved.EmployerRate.String(),
		"brackets", len(saved.Brackets),
	)
	return contribution.ToResponse(saved), nil
}

func (s *ContributionServiceImpl) GetConfig(ctx context.Context, month, year int) (contribution.ConfigResponse, error) {
	if !validator.IsValidPeriod(month, year) {
		return contribution.ConfigResponse{}, validator.ValidationErrors{{Field: "period", Message: "month must be 1-12 and year 2000-2100"}}
	}

	cfg, err := s.contributionRepo.GetByPeriod(ctx, month, year)
	if err != nil {
		return contribution.ConfigResponse{}, err
	}
	return contribution.ToResponse(cfg), nil
}

func (s *ContributionServiceImpl) ListConfigs(ctx context.Context) ([]contribution.ConfigResponse, error) {
	configs, err := s.contributionRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]contribution.ConfigResponse, 0, len(configs))
	for _, c := range configs {
		responses = append(responses, contribution.ToResponse(c))
	}
	return responses, nil
}
