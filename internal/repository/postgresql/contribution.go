package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/contribution"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type contributionRepositoryImpl struct {
	db *database.DB
}

func NewContributionRepository(db *database.DB) contribution.ContributionRepository {
	return &contributionRepositoryImpl{db: db}
}

const contributionColumns = `id, month, year, minimum_wage, employee_rate, employer_rate, tax_brackets,
	standard_monthly_hours, standard_working_days, night_premium_rate, created_at, updated_at`

func scanContributionConfig(row pgx.Row) (contribution.Config, error) {
	var cfg contribution.Config
	var bracketsJSON []byte
	err := row.Scan(
		&cfg.ID, &cfg.Month, &cfg.Year, &cfg.MinimumWage, &cfg.EmployeeRate, &cfg.EmployerRate, &bracketsJSON,
		&cfg.StandardMonthlyHours, &cfg.StandardWorkingDays, &cfg.NightPremiumRate, &cfg.CreatedAt, &cfg.UpdatedAt,
	)
	if err != nil {
		return contribution.Config{}, err
	}
	if len(bracketsJSON) > 0 {
		if err := json.Unmarshal(bracketsJSON, &cfg.Brackets); err != nil {
			return contribution.Config{}, fmt.Errorf("failed to decode tax brackets: %w", err)
		}
	}
	return cfg, nil
}

func (r *contributionRepositoryImpl) Upsert(ctx context.Context, cfg contribution.Config) (contribution.Config, error) {
	q := GetQuerier(ctx, r.db)

	bracketsJSON, err := json.Marshal(cfg.Brackets)
	if err != nil {
		return contribution.Config{}, fmt.Errorf("failed to encode tax brackets: %w", err)
	}

	query := `
		INSERT INTO contribution_configs (
			id, month, year, minimum_wage, employee_rate, employer_rate, tax_brackets,
			standard_monthly_hours, standard_working_days, night_premium_rate
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (month, year) DO UPDATE SET
			minimum_wage = EXCLUDED.minimum_wage,
			employee_rate = EXCLUDED.employee_rate,
			employer_rate = EXCLUDED.employer_rate,
			tax_brackets = EXCLUDED.tax_brackets,
			standard_monthly_hours = EXCLUDED.standard_monthly_hours,
			standard_working_days = EXCLUDED.standard_working_days,
			night_premium_rate = EXCLUDED.night_premium_rate,
			updated_at = NOW()
		RETURNING ` + contributionColumns

	saved, err := scanContributionConfig(q.QueryRow(ctx, query,
		cfg.ID, cfg.Month, cfg.Year, cfg.MinimumWage, cfg.EmployeeRate, cfg.EmployerRate, bracketsJSON,
		cfg.StandardMonthlyHours, cfg.StandardWorkingDays, cfg.NightPremiumRate,
	))
	if err != nil {
		return contribution.Config{}, fmt.Errorf("failed to upsert contribution config: %w", err)
	}
	return saved, nil
}

func (r *contributionRepositoryImpl) GetByPeriod(ctx context.Context, month, year int) (contribution.Config, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + contributionColumns + ` FROM contribution_configs WHERE month = $1 AND year = $2`
	cfg, err := scanContributionConfig(q.QueryRow(ctx, query, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contribution.Config{}, contribution.ErrConfigNotFound
		}
		return contribution.Config{}, fmt.Errorf("failed to get contribution config: %w", err)
	}
	return cfg, nil
}

func (r *contributionRepositoryImpl) List(ctx context.Context) ([]contribution.Config, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+contributionColumns+` FROM contribution_configs ORDER BY year DESC, month DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list contribution configs: %w", err)
	}
	defer rows.Close()

	var configs []contribution.Config
	for rows.Next() {
		cfg, err := scanContributionConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contribution config: %w", err)
		}
		configs = append(configs, cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contribution configs: %w", err)
	}
	return configs, nil
}
