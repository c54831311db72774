package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/maplehr/payroll-backend-go/internal/domain/company"
	"github.com/maplehr/payroll-backend-go/internal/pkg/database"
)

type companyRepository struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.Repository {
	return &companyRepository{db: db}
}

const companyColumns = `
	id, name, remitter_frequency, default_vacation_rate,
	holiday_pay_by_default, created_at, updated_at
`

func scanCompany(row pgx.Row) (company.Company, error) {
	var c company.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.RemitterFrequency, &c.DefaultVacationRate,
		&c.HolidayPayByDefault, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := r.db.GetQuerier(ctx)

	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	c, err := scanCompany(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company: %w", err)
	}
	return c, nil
}

func (r *companyRepository) List(ctx context.Context) ([]company.Company, error) {
	q := r.db.GetQuerier(ctx)

	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []company.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (r *companyRepository) UpdateSettings(ctx context.Context, c company.Company) (company.Company, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		UPDATE companies SET
			remitter_frequency = $2, default_vacation_rate = $3,
			holiday_pay_by_default = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + companyColumns

	updated, err := scanCompany(q.QueryRow(ctx, query,
		c.ID, c.RemitterFrequency, c.DefaultVacationRate, c.HolidayPayByDefault,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to update company settings: %w", err)
	}
	return updated, nil
}
