package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/maplehr/payroll-backend-go/internal/domain/yearend"
	"github.com/maplehr/payroll-backend-go/internal/pkg/database"
)

type yearEndRepository struct {
	db *database.DB
}

func NewYearEndRepository(db *database.DB) yearend.Repository {
	return &yearEndRepository{db: db}
}

const slipColumns = `
	id, company_id, employee_id, tax_year, amendment, employee_name, province,
	employment_income, pension, pension_supplementary, insurance, income_tax,
	pensionable_earnings, insurable_earnings, created_at
`

func scanSlip(row pgx.Row) (yearend.Slip, error) {
	var slip yearend.Slip
	err := row.Scan(
		&slip.ID, &slip.CompanyID, &slip.EmployeeID, &slip.TaxYear, &slip.Amendment,
		&slip.EmployeeName, &slip.Province,
		&slip.EmploymentIncome, &slip.Pension, &slip.PensionSupplementary,
		&slip.Insurance, &slip.IncomeTax,
		&slip.PensionableEarnings, &slip.InsurableEarnings,
		&slip.CreatedAt,
	)
	return slip, err
}

func (r *yearEndRepository) AppendSlip(ctx context.Context, slip yearend.Slip) (yearend.Slip, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		INSERT INTO yearend_slips (
			id, company_id, employee_id, tax_year, amendment, employee_name,
			province, employment_income, pension, pension_supplementary,
			insurance, income_tax, pensionable_earnings, insurable_earnings
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + slipColumns

	created, err := scanSlip(q.QueryRow(ctx, query,
		slip.ID, slip.CompanyID, slip.EmployeeID, slip.TaxYear, slip.Amendment,
		slip.EmployeeName, slip.Province,
		slip.EmploymentIncome, slip.Pension, slip.PensionSupplementary,
		slip.Insurance, slip.IncomeTax,
		slip.PensionableEarnings, slip.InsurableEarnings,
	))
	if err != nil {
		return yearend.Slip{}, fmt.Errorf("failed to append year-end slip: %w", err)
	}
	return created, nil
}

// LatestSlips keeps only the highest amendment per employee using a window
// over (employee_id) ordered by amendment.
func (r *yearEndRepository) LatestSlips(ctx context.Context, companyID string, taxYear int) ([]yearend.Slip, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		SELECT ` + slipColumns + ` FROM (
			SELECT *, ROW_NUMBER() OVER (
				PARTITION BY employee_id ORDER BY amendment DESC
			) AS rn
			FROM yearend_slips
			WHERE company_id = $1 AND tax_year = $2
		) latest
		WHERE rn = 1
		ORDER BY employee_name
	`

	rows, err := q.Query(ctx, query, companyID, taxYear)
	if err != nil {
		return nil, fmt.Errorf("failed to list year-end slips: %w", err)
	}
	defer rows.Close()

	var slips []yearend.Slip
	for rows.Next() {
		slip, err := scanSlip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan year-end slip: %w", err)
		}
		slips = append(slips, slip)
	}
	return slips, rows.Err()
}

func (r *yearEndRepository) LatestAmendment(ctx context.Context, companyID, employeeID string, taxYear int) (int, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		SELECT MAX(amendment)
		FROM yearend_slips
		WHERE company_id = $1 AND employee_id = $2 AND tax_year = $3
	`

	var amendment *int
	if err := q.QueryRow(ctx, query, companyID, employeeID, taxYear).Scan(&amendment); err != nil {
		return 0, fmt.Errorf("failed to get latest amendment: %w", err)
	}
	if amendment == nil {
		return 0, yearend.ErrSlipNotFound
	}
	return *amendment, nil
}

const summaryColumns = `
	id, company_id, tax_year, slip_count, total_income, total_pension,
	total_pension_supplementary, total_insurance, total_income_tax,
	total_remitted, reconciliation_difference, created_at
`

func scanSummary(row pgx.Row) (yearend.Summary, error) {
	var summary yearend.Summary
	err := row.Scan(
		&summary.ID, &summary.CompanyID, &summary.TaxYear, &summary.SlipCount,
		&summary.TotalIncome, &summary.TotalPension, &summary.TotalPensionSupplementary,
		&summary.TotalInsurance, &summary.TotalIncomeTax,
		&summary.TotalRemitted, &summary.ReconciliationDifference,
		&summary.CreatedAt,
	)
	return summary, err
}

func (r *yearEndRepository) UpsertSummary(ctx context.Context, summary yearend.Summary) (yearend.Summary, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		INSERT INTO yearend_summaries (
			id, company_id, tax_year, slip_count, total_income, total_pension,
			total_pension_supplementary, total_insurance, total_income_tax,
			total_remitted, reconciliation_difference
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (company_id, tax_year) DO UPDATE SET
			slip_count = EXCLUDED.slip_count,
			total_income = EXCLUDED.total_income,
			total_pension = EXCLUDED.total_pension,
			total_pension_supplementary = EXCLUDED.total_pension_supplementary,
			total_insurance = EXCLUDED.total_insurance,
			total_income_tax = EXCLUDED.total_income_tax,
			total_remitted = EXCLUDED.total_remitted,
			reconciliation_difference = EXCLUDED.reconciliation_difference
		RETURNING ` + summaryColumns

	saved, err := scanSummary(q.QueryRow(ctx, query,
		summary.ID, summary.CompanyID, summary.TaxYear, summary.SlipCount,
		summary.TotalIncome, summary.TotalPension, summary.TotalPensionSupplementary,
		summary.TotalInsurance, summary.TotalIncomeTax,
		summary.TotalRemitted, summary.ReconciliationDifference,
	))
	if err != nil {
		return yearend.Summary{}, fmt.Errorf("failed to upsert year-end summary: %w", err)
	}
	return saved, nil
}

func (r *yearEndRepository) GetSummary(ctx context.Context, companyID string, taxYear int) (yearend.Summary, error) {
	q := r.db.GetQuerier(ctx)

	query := `SELECT ` + summaryColumns + ` FROM yearend_summaries WHERE company_id = $1 AND tax_year = $2`

	summary, err := scanSummary(q.QueryRow(ctx, query, companyID, taxYear))
	if err != nil {
		if err == pgx.ErrNoRows {
			return yearend.Summary{}, yearend.ErrSlipNotFound
		}
		return yearend.Summary{}, fmt.Errorf("failed to get year-end summary: %w", err)
	}
	return summary, nil
}
