package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/maplehr/payroll-backend-go/internal/domain/employee"
	"github.com/maplehr/payroll-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, company_id, full_name, province, hire_date, termination_date,
	pay_group_id, vacation_rate,
	pension_exempt, pension_supplementary_exempt, insurance_exempt,
	holiday_pay_exempt,
	initial_ytd_tax_year, initial_ytd_pension, initial_ytd_pension_supplementary,
	initial_ytd_insurance,
	created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.FullName, &e.Province, &e.HireDate, &e.TerminationDate,
		&e.PayGroupID, &e.VacationRate,
		&e.PensionExempt, &e.PensionSupplementaryExempt, &e.InsuranceExempt,
		&e.HolidayPayExempt,
		&e.InitialYTD.TaxYear, &e.InitialYTD.Pension, &e.InitialYTD.PensionSupplementary,
		&e.InitialYTD.Insurance,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *employeeRepository) GetByID(ctx context.Context, id, companyID string) (employee.Employee, error) {
	q := r.db.GetQuerier(ctx)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 AND company_id = $2`

	e, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

func (r *employeeRepository) ListByPayGroup(ctx context.Context, payGroupID, companyID string) ([]employee.Employee, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE pay_group_id = $1 AND company_id = $2 AND termination_date IS NULL
		ORDER BY full_name
	`

	rows, err := q.Query(ctx, query, payGroupID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// ========== COMPENSATION SNAPSHOTS ==========

const snapshotColumns = `id, employee_id, type, amount, effective_date, end_date, created_at`

func scanSnapshot(row pgx.Row) (employee.CompensationSnapshot, error) {
	var s employee.CompensationSnapshot
	err := row.Scan(&s.ID, &s.EmployeeID, &s.Type, &s.Amount, &s.EffectiveDate, &s.EndDate, &s.CreatedAt)
	return s, err
}

func (r *employeeRepository) GetActiveSnapshot(ctx context.Context, employeeID string) (employee.CompensationSnapshot, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		SELECT ` + snapshotColumns + `
		FROM compensation_snapshots
		WHERE employee_id = $1 AND end_date IS NULL
	`

	s, err := scanSnapshot(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.CompensationSnapshot{}, employee.ErrSnapshotNotFound
		}
		return employee.CompensationSnapshot{}, fmt.Errorf("failed to get active snapshot: %w", err)
	}
	return s, nil
}

func (r *employeeRepository) GetSnapshotAt(ctx context.Context, employeeID string, at time.Time) (employee.CompensationSnapshot, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		SELECT ` + snapshotColumns + `
		FROM compensation_snapshots
		WHERE employee_id = $1
		  AND effective_date <= $2
		  AND (end_date IS NULL OR end_date > $2)
		ORDER BY effective_date DESC
		LIMIT 1
	`

	s, err := scanSnapshot(q.QueryRow(ctx, query, employeeID, at))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.CompensationSnapshot{}, employee.ErrSnapshotNotFound
		}
		return employee.CompensationSnapshot{}, fmt.Errorf("failed to get snapshot at date: %w", err)
	}
	return s, nil
}

func (r *employeeRepository) CreateSnapshot(ctx context.Context, snapshot employee.CompensationSnapshot) (employee.CompensationSnapshot, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		INSERT INTO compensation_snapshots (id, employee_id, type, amount, effective_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + snapshotColumns

	s, err := scanSnapshot(q.QueryRow(ctx, query,
		snapshot.ID, snapshot.EmployeeID, snapshot.Type, snapshot.Amount, snapshot.EffectiveDate,
	))
	if err != nil {
		return employee.CompensationSnapshot{}, fmt.Errorf("failed to create snapshot: %w", err)
	}
	return s, nil
}

// CloseAndCreateSnapshot does the swap in one transaction. The UPDATE is
// conditional on the expected active snapshot still being active; zero rows
// affected means a concurrent writer won.
func (r *employeeRepository) CloseAndCreateSnapshot(ctx context.Context, expectedActiveID string, snapshot employee.CompensationSnapshot) (employee.CompensationSnapshot, error) {
	var created employee.CompensationSnapshot
	err := r.db.WithTransaction(ctx, func(txCtx context.Context) error {
		q := r.db.GetQuerier(txCtx)

		tag, err := q.Exec(txCtx, `
			UPDATE compensation_snapshots
			SET end_date = $2
			WHERE id = $1 AND end_date IS NULL
		`, expectedActiveID, snapshot.EffectiveDate)
		if err != nil {
			return fmt.Errorf("failed to close active snapshot: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return employee.ErrSnapshotConflict
		}

		created, err = scanSnapshot(q.QueryRow(txCtx, `
			INSERT INTO compensation_snapshots (id, employee_id, type, amount, effective_date)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+snapshotColumns,
			snapshot.ID, snapshot.EmployeeID, snapshot.Type, snapshot.Amount, snapshot.EffectiveDate,
		))
		if err != nil {
			return fmt.Errorf("failed to create snapshot: %w", err)
		}
		return nil
	})
	if err != nil {
		return employee.CompensationSnapshot{}, err
	}
	return created, nil
}

// ========== TAX CLAIMS ==========

const taxClaimColumns = `
	id, employee_id, tax_year, federal_basic, provincial_basic,
	federal_additional, provincial_additional, updated_at
`

func scanTaxClaim(row pgx.Row) (employee.TaxClaim, error) {
	var c employee.TaxClaim
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.TaxYear, &c.FederalBasic, &c.ProvincialBasic,
		&c.FederalAdditional, &c.ProvincialAdditional, &c.UpdatedAt,
	)
	return c, err
}

func (r *employeeRepository) GetTaxClaim(ctx context.Context, employeeID string, taxYear int) (employee.TaxClaim, error) {
	q := r.db.GetQuerier(ctx)

	query := `SELECT ` + taxClaimColumns + ` FROM tax_claims WHERE employee_id = $1 AND tax_year = $2`

	c, err := scanTaxClaim(q.QueryRow(ctx, query, employeeID, taxYear))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.TaxClaim{}, employee.ErrTaxClaimNotFound
		}
		return employee.TaxClaim{}, fmt.Errorf("failed to get tax claim: %w", err)
	}
	return c, nil
}

func (r *employeeRepository) UpsertTaxClaim(ctx context.Context, claim employee.TaxClaim) (employee.TaxClaim, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		INSERT INTO tax_claims (
			id, employee_id, tax_year, federal_basic, provincial_basic,
			federal_additional, provincial_additional
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, tax_year) DO UPDATE SET
			federal_basic = EXCLUDED.federal_basic,
			provincial_basic = EXCLUDED.provincial_basic,
			federal_additional = EXCLUDED.federal_additional,
			provincial_additional = EXCLUDED.provincial_additional,
			updated_at = NOW()
		RETURNING ` + taxClaimColumns

	c, err := scanTaxClaim(q.QueryRow(ctx, query,
		claim.ID, claim.EmployeeID, claim.TaxYear, claim.FederalBasic, claim.ProvincialBasic,
		claim.FederalAdditional, claim.ProvincialAdditional,
	))
	if err != nil {
		return employee.TaxClaim{}, fmt.Errorf("failed to upsert tax claim: %w", err)
	}
	return c, nil
}
