package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/maplehr/payroll-backend-go/internal/domain/payroll"
	"github.com/maplehr/payroll-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepository{db: db}
}

// ========== RUNS ==========

const runColumns = `
	id, company_id, pay_group_id, period_start, period_end, pay_date, tax_year,
	status, total_gross, total_deductions, total_net, total_employer_cost,
	approved_at, paid_at, created_at, updated_at
`

func scanRun(row pgx.Row) (payroll.Run, error) {
	var run payroll.Run
	err := row.Scan(
		&run.ID, &run.CompanyID, &run.PayGroupID, &run.PeriodStart, &run.PeriodEnd,
		&run.PayDate, &run.TaxYear, &run.Status,
		&run.TotalGross, &run.TotalDeductions, &run.TotalNet, &run.TotalEmployerCost,
		&run.ApprovedAt, &run.PaidAt, &run.CreatedAt, &run.UpdatedAt,
	)
	return run, err
}

func (r *payrollRepository) CreateRun(ctx context.Context, run payroll.Run) (payroll.Run, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		INSERT INTO payroll_runs (
			id, company_id, pay_group_id, period_start, period_end, pay_date,
			tax_year, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + runColumns

	created, err := scanRun(q.QueryRow(ctx, query,
		run.ID, run.CompanyID, run.PayGroupID, run.PeriodStart, run.PeriodEnd,
		run.PayDate, run.TaxYear, run.Status,
	))
	if err != nil {
		return payroll.Run{}, fmt.Errorf("failed to create payroll run: %w", err)
	}
	return created, nil
}

func (r *payrollRepository) GetRun(ctx context.Context, id, companyID string) (payroll.Run, error) {
	q := r.db.GetQuerier(ctx)

	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE id = $1 AND company_id = $2`

	run, err := scanRun(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to get payroll run: %w", err)
	}
	return run, nil
}

func (r *payrollRepository) ListRuns(ctx context.Context, companyID string, payGroupID string) ([]payroll.Run, error) {
	q := r.db.GetQuerier(ctx)

	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE company_id = $1`
	args := []interface{}{companyID}
	if payGroupID != "" {
		query += ` AND pay_group_id = $2`
		args = append(args, payGroupID)
	}
	query += ` ORDER BY period_start DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *payrollRepository) UpdateRunStatus(ctx context.Context, run payroll.Run) (payroll.Run, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		UPDATE payroll_runs SET
			status = $3, total_gross = $4, total_deductions = $5, total_net = $6,
			total_employer_cost = $7, approved_at = $8, paid_at = $9, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING ` + runColumns

	updated, err := scanRun(q.QueryRow(ctx, query,
		run.ID, run.CompanyID, run.Status,
		run.TotalGross, run.TotalDeductions, run.TotalNet, run.TotalEmployerCost,
		run.ApprovedAt, run.PaidAt,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to update payroll run: %w", err)
	}
	return updated, nil
}

func (r *payrollRepository) ListApprovedRuns(ctx context.Context, companyID string, from, to time.Time) ([]payroll.Run, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		SELECT ` + runColumns + `
		FROM payroll_runs
		WHERE company_id = $1
		  AND status IN ('approved', 'paid')
		  AND pay_date >= $2 AND pay_date <= $3
		ORDER BY pay_date
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ========== RECORDS ==========

// recordDoc is the JSONB payload of a record: the stored input and the
// itemized outcome. Flat numeric columns sit beside it so year-to-date
// aggregation stays in SQL.
type recordDoc struct {
	Input      payroll.PeriodInput  `json:"input"`
	Earnings   []payroll.EarningLine `json:"earnings"`
	Deductions payroll.Deductions   `json:"deductions"`
	YTD        payroll.YearToDate   `json:"ytd"`
}

const recordColumns = `
	id, run_id, employee_id, company_id,
	employee_name, province, compensation_type, compensation_amount, pay_group_name,
	payload,
	gross_pay, regular_taxable, bonus_income, pensionable_earnings, insurable_earnings,
	vacation_accrued, days_worked, pension, pension_supplementary, insurance,
	federal_tax, provincial_tax,
	total_deductions, net_pay, employer_cost, modified,
	created_at, updated_at
`

// The flat deduction columns duplicate values inside the payload document;
// the payload is authoritative on read, so the flat copies scan into fields
// the document immediately overwrites.
func scanRecord(row pgx.Row) (payroll.Record, error) {
	var rec payroll.Record
	var payload []byte
	err := row.Scan(
		&rec.ID, &rec.RunID, &rec.EmployeeID, &rec.CompanyID,
		&rec.EmployeeName, &rec.Province, &rec.CompensationType, &rec.CompensationAmount, &rec.PayGroupName,
		&payload,
		&rec.GrossPay, &rec.RegularTaxable, &rec.BonusIncome, &rec.PensionableEarnings, &rec.InsurableEarnings,
		&rec.VacationAccrued, &rec.DaysWorked,
		&rec.Deductions.Pension, &rec.Deductions.PensionSupplementary, &rec.Deductions.Insurance,
		&rec.Deductions.FederalTax, &rec.Deductions.ProvincialTax,
		&rec.TotalDeductions, &rec.NetPay, &rec.EmployerCost, &rec.Modified,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return payroll.Record{}, err
	}
	var doc recordDoc
	if err := json.Unmarshal(payload, &doc); err != nil {
		return payroll.Record{}, fmt.Errorf("failed to decode record payload: %w", err)
	}
	rec.Input = doc.Input
	rec.Earnings = doc.Earnings
	rec.Deductions = doc.Deductions
	rec.YTD = doc.YTD
	return rec, nil
}

func recordArgs(rec payroll.Record) ([]interface{}, error) {
	payload, err := json.Marshal(recordDoc{
		Input:      rec.Input,
		Earnings:   rec.Earnings,
		Deductions: rec.Deductions,
		YTD:        rec.YTD,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode record payload: %w", err)
	}
	return []interface{}{
		rec.ID, rec.RunID, rec.EmployeeID, rec.CompanyID,
		rec.EmployeeName, rec.Province, rec.CompensationType, rec.CompensationAmount, rec.PayGroupName,
		payload,
		rec.GrossPay, rec.RegularTaxable, rec.BonusIncome, rec.PensionableEarnings, rec.InsurableEarnings,
		rec.VacationAccrued, rec.DaysWorked,
		rec.Deductions.Pension, rec.Deductions.PensionSupplementary, rec.Deductions.Insurance,
		rec.Deductions.FederalTax, rec.Deductions.ProvincialTax,
		rec.TotalDeductions, rec.NetPay, rec.EmployerCost, rec.Modified,
	}, nil
}

const qualifiedRecordColumns = `
	rec.id, rec.run_id, rec.employee_id, rec.company_id,
	rec.employee_name, rec.province, rec.compensation_type, rec.compensation_amount, rec.pay_group_name,
	rec.payload,
	rec.gross_pay, rec.regular_taxable, rec.bonus_income, rec.pensionable_earnings, rec.insurable_earnings,
	rec.vacation_accrued, rec.days_worked, rec.pension, rec.pension_supplementary, rec.insurance,
	rec.federal_tax, rec.provincial_tax,
	rec.total_deductions, rec.net_pay, rec.employer_cost, rec.modified,
	rec.created_at, rec.updated_at
`

const recordPlaceholders = `
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
	$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26
`

func (r *payrollRepository) CreateRecord(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	q := r.db.GetQuerier(ctx)

	args, err := recordArgs(record)
	if err != nil {
		return payroll.Record{}, err
	}

	query := `
		INSERT INTO payroll_records (
			id, run_id, employee_id, company_id,
			employee_name, province, compensation_type, compensation_amount, pay_group_name,
			payload,
			gross_pay, regular_taxable, bonus_income, pensionable_earnings, insurable_earnings,
			vacation_accrued, days_worked, pension, pension_supplementary, insurance,
			federal_tax, provincial_tax,
			total_deductions, net_pay, employer_cost, modified
		) VALUES (` + recordPlaceholders + `)
		RETURNING ` + recordColumns

	created, err := scanRecord(q.QueryRow(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return payroll.Record{}, payroll.ErrRecordExists
		}
		return payroll.Record{}, fmt.Errorf("failed to create payroll record: %w", err)
	}
	return created, nil
}

func (r *payrollRepository) ReplaceRecord(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	q := r.db.GetQuerier(ctx)

	args, err := recordArgs(record)
	if err != nil {
		return payroll.Record{}, err
	}

	query := `
		UPDATE payroll_records SET
			employee_name = $5, province = $6, compensation_type = $7,
			compensation_amount = $8, pay_group_name = $9,
			payload = $10,
			gross_pay = $11, regular_taxable = $12, bonus_income = $13,
			pensionable_earnings = $14, insurable_earnings = $15,
			vacation_accrued = $16, days_worked = $17,
			pension = $18, pension_supplementary = $19, insurance = $20,
			federal_tax = $21, provincial_tax = $22,
			total_deductions = $23, net_pay = $24, employer_cost = $25,
			modified = $26, updated_at = NOW()
		WHERE id = $1 AND run_id = $2 AND employee_id = $3 AND company_id = $4
		RETURNING ` + recordColumns

	updated, err := scanRecord(q.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to replace payroll record: %w", err)
	}
	return updated, nil
}

func (r *payrollRepository) GetRecord(ctx context.Context, id, companyID string) (payroll.Record, error) {
	q := r.db.GetQuerier(ctx)

	query := `SELECT ` + recordColumns + ` FROM payroll_records WHERE id = $1 AND company_id = $2`

	rec, err := scanRecord(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return rec, nil
}

func (r *payrollRepository) GetRecordByRunEmployee(ctx context.Context, runID, employeeID string) (payroll.Record, error) {
	q := r.db.GetQuerier(ctx)

	query := `SELECT ` + recordColumns + ` FROM payroll_records WHERE run_id = $1 AND employee_id = $2`

	rec, err := scanRecord(q.QueryRow(ctx, query, runID, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return rec, nil
}

func (r *payrollRepository) ListRecordsByRun(ctx context.Context, runID, companyID string) ([]payroll.Record, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		SELECT ` + recordColumns + `
		FROM payroll_records
		WHERE run_id = $1 AND company_id = $2
		ORDER BY employee_name
	`

	rows, err := q.Query(ctx, query, runID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *payrollRepository) DeleteRecordsByRun(ctx context.Context, runID string) error {
	q := r.db.GetQuerier(ctx)

	if _, err := q.Exec(ctx, `DELETE FROM payroll_records WHERE run_id = $1`, runID); err != nil {
		return fmt.Errorf("failed to delete payroll records: %w", err)
	}
	return nil
}

// YearToDate aggregates over the flat numeric columns of approved and paid
// records, excluding the run being calculated.
func (r *payrollRepository) YearToDate(ctx context.Context, employeeID string, taxYear int, excludeRunID string) (payroll.YearToDate, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		SELECT
			COALESCE(SUM(rec.gross_pay), 0),
			COALESCE(SUM(rec.regular_taxable), 0),
			COALESCE(SUM(rec.pension), 0),
			COALESCE(SUM(rec.pension_supplementary), 0),
			COALESCE(SUM(rec.insurance), 0),
			COALESCE(SUM(rec.federal_tax), 0),
			COALESCE(SUM(rec.provincial_tax), 0),
			COUNT(*)
		FROM payroll_records rec
		JOIN payroll_runs run ON run.id = rec.run_id
		WHERE rec.employee_id = $1
		  AND run.tax_year = $2
		  AND run.id != $3
		  AND run.status IN ('approved', 'paid')
	`

	var ytd payroll.YearToDate
	err := q.QueryRow(ctx, query, employeeID, taxYear, excludeRunID).Scan(
		&ytd.Gross, &ytd.RegularTaxable,
		&ytd.Pension, &ytd.PensionSupplementary, &ytd.Insurance,
		&ytd.FederalTax, &ytd.ProvincialTax,
		&ytd.Periods,
	)
	if err != nil {
		return payroll.YearToDate{}, fmt.Errorf("failed to aggregate year-to-date: %w", err)
	}
	return ytd, nil
}

func (r *payrollRepository) ListRecordsByEmployeeYear(ctx context.Context, companyID string, taxYear int) ([]payroll.Record, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		SELECT ` + qualifiedRecordColumns + `
		FROM payroll_records rec
		JOIN payroll_runs run ON run.id = rec.run_id
		WHERE rec.company_id = $1
		  AND run.tax_year = $2
		  AND run.status IN ('approved', 'paid')
		ORDER BY rec.employee_id, run.period_start
	`

	rows, err := q.Query(ctx, query, companyID, taxYear)
	if err != nil {
		return nil, fmt.Errorf("failed to list records for tax year: %w", err)
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
