package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/maplehr/payroll-backend-go/internal/domain/leave"
	"github.com/maplehr/payroll-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.Repository {
	return &leaveRepository{db: db}
}

// ========== VACATION ==========

func (r *leaveRepository) GetVacationBalance(ctx context.Context, employeeID string) (leave.VacationBalance, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		SELECT employee_id, balance, updated_at
		FROM vacation_balances
		WHERE employee_id = $1
	`

	var balance leave.VacationBalance
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&balance.EmployeeID, &balance.Balance, &balance.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.VacationBalance{}, leave.ErrBalanceNotFound
		}
		return leave.VacationBalance{}, fmt.Errorf("failed to get vacation balance: %w", err)
	}
	return balance, nil
}

// AppendVacationEvent writes the ledger entry and the new balance in one
// statement pair; callers run it inside a transaction when the movement is
// part of a run approval.
func (r *leaveRepository) AppendVacationEvent(ctx context.Context, event leave.VacationEvent, newBalance leave.VacationBalance) error {
	q := r.db.GetQuerier(ctx)

	insertEvent := `
		INSERT INTO vacation_events (id, employee_id, kind, amount, reason, run_id, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := q.Exec(ctx, insertEvent,
		event.ID, event.EmployeeID, event.Kind, event.Amount,
		event.Reason, event.RunID, event.OccurredAt,
	); err != nil {
		return fmt.Errorf("failed to append vacation event: %w", err)
	}

	upsertBalance := `
		INSERT INTO vacation_balances (employee_id, balance, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (employee_id) DO UPDATE SET
			balance = EXCLUDED.balance, updated_at = NOW()
	`
	if _, err := q.Exec(ctx, upsertBalance, newBalance.EmployeeID, newBalance.Balance); err != nil {
		return fmt.Errorf("failed to update vacation balance: %w", err)
	}
	return nil
}

func (r *leaveRepository) ListVacationEvents(ctx context.Context, employeeID string, from, to time.Time) ([]leave.VacationEvent, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		SELECT id, employee_id, kind, amount, reason, run_id, occurred_at
		FROM vacation_events
		WHERE employee_id = $1 AND occurred_at >= $2 AND occurred_at <= $3
		ORDER BY occurred_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacation events: %w", err)
	}
	defer rows.Close()

	var events []leave.VacationEvent
	for rows.Next() {
		var event leave.VacationEvent
		if err := rows.Scan(
			&event.ID, &event.EmployeeID, &event.Kind, &event.Amount,
			&event.Reason, &event.RunID, &event.OccurredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vacation event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// ========== SICK ==========

const sickBalanceColumns = `
	id, employee_id, year, entitled_paid, entitled_unpaid, used_paid,
	used_unpaid, carried_over, eligible_from, accrued_to_date, updated_at
`

func scanSickBalance(row pgx.Row) (leave.SickBalance, error) {
	var balance leave.SickBalance
	err := row.Scan(
		&balance.ID, &balance.EmployeeID, &balance.Year,
		&balance.EntitledPaid, &balance.EntitledUnpaid,
		&balance.UsedPaid, &balance.UsedUnpaid, &balance.CarriedOver,
		&balance.EligibleFrom, &balance.AccruedToDate, &balance.UpdatedAt,
	)
	return balance, err
}

func (r *leaveRepository) GetSickBalance(ctx context.Context, employeeID string, year int) (leave.SickBalance, error) {
	q := r.db.GetQuerier(ctx)

	query := `SELECT ` + sickBalanceColumns + ` FROM sick_balances WHERE employee_id = $1 AND year = $2`

	balance, err := scanSickBalance(q.QueryRow(ctx, query, employeeID, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.SickBalance{}, leave.ErrBalanceNotFound
		}
		return leave.SickBalance{}, fmt.Errorf("failed to get sick balance: %w", err)
	}
	return balance, nil
}

func (r *leaveRepository) UpsertSickBalance(ctx context.Context, balance leave.SickBalance) (leave.SickBalance, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		INSERT INTO sick_balances (
			id, employee_id, year, entitled_paid, entitled_unpaid, used_paid,
			used_unpaid, carried_over, eligible_from, accrued_to_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (employee_id, year) DO UPDATE SET
			entitled_paid = EXCLUDED.entitled_paid,
			entitled_unpaid = EXCLUDED.entitled_unpaid,
			used_paid = EXCLUDED.used_paid,
			used_unpaid = EXCLUDED.used_unpaid,
			carried_over = EXCLUDED.carried_over,
			eligible_from = EXCLUDED.eligible_from,
			accrued_to_date = EXCLUDED.accrued_to_date,
			updated_at = NOW()
		RETURNING ` + sickBalanceColumns

	saved, err := scanSickBalance(q.QueryRow(ctx, query,
		balance.ID, balance.EmployeeID, balance.Year,
		balance.EntitledPaid, balance.EntitledUnpaid,
		balance.UsedPaid, balance.UsedUnpaid, balance.CarriedOver,
		balance.EligibleFrom, balance.AccruedToDate,
	))
	if err != nil {
		return leave.SickBalance{}, fmt.Errorf("failed to upsert sick balance: %w", err)
	}
	return saved, nil
}

func (r *leaveRepository) RecordSickUsage(ctx context.Context, usage leave.SickUsage, balance leave.SickBalance) error {
	q := r.db.GetQuerier(ctx)

	insertUsage := `
		INSERT INTO sick_usage (
			id, employee_id, year, date, days, paid, average_day_pay,
			lookback_days, run_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if _, err := q.Exec(ctx, insertUsage,
		usage.ID, usage.EmployeeID, usage.Year, usage.Date, usage.Days,
		usage.Paid, usage.AverageDayPay, usage.LookbackDays, usage.RunID,
	); err != nil {
		return fmt.Errorf("failed to record sick usage: %w", err)
	}

	updateBalance := `
		UPDATE sick_balances SET
			used_paid = $3, used_unpaid = $4, updated_at = NOW()
		WHERE employee_id = $1 AND year = $2
	`
	if _, err := q.Exec(ctx, updateBalance,
		balance.EmployeeID, balance.Year, balance.UsedPaid, balance.UsedUnpaid,
	); err != nil {
		return fmt.Errorf("failed to update sick balance usage: %w", err)
	}
	return nil
}

func (r *leaveRepository) ListSickUsage(ctx context.Context, employeeID string, year int) ([]leave.SickUsage, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		SELECT id, employee_id, year, date, days, paid, average_day_pay,
			lookback_days, run_id, created_at
		FROM sick_usage
		WHERE employee_id = $1 AND year = $2
		ORDER BY date DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list sick usage: %w", err)
	}
	defer rows.Close()

	var usages []leave.SickUsage
	for rows.Next() {
		var usage leave.SickUsage
		if err := rows.Scan(
			&usage.ID, &usage.EmployeeID, &usage.Year, &usage.Date,
			&usage.Days, &usage.Paid, &usage.AverageDayPay,
			&usage.LookbackDays, &usage.RunID, &usage.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sick usage: %w", err)
		}
		usages = append(usages, usage)
	}
	return usages, rows.Err()
}

// RecentEarnings reads off the flat record columns so the lookback never
// touches the JSONB payload.
func (r *leaveRepository) RecentEarnings(ctx context.Context, employeeID string, from, to time.Time) (leave.EarningsWindow, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		SELECT COALESCE(SUM(rec.gross_pay), 0), COALESCE(SUM(rec.days_worked), 0)
		FROM payroll_records rec
		JOIN payroll_runs run ON run.id = rec.run_id
		WHERE rec.employee_id = $1
		  AND run.status IN ('approved', 'paid')
		  AND run.pay_date >= $2 AND run.pay_date <= $3
	`

	var window leave.EarningsWindow
	err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&window.Total, &window.Days)
	if err != nil {
		return leave.EarningsWindow{}, fmt.Errorf("failed to aggregate recent earnings: %w", err)
	}
	return window, nil
}
