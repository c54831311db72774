package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository persists vacation ledgers and per-year sick balances.
type Repository interface {
	GetVacationBalance(ctx context.Context, employeeID string) (VacationBalance, error)
	AppendVacationEvent(ctx context.Context, event VacationEvent, newBalance VacationBalance) error
	ListVacationEvents(ctx context.Context, employeeID string, from, to time.Time) ([]VacationEvent, error)

	GetSickBalance(ctx context.Context, employeeID string, year int) (SickBalance, error)
	UpsertSickBalance(ctx context.Context, balance SickBalance) (SickBalance, error)
	RecordSickUsage(ctx context.Context, usage SickUsage, balance SickBalance) error
	ListSickUsage(ctx context.Context, employeeID string, year int) ([]SickUsage, error)

	// RecentEarnings returns the employee's total earnings and days worked
	// inside the trailing window, for the average day's pay computation.
	RecentEarnings(ctx context.Context, employeeID string, from, to time.Time) (EarningsWindow, error)
}

// EarningsWindow is the aggregate used for "average day's pay". Days is
// fractional because part-days of paid leave still count as time worked.
type EarningsWindow struct {
	Total decimal.Decimal
	Days  decimal.Decimal
}
