package remittance

import (
	"context"
	"time"
)

// Repository persists remittance obligations. Upsert is keyed on (company,
// frequency, period start) so re-running aggregation can never duplicate a
// period.
type Repository interface {
	Upsert(ctx context.Context, obligation Obligation) (Obligation, error)
	GetByID(ctx context.Context, id, companyID string) (Obligation, error)
	GetByPeriod(ctx context.Context, companyID string, frequency Frequency, periodStart time.Time) (Obligation, error)
	ListByCompany(ctx context.Context, companyID string, from, to time.Time) ([]Obligation, error)
	// MarkPaid persists the payment status, timestamp and computed penalty.
	MarkPaid(ctx context.Context, obligation Obligation) error
}
