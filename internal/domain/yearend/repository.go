package yearend

import "context"

// Repository persists slips and summaries. Slips are append-only: an
// amendment inserts a new row with the next amendment number.
type Repository interface {
	AppendSlip(ctx context.Context, slip Slip) (Slip, error)
	// LatestSlips returns the highest-amendment slip per employee.
	LatestSlips(ctx context.Context, companyID string, taxYear int) ([]Slip, error)
	LatestAmendment(ctx context.Context, companyID, employeeID string, taxYear int) (int, error)
	UpsertSummary(ctx context.Context, summary Summary) (Summary, error)
	GetSummary(ctx context.Context, companyID string, taxYear int) (Summary, error)
}
