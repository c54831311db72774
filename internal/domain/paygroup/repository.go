package paygroup

import (
	"context"
	"time"
)

// Repository defines data access for pay groups. Every method takes companyID
// to keep tenants isolated at the query level.
type Repository interface {
	Create(ctx context.Context, group PayGroup) (PayGroup, error)
	GetByID(ctx context.Context, id, companyID string) (PayGroup, error)
	ListByCompany(ctx context.Context, companyID string) ([]PayGroup, error)
	Update(ctx context.Context, group PayGroup) (PayGroup, error)
	// SetLastPeriodEnd advances the schedule anchor after a run is created.
	SetLastPeriodEnd(ctx context.Context, id, companyID string, end time.Time) error
}
