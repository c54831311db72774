package employee

import (
	"context"
	"time"
)

// Repository reads the employee directory and owns the engine-side state
// scoped to an employee: compensation snapshots and tax claims.
type Repository interface {
	GetByID(ctx context.Context, id, companyID string) (Employee, error)
	ListByPayGroup(ctx context.Context, payGroupID, companyID string) ([]Employee, error)

	// GetActiveSnapshot returns the snapshot with no end date.
	GetActiveSnapshot(ctx context.Context, employeeID string) (CompensationSnapshot, error)
	// CloseAndCreateSnapshot closes the active snapshot at effectiveDate and
	// opens the new one in a single transaction. The expectedActiveID guard
	// makes the swap conditional: if the active snapshot changed since the
	// caller read it, the write fails with ErrSnapshotConflict.
	CloseAndCreateSnapshot(ctx context.Context, expectedActiveID string, snapshot CompensationSnapshot) (CompensationSnapshot, error)
	// CreateSnapshot opens the first snapshot for an employee.
	CreateSnapshot(ctx context.Context, snapshot CompensationSnapshot) (CompensationSnapshot, error)
	// GetSnapshotAt returns the snapshot effective on the given date.
	GetSnapshotAt(ctx context.Context, employeeID string, at time.Time) (CompensationSnapshot, error)

	GetTaxClaim(ctx context.Context, employeeID string, taxYear int) (TaxClaim, error)
	UpsertTaxClaim(ctx context.Context, claim TaxClaim) (TaxClaim, error)
}
