package payroll

import (
	"context"
	"time"
)

// Repository defines data access for payroll runs and records. Every method
// takes companyID to keep tenants isolated at the query level.
type Repository interface {
	CreateRun(ctx context.Context, run Run) (Run, error)
	GetRun(ctx context.Context, id, companyID string) (Run, error)
	ListRuns(ctx context.Context, companyID string, payGroupID string) ([]Run, error)
	// UpdateRunStatus persists a transition; totals are only written
	// together with the pending_approval transition.
	UpdateRunStatus(ctx context.Context, run Run) (Run, error)
	// ListApprovedRuns returns approved or paid runs with pay dates inside
	// the window, for remittance and year-end aggregation.
	ListApprovedRuns(ctx context.Context, companyID string, from, to time.Time) ([]Run, error)

	CreateRecord(ctx context.Context, record Record) (Record, error)
	GetRecord(ctx context.Context, id, companyID string) (Record, error)
	GetRecordByRunEmployee(ctx context.Context, runID, employeeID string) (Record, error)
	ListRecordsByRun(ctx context.Context, runID, companyID string) ([]Record, error)
	// ReplaceRecord overwrites a draft record's itemized results and input.
	ReplaceRecord(ctx context.Context, record Record) (Record, error)
	DeleteRecordsByRun(ctx context.Context, runID string) error

	// YearToDate sums the employee's approved and paid records for the tax
	// year, excluding the given run.
	YearToDate(ctx context.Context, employeeID string, taxYear int, excludeRunID string) (YearToDate, error)
	// ListRecordsByEmployeeYear returns approved/paid records for year-end
	// slip aggregation.
	ListRecordsByEmployeeYear(ctx context.Context, companyID string, taxYear int) ([]Record, error)
}
