package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrSnapshotNotFound        = errors.New("no active compensation snapshot for employee")
	ErrSnapshotConflict        = errors.New("compensation snapshot was changed concurrently")
	ErrSnapshotOutOfOrder      = errors.New("new snapshot effective date must follow the active one")
	ErrTaxClaimNotFound        = errors.New("tax claim not found for employee and year")
	ErrInitialYTDYearMismatch  = errors.New("initial year-to-date amounts are tagged with a different tax year")
)
