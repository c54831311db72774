package payroll

import "errors"

var (
	ErrRunNotFound          = errors.New("payroll run not found")
	ErrRecordNotFound       = errors.New("payroll record not found")
	ErrRecordExists         = errors.New("payroll record already exists for this run and employee")
	ErrRunNotEditable       = errors.New("payroll run is not in draft; records are frozen")
	ErrInvalidTransition    = errors.New("invalid payroll run state transition")
	ErrRunNotApprovable     = errors.New("payroll run is not awaiting approval")
	ErrRunEmpty             = errors.New("payroll run has no records to calculate")
	ErrMissingHours         = errors.New("hourly employee requires regular hours")
	ErrNoCompensation       = errors.New("employee has no compensation snapshot effective in this period")
	ErrCumulativeStateGap   = errors.New("cumulative withholding requires the prior period's state")
)
