package yearend

import "errors"

var (
	ErrSlipNotFound    = errors.New("year-end slip not found")
	ErrNothingToFile   = errors.New("no approved payroll records for this tax year")
)
