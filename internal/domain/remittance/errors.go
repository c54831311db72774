package remittance

import "errors"

var (
	ErrObligationNotFound = errors.New("remittance obligation not found")
	ErrAlreadyPaid        = errors.New("remittance obligation already paid")
	ErrUnknownFrequency   = errors.New("unknown remitter frequency")
)
