package leave

import "errors"

var (
	ErrInsufficientVacation = errors.New("insufficient vacation balance")
	ErrInsufficientSick     = errors.New("insufficient sick entitlement")
	ErrNotYetEligible       = errors.New("employee has not completed the sick leave waiting period")
	ErrBalanceNotFound      = errors.New("leave balance not found")
)
