package paygroup

import "errors"

var (
	ErrPayGroupNotFound        = errors.New("pay group not found")
	ErrIncompatibleStartRule   = errors.New("period start rule is not compatible with the pay frequency")
	ErrUnsupportedFrequency    = errors.New("unsupported pay frequency")
	ErrUnsupportedMethod       = errors.New("unsupported withholding method")
	ErrInvalidConfigBlock      = errors.New("invalid policy configuration block")
)
