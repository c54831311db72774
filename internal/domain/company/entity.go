package company

import (
	"time"

	"github.com/maplehr/payroll-backend-go/internal/domain/remittance"
	"github.com/shopspring/decimal"
)

// Company is the narrow engine-side view of a company: the remitter
// frequency assignment and payroll defaults. Company identity lives in the
// external directory.
type Company struct {
	ID   string
	Name string

	// Remitter tier assigned by the tax authority from average monthly
	// withholding; consumed as-is by the remittance aggregator.
	RemitterFrequency remittance.Frequency

	// Defaults applied when a pay group leaves them unset.
	DefaultVacationRate decimal.Decimal
	HolidayPayByDefault bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
