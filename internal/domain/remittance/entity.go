package remittance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the company's assigned remitter tier. Assignment is driven by
// average monthly withholding and made externally; the engine only consumes
// the assignment.
type Frequency string

const (
	FrequencyQuarterly              Frequency = "quarterly"
	FrequencyMonthly                Frequency = "monthly"
	FrequencyAcceleratedSemimonthly Frequency = "accelerated_semimonthly"
	FrequencyAcceleratedWeekly      Frequency = "accelerated_weekly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyQuarterly, FrequencyMonthly, FrequencyAcceleratedSemimonthly, FrequencyAcceleratedWeekly:
		return true
	}
	return false
}

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusLate    Status = "late"
)

// Obligation is what a company owes the tax authority for one remittance
// period. The period key (company, frequency, period start) is unique, which
// is what makes re-aggregation idempotent.
type Obligation struct {
	ID        string
	CompanyID string
	Frequency Frequency

	PeriodStart time.Time
	PeriodEnd   time.Time
	DueDate     time.Time

	Pension              decimal.Decimal // employee + employer, both tiers
	Insurance            decimal.Decimal // employee + employer
	Tax                  decimal.Decimal // federal + provincial, regular + bonus
	Total                decimal.Decimal

	Status  Status
	PaidAt  *time.Time
	Penalty decimal.Decimal

	RunIDs    []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
