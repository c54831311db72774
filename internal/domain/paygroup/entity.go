package paygroup

import (
	"time"

	"github.com/shopspring/decimal"
)

type Frequency string

const (
	FrequencyWeekly      Frequency = "weekly"
	FrequencyBiweekly    Frequency = "biweekly"
	FrequencySemimonthly Frequency = "semimonthly"
	FrequencyMonthly     Frequency = "monthly"
)

// PeriodsPerYear returns the number of pay periods in a year for the
// frequency. Computed, never stored, so salaried per-period amounts stay
// consistent if a group's frequency changes.
func (f Frequency) PeriodsPerYear() int {
	switch f {
	case FrequencyWeekly:
		return 52
	case FrequencyBiweekly:
		return 26
	case FrequencySemimonthly:
		return 24
	case FrequencyMonthly:
		return 12
	}
	return 0
}

func (f Frequency) Valid() bool { return f.PeriodsPerYear() != 0 }

type WithholdingMethod string

const (
	// WithholdingAnnualization projects the period's regular income to an
	// annual figure and taxes it against the bracket table.
	WithholdingAnnualization WithholdingMethod = "annualization"
	// WithholdingCumulative smooths withholding across periods using
	// year-to-date income and tax, for variable-income groups.
	WithholdingCumulative WithholdingMethod = "cumulative"
)

func (m WithholdingMethod) Valid() bool {
	return m == WithholdingAnnualization || m == WithholdingCumulative
}

type CompensationType string

const (
	CompensationSalaried CompensationType = "salaried"
	CompensationHourly   CompensationType = "hourly"
)

// StartDayRuleKind tags the variants of a period starting-day rule. Which
// kinds are legal depends on the group's frequency; the pairing is checked at
// configuration time, never at run time.
type StartDayRuleKind string

const (
	// StartRuleWeekday anchors weekly/biweekly periods on a weekday.
	StartRuleWeekday StartDayRuleKind = "weekday"
	// StartRuleDayOfMonth starts monthly periods on a fixed day.
	StartRuleDayOfMonth StartDayRuleKind = "day_of_month"
	// StartRuleSemimonthly splits each month on the 1st and 16th.
	StartRuleSemimonthly StartDayRuleKind = "semimonthly"
)

type StartDayRule struct {
	Kind       StartDayRuleKind
	Weekday    time.Weekday // StartRuleWeekday only
	DayOfMonth int          // StartRuleDayOfMonth only, 1..28
}

// CompatibleWith reports whether the rule variant is usable under f.
func (r StartDayRule) CompatibleWith(f Frequency) bool {
	switch r.Kind {
	case StartRuleWeekday:
		return f == FrequencyWeekly || f == FrequencyBiweekly
	case StartRuleDayOfMonth:
		return f == FrequencyMonthly
	case StartRuleSemimonthly:
		return f == FrequencySemimonthly
	}
	return false
}

// OvertimePolicy configures the overtime premium for hourly groups.
type OvertimePolicy struct {
	Multiplier      decimal.Decimal
	WeeklyThreshold decimal.Decimal // hours per week before overtime applies
}

// EarningsConfig is the versioned earnings policy block.
type EarningsConfig struct {
	Version            int
	HolidayPayEnabled  bool
	HolidayPremiumRate decimal.Decimal // e.g. 1.5 for time-and-a-half
	VacationRate       decimal.Decimal // zero falls back to the jurisdiction default
}

// BenefitsConfig is the versioned taxable-benefits policy block.
type BenefitsConfig struct {
	Version int
	Items   []BenefitItem
}

type BenefitItem struct {
	Code      string
	Amount    decimal.Decimal // per period, employer-paid
	Taxable   bool
	Enabled   bool
}

// DeductionsConfig is the versioned voluntary-deductions policy block.
type DeductionsConfig struct {
	Version int
	Items   []DeductionItem
}

type DeductionItem struct {
	Code    string
	Amount  decimal.Decimal // per period
	PreTax  bool
	Enabled bool
}

// PayGroup is a pay-schedule and policy template referenced by many
// employees. It owns no employee state.
type PayGroup struct {
	ID                string
	CompanyID         string
	Name              string
	Province          string
	Frequency         Frequency
	CompensationType  CompensationType
	WithholdingMethod WithholdingMethod
	StartDayRule      StartDayRule
	Overtime          OvertimePolicy
	Earnings          EarningsConfig
	Benefits          BenefitsConfig
	Deductions        DeductionsConfig
	// Anchor for period resolution: the end date of the last generated
	// period. The pay date is always derived from a period end, never
	// stored independently.
	LastPeriodEnd *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
