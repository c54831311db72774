package taxref

import (
	"time"

	"github.com/shopspring/decimal"
)

// Edition is one published set of payroll parameters for a jurisdiction.
// Editions are immutable reference data versioned by effective window; some
// jurisdictions publish two per year (e.g. a January and a July edition with
// different basic personal amounts).
type Edition struct {
	ID            string
	Province      string
	TaxYear       int
	EffectiveFrom time.Time
	EffectiveTo   time.Time // exclusive

	FederalBasicPersonal    decimal.Decimal
	ProvincialBasicPersonal decimal.Decimal

	Pension   PensionRules
	Insurance InsuranceRules

	FederalBrackets    []Bracket
	ProvincialBrackets []Bracket

	// Applied on the pay date: a period's pay date may be at most this many
	// days after the period end.
	PayDateMaxDays int

	DefaultVacationRate decimal.Decimal

	Sick SickPolicy
}

// PensionRules holds the two-tier pension contribution parameters.
// The base tier applies to pensionable earnings between the basic exemption
// and MaxPensionable; the supplementary tier applies only to earnings between
// MaxPensionable and SupplementaryCeiling.
type PensionRules struct {
	Rate             decimal.Decimal
	BasicExemption   decimal.Decimal
	MaxPensionable   decimal.Decimal
	MaxContribution  decimal.Decimal
	SupplementaryRate    decimal.Decimal
	SupplementaryCeiling decimal.Decimal
	MaxSupplementary     decimal.Decimal
}

// InsuranceRules holds unemployment-insurance contribution parameters.
type InsuranceRules struct {
	Rate               decimal.Decimal
	MaxInsurable       decimal.Decimal
	MaxContribution    decimal.Decimal
	EmployerMultiplier decimal.Decimal
}

// Bracket is one row of a progressive tax table. Max is zero on the top
// bracket (unbounded).
type Bracket struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Rate decimal.Decimal
}

// SickAccrualMethod selects how sick entitlement builds up.
type SickAccrualMethod string

const (
	// SickAccrualImmediate grants the full annual entitlement the day the
	// employee becomes eligible.
	SickAccrualImmediate SickAccrualMethod = "immediate"
	// SickAccrualMonthly grants an initial amount after a qualifying period
	// and a fixed increment per elapsed month, capped at the annual
	// entitlement.
	SickAccrualMonthly SickAccrualMethod = "monthly"
)

// SickPolicy is the jurisdiction's statutory sick leave rules.
type SickPolicy struct {
	PaidDays      int
	UnpaidDays    int
	WaitingDays   int
	Carryover     bool
	CarryoverCap  int
	Accrual       SickAccrualMethod
	InitialGrant  decimal.Decimal // days, monthly accrual only
	QualifyingMonths int          // months before the initial grant
	MonthlyIncrement decimal.Decimal
	// Trailing window for the "average day's pay" computation on usage.
	LookbackDays int
}

// Covers reports whether the edition's effective window contains d.
func (e Edition) Covers(d time.Time) bool {
	if d.Before(e.EffectiveFrom) {
		return false
	}
	return e.EffectiveTo.IsZero() || d.Before(e.EffectiveTo)
}
