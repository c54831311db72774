package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the narrow view of the external directory that the engine
// consumes. Identity and contact fields live elsewhere and are never mutated
// here; the engine only reads what payroll computation needs.
type Employee struct {
	ID              string
	CompanyID       string
	FullName        string
	Province        string
	HireDate        time.Time
	TerminationDate *time.Time
	PayGroupID      string

	// May be zero for employment classes with no vacation entitlement.
	VacationRate decimal.Decimal

	// Statutory exemption flags. Each suppresses its computation entirely,
	// independent of jurisdiction defaults.
	PensionExempt              bool
	PensionSupplementaryExempt bool
	InsuranceExempt            bool

	// Paid statutory-holiday entitlement can be switched off per employee.
	// The holiday work premium is never covered by this override.
	HolidayPayExempt bool

	// Contributions already withheld by a previous employer this year.
	InitialYTD InitialYearToDate

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InitialYearToDate carries prior-employer contribution totals. It only
// counts toward annual maximums when TaxYear matches the run's tax year.
type InitialYearToDate struct {
	TaxYear              int
	Pension              decimal.Decimal
	PensionSupplementary decimal.Decimal
	Insurance            decimal.Decimal
}

// For returns the prior-employer amounts if they apply to taxYear, zeroes
// otherwise.
func (y InitialYearToDate) For(taxYear int) (pension, supplementary, insurance decimal.Decimal) {
	if y.TaxYear != taxYear {
		return decimal.Zero, decimal.Zero, decimal.Zero
	}
	return y.Pension, y.PensionSupplementary, y.Insurance
}

type CompensationType string

const (
	CompensationSalaried CompensationType = "salaried"
	CompensationHourly   CompensationType = "hourly"
)

// CompensationSnapshot is an effective-dated compensation amount. At most one
// snapshot per employee has no end date; opening a new snapshot closes the
// active one in the same transaction.
type CompensationSnapshot struct {
	ID            string
	EmployeeID    string
	Type          CompensationType
	Amount        decimal.Decimal // annual salary, or hourly rate
	EffectiveDate time.Time
	EndDate       *time.Time
	CreatedAt     time.Time
}

// Active reports whether the snapshot is the employee's current one.
func (s CompensationSnapshot) Active() bool { return s.EndDate == nil }

// TaxClaim holds an employee's claim amounts for one tax year. The basic
// personal amounts are derived from reference data and read-only; the
// additional amounts are employee-editable.
type TaxClaim struct {
	ID         string
	EmployeeID string
	TaxYear    int

	FederalBasic    decimal.Decimal
	ProvincialBasic decimal.Decimal

	FederalAdditional    decimal.Decimal
	ProvincialAdditional decimal.Decimal

	UpdatedAt time.Time
}

// FederalTotal is the full federal claim reducing taxable income.
func (c TaxClaim) FederalTotal() decimal.Decimal {
	return c.FederalBasic.Add(c.FederalAdditional)
}

// ProvincialTotal is the full provincial claim reducing taxable income.
func (c TaxClaim) ProvincialTotal() decimal.Decimal {
	return c.ProvincialBasic.Add(c.ProvincialAdditional)
}
