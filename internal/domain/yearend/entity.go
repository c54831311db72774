package yearend

import (
	"time"

	"github.com/shopspring/decimal"
)

// Slip is the per-employee year-end tax slip. Amendments never mutate a
// filed slip: they append a new version with the next amendment number for
// the same (company, employee, year).
type Slip struct {
	ID         string
	CompanyID  string
	EmployeeID string
	TaxYear    int
	Amendment  int // 0 for the original filing

	EmployeeName string
	Province     string

	EmploymentIncome     decimal.Decimal
	Pension              decimal.Decimal
	PensionSupplementary decimal.Decimal
	Insurance            decimal.Decimal
	IncomeTax            decimal.Decimal // federal + provincial, regular + bonus
	PensionableEarnings  decimal.Decimal
	InsurableEarnings    decimal.Decimal

	CreatedAt time.Time
}

// Summary aggregates all current slips for a (company, tax year) and carries
// the reconciliation figure against remitted amounts. The difference is
// surfaced for human review, never auto-corrected.
type Summary struct {
	ID        string
	CompanyID string
	TaxYear   int

	SlipCount            int
	TotalIncome          decimal.Decimal
	TotalPension         decimal.Decimal
	TotalPensionSupplementary decimal.Decimal
	TotalInsurance       decimal.Decimal
	TotalIncomeTax       decimal.Decimal

	TotalRemitted            decimal.Decimal
	ReconciliationDifference decimal.Decimal

	CreatedAt time.Time
}
