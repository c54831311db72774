package payroll

import (
	"time"

	"github.com/maplehr/payroll-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// RunStatus is the payroll run lifecycle state.
type RunStatus string

const (
	RunDraft           RunStatus = "draft"
	RunCalculating     RunStatus = "calculating"
	RunPendingApproval RunStatus = "pending_approval"
	RunApproved        RunStatus = "approved"
	RunPaid            RunStatus = "paid"
	RunCancelled       RunStatus = "cancelled"
)

// CanTransition encodes the run state machine: draft to calculating to
// pending_approval to approved to paid, with cancelled reachable from any
// pre-paid state.
func (s RunStatus) CanTransition(to RunStatus) bool {
	if to == RunCancelled {
		return s != RunPaid && s != RunCancelled
	}
	switch s {
	case RunDraft:
		return to == RunCalculating
	case RunCalculating:
		return to == RunPendingApproval || to == RunDraft
	case RunPendingApproval:
		return to == RunApproved || to == RunDraft
	case RunApproved:
		return to == RunPaid
	}
	return false
}

// Editable reports whether records under the run accept input changes.
func (s RunStatus) Editable() bool { return s == RunDraft }

// Run is one payroll run for a pay group and period. Aggregate totals are
// derived from the run's records after all of them complete, never set
// directly.
type Run struct {
	ID          string
	CompanyID   string
	PayGroupID  string
	PeriodStart time.Time
	PeriodEnd   time.Time
	PayDate     time.Time
	TaxYear     int
	Status      RunStatus

	TotalGross        decimal.Decimal
	TotalDeductions   decimal.Decimal
	TotalNet          decimal.Decimal
	TotalEmployerCost decimal.Decimal

	ApprovedAt *time.Time
	PaidAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AdjustmentType tags a one-time adjustment. Bonus-tagged amounts are routed
// to the separate bonus tax computation and never enter the regular
// withholding base.
type AdjustmentType string

const (
	AdjustmentBonus          AdjustmentType = "bonus"
	AdjustmentRetroPay       AdjustmentType = "retro_pay"
	AdjustmentTaxableBenefit AdjustmentType = "taxable_benefit"
	AdjustmentReimbursement  AdjustmentType = "reimbursement"
	AdjustmentDeduction      AdjustmentType = "deduction"
	AdjustmentOther          AdjustmentType = "other"
)

func (t AdjustmentType) Valid() bool {
	switch t {
	case AdjustmentBonus, AdjustmentRetroPay, AdjustmentTaxableBenefit,
		AdjustmentReimbursement, AdjustmentDeduction, AdjustmentOther:
		return true
	}
	return false
}

type Adjustment struct {
	Type    AdjustmentType  `json:"type"`
	Amount  decimal.Decimal `json:"amount"`
	Taxable bool            `json:"taxable"`
	Note    string          `json:"note,omitempty"`
}

const (
	LeaveVacation   = "vacation"
	LeaveSickPaid   = "sick_paid"
	LeaveSickUnpaid = "sick_unpaid"
)

type LeaveEntry struct {
	Type  string          `json:"type"` // vacation | sick_paid | sick_unpaid
	Hours decimal.Decimal `json:"hours"`
}

type HolidayWorkEntry struct {
	Date  time.Time       `json:"date"`
	Hours decimal.Decimal `json:"hours"`
}

// Overrides are per-record manual adjustments to policy defaults. The
// holiday premium for working a holiday is deliberately not overridable.
type Overrides struct {
	ExemptHolidayPay *bool `json:"exempt_holiday_pay,omitempty"`
}

// PeriodInput is the stored, editable input of one record. Editing it is
// only allowed while the run is in draft; recalculation is a pure function
// of this value.
type PeriodInput struct {
	EmployeeID        string             `json:"employee_id"`
	RegularHours      decimal.Decimal    `json:"regular_hours"`
	OvertimeHours     decimal.Decimal    `json:"overtime_hours"`
	StatutoryHolidays []time.Time        `json:"statutory_holidays,omitempty"`
	Leave             []LeaveEntry       `json:"leave,omitempty"`
	HolidayWork       []HolidayWorkEntry `json:"holiday_work,omitempty"`
	Adjustments       []Adjustment       `json:"adjustments,omitempty"`
	Overrides         Overrides          `json:"overrides"`
}

// EarningKind classifies an itemized earning line.
type EarningKind string

const (
	EarningRegular        EarningKind = "regular"
	EarningOvertime       EarningKind = "overtime"
	EarningHolidayPay     EarningKind = "holiday_pay"
	EarningHolidayPremium EarningKind = "holiday_premium"
	EarningLeave          EarningKind = "leave"
	EarningBonus          EarningKind = "bonus"
	EarningRetroPay       EarningKind = "retro_pay"
	EarningTaxableBenefit EarningKind = "taxable_benefit"
	EarningReimbursement  EarningKind = "reimbursement"
	EarningOther          EarningKind = "other"
)

type EarningLine struct {
	Kind    EarningKind      `json:"kind"`
	Code    string           `json:"code,omitempty"`
	Hours   *decimal.Decimal `json:"hours,omitempty"`
	Rate    *decimal.Decimal `json:"rate,omitempty"`
	Amount  decimal.Decimal  `json:"amount"`
	Taxable bool             `json:"taxable"`
}

type DeductionLine struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
	PreTax bool            `json:"pre_tax"`
}

// Deductions is the itemized statutory and voluntary deduction set of one
// record. Federal and provincial tax are each split into a regular-income
// component and a bonus-income component for audit and display.
type Deductions struct {
	Pension              decimal.Decimal `json:"pension"`
	PensionSupplementary decimal.Decimal `json:"pension_supplementary"`
	Insurance            decimal.Decimal `json:"insurance"`

	FederalTax         decimal.Decimal `json:"federal_tax"`
	FederalBonusTax    decimal.Decimal `json:"federal_bonus_tax"`
	ProvincialTax      decimal.Decimal `json:"provincial_tax"`
	ProvincialBonusTax decimal.Decimal `json:"provincial_bonus_tax"`

	Other []DeductionLine `json:"other,omitempty"`

	// Capping flags recorded when an annual maximum limited a contribution.
	PensionCapped              bool `json:"pension_capped"`
	PensionSupplementaryCapped bool `json:"pension_supplementary_capped"`
	InsuranceCapped            bool `json:"insurance_capped"`

	// Employer-side contributions, matched against the already-capped
	// employee amounts.
	EmployerPension              decimal.Decimal `json:"employer_pension"`
	EmployerPensionSupplementary decimal.Decimal `json:"employer_pension_supplementary"`
	EmployerInsurance            decimal.Decimal `json:"employer_insurance"`
}

// EmployeeTotal sums everything withheld from the employee.
func (d Deductions) EmployeeTotal() decimal.Decimal {
	total := d.Pension.
		Add(d.PensionSupplementary).
		Add(d.Insurance).
		Add(d.FederalTax).
		Add(d.FederalBonusTax).
		Add(d.ProvincialTax).
		Add(d.ProvincialBonusTax)
	for _, line := range d.Other {
		total = total.Add(line.Amount)
	}
	return total
}

// EmployerTotal sums the employer-side statutory cost.
func (d Deductions) EmployerTotal() decimal.Decimal {
	return d.EmployerPension.
		Add(d.EmployerPensionSupplementary).
		Add(d.EmployerInsurance)
}

// YearToDate is the employee's accumulated position at record-creation time.
type YearToDate struct {
	Gross                decimal.Decimal `json:"gross"`
	RegularTaxable       decimal.Decimal `json:"regular_taxable"`
	Pension              decimal.Decimal `json:"pension"`
	PensionSupplementary decimal.Decimal `json:"pension_supplementary"`
	Insurance            decimal.Decimal `json:"insurance"`
	FederalTax           decimal.Decimal `json:"federal_tax"`
	ProvincialTax        decimal.Decimal `json:"provincial_tax"`
	Periods              int             `json:"periods"`
}

// Record is the computed result for one (run, employee) pair. The employee
// name, jurisdiction, compensation and pay-group fields are snapshots taken
// at creation so later employee edits never rewrite history. Totals are
// derived fields: they are only ever written by RecomputeTotals.
type Record struct {
	ID         string
	RunID      string
	EmployeeID string
	CompanyID  string

	EmployeeName       string
	Province           string
	CompensationType   employee.CompensationType
	CompensationAmount decimal.Decimal
	PayGroupName       string

	Input      PeriodInput
	Earnings   []EarningLine
	Deductions Deductions

	GrossPay            decimal.Decimal
	RegularTaxable      decimal.Decimal
	BonusIncome         decimal.Decimal
	PensionableEarnings decimal.Decimal
	InsurableEarnings   decimal.Decimal
	VacationAccrued     decimal.Decimal
	// Days credited in the period, for average-day's-pay lookbacks.
	DaysWorked      decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
	EmployerCost    decimal.Decimal

	YTD YearToDate

	Modified  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecomputeTotals re-derives every total from the itemized lines. Derived
// fields have no setter anywhere else; calling this after any change to the
// itemized fields is what keeps them from drifting.
func (r *Record) RecomputeTotals() {
	gross := decimal.Zero
	for _, line := range r.Earnings {
		gross = gross.Add(line.Amount)
	}
	r.GrossPay = gross
	r.TotalDeductions = r.Deductions.EmployeeTotal()
	r.NetPay = gross.Sub(r.TotalDeductions)
	r.EmployerCost = r.Deductions.EmployerTotal().Add(r.VacationAccrued)
}
