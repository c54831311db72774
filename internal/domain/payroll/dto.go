package payroll

import (
	"github.com/maplehr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateRunRequest struct {
	PayGroupID string `json:"pay_group_id"`
}

func (r *CreateRunRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.PayGroupID) {
		errs = append(errs, validator.ValidationError{Field: "pay_group_id", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateInput rejects malformed period input before any computation runs.
// The offending field is always named.
func ValidateInput(in PeriodInput, hourly bool) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(in.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if in.RegularHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "regular_hours", Message: "must be non-negative"})
	}
	if in.OvertimeHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_hours", Message: "must be non-negative"})
	}
	if hourly && in.RegularHours.IsZero() && in.OvertimeHours.IsZero() && len(in.Leave) == 0 {
		errs = append(errs, validator.ValidationError{Field: "regular_hours", Message: "hourly employees require hours or leave"})
	}
	for _, entry := range in.Leave {
		if entry.Hours.LessThanOrEqual(decimal.Zero) {
			errs = append(errs, validator.ValidationError{Field: "leave.hours", Message: "must be positive"})
			break
		}
	}
	for _, entry := range in.HolidayWork {
		if entry.Hours.LessThanOrEqual(decimal.Zero) {
			errs = append(errs, validator.ValidationError{Field: "holiday_work.hours", Message: "must be positive"})
			break
		}
	}
	for _, adj := range in.Adjustments {
		if !adj.Type.Valid() {
			errs = append(errs, validator.ValidationError{Field: "adjustments.type", Message: "unknown adjustment type"})
			break
		}
		if adj.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "adjustments.amount", Message: "must be non-negative"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RunResponse struct {
	ID                string          `json:"id"`
	PayGroupID        string          `json:"pay_group_id"`
	PeriodStart       string          `json:"period_start"`
	PeriodEnd         string          `json:"period_end"`
	PayDate           string          `json:"pay_date"`
	TaxYear           int             `json:"tax_year"`
	Status            RunStatus       `json:"status"`
	TotalGross        decimal.Decimal `json:"total_gross"`
	TotalDeductions   decimal.Decimal `json:"total_deductions"`
	TotalNet          decimal.Decimal `json:"total_net"`
	TotalEmployerCost decimal.Decimal `json:"total_employer_cost"`
	RecordCount       int             `json:"record_count,omitempty"`
}

type RecordResponse struct {
	ID                 string          `json:"id"`
	RunID              string          `json:"run_id"`
	EmployeeID         string          `json:"employee_id"`
	EmployeeName       string          `json:"employee_name"`
	Province           string          `json:"province"`
	Earnings           []EarningLine   `json:"earnings"`
	Deductions         Deductions      `json:"deductions"`
	GrossPay           decimal.Decimal `json:"gross_pay"`
	RegularTaxable     decimal.Decimal `json:"regular_taxable"`
	BonusIncome        decimal.Decimal `json:"bonus_income"`
	VacationAccrued    decimal.Decimal `json:"vacation_accrued"`
	TotalDeductions    decimal.Decimal `json:"total_deductions"`
	NetPay             decimal.Decimal `json:"net_pay"`
	EmployerCost       decimal.Decimal `json:"employer_cost"`
	Modified           bool            `json:"modified"`
}

func ToRecordResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:              r.ID,
		RunID:           r.RunID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		Province:        r.Province,
		Earnings:        r.Earnings,
		Deductions:      r.Deductions,
		GrossPay:        r.GrossPay,
		RegularTaxable:  r.RegularTaxable,
		BonusIncome:     r.BonusIncome,
		VacationAccrued: r.VacationAccrued,
		TotalDeductions: r.TotalDeductions,
		NetPay:          r.NetPay,
		EmployerCost:    r.EmployerCost,
		Modified:        r.Modified,
	}
}

func ToRunResponse(run Run) RunResponse {
	return RunResponse{
		ID:                run.ID,
		PayGroupID:        run.PayGroupID,
		PeriodStart:       run.PeriodStart.Format("2006-01-02"),
		PeriodEnd:         run.PeriodEnd.Format("2006-01-02"),
		PayDate:           run.PayDate.Format("2006-01-02"),
		TaxYear:           run.TaxYear,
		Status:            run.Status,
		TotalGross:        run.TotalGross,
		TotalDeductions:   run.TotalDeductions,
		TotalNet:          run.TotalNet,
		TotalEmployerCost: run.TotalEmployerCost,
	}
}
