package paygroup

import (
	"github.com/maplehr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreatePayGroupRequest struct {
	Name              string            `json:"name"`
	Province          string            `json:"province"`
	Frequency         Frequency         `json:"frequency"`
	CompensationType  CompensationType  `json:"compensation_type"`
	WithholdingMethod WithholdingMethod `json:"withholding_method"`
	StartDayRule      StartDayRule      `json:"start_day_rule"`
	Overtime          OvertimePolicy    `json:"overtime"`
	Earnings          EarningsConfig    `json:"earnings"`
	Benefits          BenefitsConfig    `json:"benefits"`
	Deductions        DeductionsConfig  `json:"deductions"`
}

// Validate enforces every configuration-time rule: a pay group that passes
// here can never fail period resolution or method selection at run time.
func (r *CreatePayGroupRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if validator.IsEmpty(r.Province) {
		errs = append(errs, validator.ValidationError{Field: "province", Message: "is required"})
	}
	if !r.Frequency.Valid() {
		errs = append(errs, validator.ValidationError{Field: "frequency", Message: "must be weekly, biweekly, semimonthly or monthly"})
	}
	if !r.WithholdingMethod.Valid() {
		errs = append(errs, validator.ValidationError{Field: "withholding_method", Message: "must be annualization or cumulative"})
	}
	if r.CompensationType != CompensationSalaried && r.CompensationType != CompensationHourly {
		errs = append(errs, validator.ValidationError{Field: "compensation_type", Message: "must be salaried or hourly"})
	}
	if r.Frequency.Valid() && !r.StartDayRule.CompatibleWith(r.Frequency) {
		errs = append(errs, validator.ValidationError{Field: "start_day_rule", Message: "is not compatible with the pay frequency"})
	}
	if r.StartDayRule.Kind == StartRuleDayOfMonth && (r.StartDayRule.DayOfMonth < 1 || r.StartDayRule.DayOfMonth > 28) {
		errs = append(errs, validator.ValidationError{Field: "start_day_rule.day_of_month", Message: "must be between 1 and 28"})
	}
	if r.Overtime.Multiplier.LessThan(decimal.NewFromInt(1)) && !r.Overtime.Multiplier.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "overtime.multiplier", Message: "must be at least 1"})
	}
	if r.Earnings.VacationRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "earnings.vacation_rate", Message: "must be non-negative"})
	}
	if r.Earnings.HolidayPremiumRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "earnings.holiday_premium_rate", Message: "must be non-negative"})
	}
	for _, item := range r.Benefits.Items {
		if item.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "benefits.items", Message: "amount must be non-negative"})
			break
		}
	}
	for _, item := range r.Deductions.Items {
		if item.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "deductions.items", Message: "amount must be non-negative"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayGroupResponse struct {
	ID                string            `json:"id"`
	CompanyID         string            `json:"company_id"`
	Name              string            `json:"name"`
	Province          string            `json:"province"`
	Frequency         Frequency         `json:"frequency"`
	CompensationType  CompensationType  `json:"compensation_type"`
	WithholdingMethod WithholdingMethod `json:"withholding_method"`
	StartDayRule      StartDayRule      `json:"start_day_rule"`
	Overtime          OvertimePolicy    `json:"overtime"`
	Earnings          EarningsConfig    `json:"earnings"`
	Benefits          BenefitsConfig    `json:"benefits"`
	Deductions        DeductionsConfig  `json:"deductions"`
	PeriodsPerYear    int               `json:"periods_per_year"`
}

type NextPeriodResponse struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	PayDate     string `json:"pay_date"`
}
