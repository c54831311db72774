package company

import (
	"github.com/maplehr/payroll-backend-go/internal/domain/remittance"
	"github.com/maplehr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpdateSettingsRequest struct {
	RemitterFrequency   remittance.Frequency `json:"remitter_frequency"`
	DefaultVacationRate decimal.Decimal      `json:"default_vacation_rate"`
	HolidayPayByDefault bool                 `json:"holiday_pay_by_default"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors
	if !r.RemitterFrequency.Valid() {
		errs = append(errs, validator.ValidationError{Field: "remitter_frequency", Message: "must be quarterly, monthly, accelerated_semimonthly or accelerated_weekly"})
	}
	if r.DefaultVacationRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "default_vacation_rate", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SettingsResponse struct {
	ID                  string               `json:"id"`
	Name                string               `json:"name"`
	RemitterFrequency   remittance.Frequency `json:"remitter_frequency"`
	DefaultVacationRate decimal.Decimal      `json:"default_vacation_rate"`
	HolidayPayByDefault bool                 `json:"holiday_pay_by_default"`
}

func ToSettingsResponse(c Company) SettingsResponse {
	return SettingsResponse{
		ID:                  c.ID,
		Name:                c.Name,
		RemitterFrequency:   c.RemitterFrequency,
		DefaultVacationRate: c.DefaultVacationRate,
		HolidayPayByDefault: c.HolidayPayByDefault,
	}
}
