package yearend

import (
	"github.com/shopspring/decimal"
)

type SlipResponse struct {
	ID                   string          `json:"id"`
	EmployeeID           string          `json:"employee_id"`
	EmployeeName         string          `json:"employee_name"`
	Province             string          `json:"province"`
	TaxYear              int             `json:"tax_year"`
	Amendment            int             `json:"amendment"`
	EmploymentIncome     decimal.Decimal `json:"employment_income"`
	Pension              decimal.Decimal `json:"pension"`
	PensionSupplementary decimal.Decimal `json:"pension_supplementary"`
	Insurance            decimal.Decimal `json:"insurance"`
	IncomeTax            decimal.Decimal `json:"income_tax"`
	PensionableEarnings  decimal.Decimal `json:"pensionable_earnings"`
	InsurableEarnings    decimal.Decimal `json:"insurable_earnings"`
}

type SummaryResponse struct {
	TaxYear                   int             `json:"tax_year"`
	SlipCount                 int             `json:"slip_count"`
	TotalIncome               decimal.Decimal `json:"total_income"`
	TotalPension              decimal.Decimal `json:"total_pension"`
	TotalPensionSupplementary decimal.Decimal `json:"total_pension_supplementary"`
	TotalInsurance            decimal.Decimal `json:"total_insurance"`
	TotalIncomeTax            decimal.Decimal `json:"total_income_tax"`
	TotalRemitted             decimal.Decimal `json:"total_remitted"`
	ReconciliationDifference  decimal.Decimal `json:"reconciliation_difference"`
}

func ToSlipResponse(s Slip) SlipResponse {
	return SlipResponse{
		ID:                   s.ID,
		EmployeeID:           s.EmployeeID,
		EmployeeName:         s.EmployeeName,
		Province:             s.Province,
		TaxYear:              s.TaxYear,
		Amendment:            s.Amendment,
		EmploymentIncome:     s.EmploymentIncome,
		Pension:              s.Pension,
		PensionSupplementary: s.PensionSupplementary,
		Insurance:            s.Insurance,
		IncomeTax:            s.IncomeTax,
		PensionableEarnings:  s.PensionableEarnings,
		InsurableEarnings:    s.InsurableEarnings,
	}
}

func ToSummaryResponse(s Summary) SummaryResponse {
	return SummaryResponse{
		TaxYear:                   s.TaxYear,
		SlipCount:                 s.SlipCount,
		TotalIncome:               s.TotalIncome,
		TotalPension:              s.TotalPension,
		TotalPensionSupplementary: s.TotalPensionSupplementary,
		TotalInsurance:            s.TotalInsurance,
		TotalIncomeTax:            s.TotalIncomeTax,
		TotalRemitted:             s.TotalRemitted,
		ReconciliationDifference:  s.ReconciliationDifference,
	}
}
