package employee

import (
	"github.com/shopspring/decimal"
)

type UpdateCompensationRequest struct {
	Type          CompensationType `json:"type"`
	Amount        decimal.Decimal  `json:"amount"`
	EffectiveDate string           `json:"effective_date"` // yyyy-mm-dd
}

type SetAdditionalClaimsRequest struct {
	TaxYear              int             `json:"tax_year"`
	FederalAdditional    decimal.Decimal `json:"federal_additional"`
	ProvincialAdditional decimal.Decimal `json:"provincial_additional"`
}

type EmployeeResponse struct {
	ID              string          `json:"id"`
	FullName        string          `json:"full_name"`
	Province        string          `json:"province"`
	HireDate        string          `json:"hire_date"`
	TerminationDate *string         `json:"termination_date,omitempty"`
	PayGroupID      string          `json:"pay_group_id"`
	VacationRate    decimal.Decimal `json:"vacation_rate"`
}

type CompensationResponse struct {
	ID            string           `json:"id"`
	Type          CompensationType `json:"type"`
	Amount        decimal.Decimal  `json:"amount"`
	EffectiveDate string           `json:"effective_date"`
	EndDate       *string          `json:"end_date,omitempty"`
}

type TaxClaimResponse struct {
	TaxYear              int             `json:"tax_year"`
	FederalBasic         decimal.Decimal `json:"federal_basic"`
	ProvincialBasic      decimal.Decimal `json:"provincial_basic"`
	FederalAdditional    decimal.Decimal `json:"federal_additional"`
	ProvincialAdditional decimal.Decimal `json:"provincial_additional"`
	FederalTotal         decimal.Decimal `json:"federal_total"`
	ProvincialTotal      decimal.Decimal `json:"provincial_total"`
}

func ToEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:           e.ID,
		FullName:     e.FullName,
		Province:     e.Province,
		HireDate:     e.HireDate.Format("2006-01-02"),
		PayGroupID:   e.PayGroupID,
		VacationRate: e.VacationRate,
	}
	if e.TerminationDate != nil {
		s := e.TerminationDate.Format("2006-01-02")
		resp.TerminationDate = &s
	}
	return resp
}

func ToCompensationResponse(s CompensationSnapshot) CompensationResponse {
	resp := CompensationResponse{
		ID:            s.ID,
		Type:          s.Type,
		Amount:        s.Amount,
		EffectiveDate: s.EffectiveDate.Format("2006-01-02"),
	}
	if s.EndDate != nil {
		e := s.EndDate.Format("2006-01-02")
		resp.EndDate = &e
	}
	return resp
}

func ToTaxClaimResponse(c TaxClaim) TaxClaimResponse {
	return TaxClaimResponse{
		TaxYear:              c.TaxYear,
		FederalBasic:         c.FederalBasic,
		ProvincialBasic:      c.ProvincialBasic,
		FederalAdditional:    c.FederalAdditional,
		ProvincialAdditional: c.ProvincialAdditional,
		FederalTotal:         c.FederalTotal(),
		ProvincialTotal:      c.ProvincialTotal(),
	}
}
