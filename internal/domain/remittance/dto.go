package remittance

import (
	"github.com/shopspring/decimal"
)

type ObligationResponse struct {
	ID          string          `json:"id"`
	Frequency   Frequency       `json:"frequency"`
	PeriodStart string          `json:"period_start"`
	PeriodEnd   string          `json:"period_end"`
	DueDate     string          `json:"due_date"`
	Pension     decimal.Decimal `json:"pension"`
	Insurance   decimal.Decimal `json:"insurance"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
	Status      Status          `json:"status"`
	PaidAt      *string         `json:"paid_at,omitempty"`
	Penalty     decimal.Decimal `json:"penalty"`
	RunIDs      []string        `json:"run_ids,omitempty"`
}

func ToObligationResponse(o Obligation) ObligationResponse {
	resp := ObligationResponse{
		ID:          o.ID,
		Frequency:   o.Frequency,
		PeriodStart: o.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   o.PeriodEnd.Format("2006-01-02"),
		DueDate:     o.DueDate.Format("2006-01-02"),
		Pension:     o.Pension,
		Insurance:   o.Insurance,
		Tax:         o.Tax,
		Total:       o.Total,
		Status:      o.Status,
		Penalty:     o.Penalty,
		RunIDs:      o.RunIDs,
	}
	if o.PaidAt != nil {
		p := o.PaidAt.Format("2006-01-02")
		resp.PaidAt = &p
	}
	return resp
}
