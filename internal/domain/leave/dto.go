package leave

import (
	"github.com/maplehr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PayoutRequest struct {
	Kind   VacationEventKind `json:"kind"`
	Amount decimal.Decimal   `json:"amount"`
	Reason string            `json:"reason,omitempty"`
}

func (r *PayoutRequest) Validate() error {
	var errs validator.ValidationErrors
	if !r.Kind.Payout() || r.Kind == VacationTaken {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be payout_scheduled, payout_cashout or payout_termination"})
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type VacationBalanceResponse struct {
	EmployeeID string          `json:"employee_id"`
	Balance    decimal.Decimal `json:"balance"`
}

type VacationEventResponse struct {
	ID         string            `json:"id"`
	Kind       VacationEventKind `json:"kind"`
	Amount     decimal.Decimal   `json:"amount"`
	Reason     string            `json:"reason,omitempty"`
	RunID      *string           `json:"run_id,omitempty"`
	OccurredAt string            `json:"occurred_at"`
}

type SickBalanceResponse struct {
	Year            int             `json:"year"`
	EntitledPaid    decimal.Decimal `json:"entitled_paid"`
	EntitledUnpaid  decimal.Decimal `json:"entitled_unpaid"`
	UsedPaid        decimal.Decimal `json:"used_paid"`
	UsedUnpaid      decimal.Decimal `json:"used_unpaid"`
	CarriedOver     decimal.Decimal `json:"carried_over"`
	AccruedToDate   decimal.Decimal `json:"accrued_to_date"`
	RemainingPaid   decimal.Decimal `json:"remaining_paid"`
	RemainingUnpaid decimal.Decimal `json:"remaining_unpaid"`
	EligibleFrom    string          `json:"eligible_from"`
}

type SickUsageResponse struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"`
	Days          decimal.Decimal `json:"days"`
	Paid          bool            `json:"paid"`
	AverageDayPay decimal.Decimal `json:"average_day_pay"`
	LookbackDays  int             `json:"lookback_days"`
	RunID         *string         `json:"run_id,omitempty"`
}

func ToSickUsageResponse(u SickUsage) SickUsageResponse {
	return SickUsageResponse{
		ID:            u.ID,
		Date:          u.Date.Format("2006-01-02"),
		Days:          u.Days,
		Paid:          u.Paid,
		AverageDayPay: u.AverageDayPay,
		LookbackDays:  u.LookbackDays,
		RunID:         u.RunID,
	}
}

func ToVacationEventResponse(e VacationEvent) VacationEventResponse {
	return VacationEventResponse{
		ID:         e.ID,
		Kind:       e.Kind,
		Amount:     e.Amount,
		Reason:     e.Reason,
		RunID:      e.RunID,
		OccurredAt: e.OccurredAt.Format("2006-01-02"),
	}
}

func ToSickBalanceResponse(b SickBalance) SickBalanceResponse {
	return SickBalanceResponse{
		Year:            b.Year,
		EntitledPaid:    b.EntitledPaid,
		EntitledUnpaid:  b.EntitledUnpaid,
		UsedPaid:        b.UsedPaid,
		UsedUnpaid:      b.UsedUnpaid,
		CarriedOver:     b.CarriedOver,
		AccruedToDate:   b.AccruedToDate,
		RemainingPaid:   b.RemainingPaid(),
		RemainingUnpaid: b.RemainingUnpaid(),
		EligibleFrom:    b.EligibleFrom.Format("2006-01-02"),
	}
}
