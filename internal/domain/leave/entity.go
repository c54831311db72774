package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// VacationEventKind tags a vacation ledger entry for audit.
type VacationEventKind string

const (
	VacationAccrual           VacationEventKind = "accrual"
	VacationPayoutScheduled   VacationEventKind = "payout_scheduled"
	VacationPayoutCashout     VacationEventKind = "payout_cashout"
	VacationPayoutTermination VacationEventKind = "payout_termination"
	VacationTaken             VacationEventKind = "taken"
)

func (k VacationEventKind) Payout() bool {
	switch k {
	case VacationPayoutScheduled, VacationPayoutCashout, VacationPayoutTermination, VacationTaken:
		return true
	}
	return false
}

// VacationEvent is one reason-tagged movement on the vacation balance.
type VacationEvent struct {
	ID         string
	EmployeeID string
	Kind       VacationEventKind
	Amount     decimal.Decimal // dollars; positive magnitude, Kind gives direction
	Reason     string
	RunID      *string
	OccurredAt time.Time
}

// VacationBalance is the running dollar balance of accrued vacation pay.
type VacationBalance struct {
	EmployeeID string
	Balance    decimal.Decimal
	UpdatedAt  time.Time
}

// SickBalance tracks an employee's sick entitlement for one calendar year.
// Created on demand, never pre-populated.
type SickBalance struct {
	ID         string
	EmployeeID string
	Year       int

	EntitledPaid   decimal.Decimal // days
	EntitledUnpaid decimal.Decimal
	UsedPaid       decimal.Decimal
	UsedUnpaid     decimal.Decimal
	CarriedOver    decimal.Decimal

	// First day the employee may use sick leave (hire + waiting period).
	EligibleFrom time.Time

	// Days granted so far under monthly accrual; equals the full paid
	// entitlement under immediate accrual once eligible.
	AccruedToDate decimal.Decimal

	UpdatedAt time.Time
}

// RemainingPaid is the paid entitlement still available, carryover included.
func (b SickBalance) RemainingPaid() decimal.Decimal {
	return b.AccruedToDate.Add(b.CarriedOver).Sub(b.UsedPaid)
}

// RemainingUnpaid is the unpaid entitlement still available.
func (b SickBalance) RemainingUnpaid() decimal.Decimal {
	return b.EntitledUnpaid.Sub(b.UsedUnpaid)
}

// SickUsage records one sick day (or part-day) taken, with the average day's
// pay computed over the jurisdiction's lookback window at usage time.
type SickUsage struct {
	ID            string
	EmployeeID    string
	Year          int
	Date          time.Time
	Days          decimal.Decimal
	Paid          bool
	AverageDayPay decimal.Decimal
	LookbackDays  int
	RunID         *string
	CreatedAt     time.Time
}
