package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func TestRunStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from, to RunStatus
		want     bool
	}{
		{RunDraft, RunCalculating, true},
		{RunCalculating, RunPendingApproval, true},
		{RunCalculating, RunDraft, true},
		{RunPendingApproval, RunApproved, true},
		{RunPendingApproval, RunDraft, true},
		{RunApproved, RunPaid, true},

		{RunDraft, RunApproved, false},
		{RunDraft, RunPaid, false},
		{RunPendingApproval, RunPaid, false},
		{RunApproved, RunDraft, false},
		{RunPaid, RunDraft, false},

		// Cancellation is open until money moves.
		{RunDraft, RunCancelled, true},
		{RunCalculating, RunCancelled, true},
		{RunPendingApproval, RunCancelled, true},
		{RunApproved, RunCancelled, true},
		{RunPaid, RunCancelled, false},
		{RunCancelled, RunCancelled, false},
		{RunCancelled, RunDraft, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestRecord_RecomputeTotals(t *testing.T) {
	rec := Record{
		Earnings: []EarningLine{
			{Kind: EarningRegular, Amount: dec("2000"), Taxable: true},
			{Kind: EarningOvertime, Amount: dec("187.50"), Taxable: true},
			{Kind: EarningBonus, Amount: dec("500"), Taxable: true},
		},
		Deductions: Deductions{
			Pension:           dec("151.90"),
			Insurance:         dec("41.44"),
			FederalTax:        dec("235.07"),
			FederalBonusTax:   dec("75.00"),
			ProvincialTax:     dec("85.71"),
			ProvincialBonusTax: dec("25.25"),
			EmployerPension:   dec("151.90"),
			EmployerInsurance: dec("58.02"),
		},
		VacationAccrued: dec("87.50"),
	}

	rec.RecomputeTotals()

	assert.True(t, rec.GrossPay.Equal(dec("2687.50")), "gross got %s", rec.GrossPay)
	assert.True(t, rec.TotalDeductions.Equal(dec("614.37")), "deductions got %s", rec.TotalDeductions)
	assert.True(t, rec.NetPay.Equal(dec("2073.13")), "net got %s", rec.NetPay)
	assert.True(t, rec.EmployerCost.Equal(dec("297.42")), "employer cost got %s", rec.EmployerCost)
}

func TestValidateInput_RejectsBadEntries(t *testing.T) {
	hourlyNoHours := PeriodInput{EmployeeID: "emp-1"}
	assert.Error(t, ValidateInput(hourlyNoHours, true))

	negative := PeriodInput{EmployeeID: "emp-1", RegularHours: dec("-8")}
	assert.Error(t, ValidateInput(negative, true))

	badAdjustment := PeriodInput{
		EmployeeID:   "emp-1",
		RegularHours: dec("80"),
		Adjustments:  []Adjustment{{Type: AdjustmentType("mystery"), Amount: dec("10")}},
	}
	assert.Error(t, ValidateInput(badAdjustment, true))

	ok := PeriodInput{
		EmployeeID:   "emp-1",
		RegularHours: dec("80"),
		Leave:        []LeaveEntry{{Type: LeaveVacation, Hours: dec("8")}},
		Adjustments:  []Adjustment{{Type: AdjustmentBonus, Amount: dec("500"), Taxable: true}},
	}
	assert.NoError(t, ValidateInput(ok, true))
}
