package leave

import (
	"testing"
	"time"

	"github.com/maplehr/payroll-backend-go/internal/domain/leave"
	"github.com/maplehr/payroll-backend-go/internal/domain/payroll"
	"github.com/maplehr/payroll-backend-go/internal/domain/taxref"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func immediatePolicy() taxref.SickPolicy {
	return taxref.SickPolicy{
		PaidDays: 5, UnpaidDays: 3, WaitingDays: 90,
		Accrual: taxref.SickAccrualImmediate,
	}
}

func monthlyPolicy() taxref.SickPolicy {
	return taxref.SickPolicy{
		PaidDays:         10,
		WaitingDays:      30,
		Accrual:          taxref.SickAccrualMonthly,
		InitialGrant:     dec("3"),
		QualifyingMonths: 1,
		MonthlyIncrement: dec("1"),
	}
}

func TestAccruedDays_ImmediateWaitsOutTheWaitingPeriod(t *testing.T) {
	hire := date(2025, 1, 10)
	eligible := hire.AddDate(0, 0, 90)

	// Day 30: still inside the waiting period, nothing granted.
	got := accruedDays(hire, hire.AddDate(0, 0, 30), eligible, immediatePolicy())
	assert.True(t, got.IsZero())

	// Day 91: the full entitlement arrives at once.
	got = accruedDays(hire, hire.AddDate(0, 0, 91), eligible, immediatePolicy())
	assert.True(t, got.Equal(dec("5")), "got %s", got)
}

func TestAccruedDays_MonthlyBuildsUpAndCaps(t *testing.T) {
	hire := date(2025, 1, 15)
	eligible := hire.AddDate(0, 0, 30)
	policy := monthlyPolicy()

	// Before the qualifying month nothing is granted.
	assert.True(t, accruedDays(hire, date(2025, 2, 1), eligible, policy).IsZero())

	// One month in: the initial grant.
	assert.True(t, accruedDays(hire, date(2025, 2, 15), eligible, policy).Equal(dec("3")))

	// Two months in: one increment on top.
	assert.True(t, accruedDays(hire, date(2025, 3, 15), eligible, policy).Equal(dec("4")))

	// Late in the year the annual entitlement caps the build-up.
	got := accruedDays(hire, date(2025, 12, 15), eligible, policy)
	assert.True(t, got.Equal(dec("10")), "got %s", got)
}

func TestMonthsBetween(t *testing.T) {
	assert.Equal(t, 0, monthsBetween(date(2025, 1, 15), date(2025, 2, 14)))
	assert.Equal(t, 1, monthsBetween(date(2025, 1, 15), date(2025, 2, 15)))
	assert.Equal(t, 11, monthsBetween(date(2025, 1, 15), date(2025, 12, 15)))
	assert.Equal(t, 0, monthsBetween(date(2025, 6, 1), date(2025, 1, 1)))
}

func TestSickDaysRequested_ConvertsHoursToDays(t *testing.T) {
	paid, unpaid := sickDaysRequested([]payroll.LeaveEntry{
		{Type: payroll.LeaveSickPaid, Hours: dec("8")},
		{Type: payroll.LeaveSickPaid, Hours: dec("4")},
		{Type: payroll.LeaveSickUnpaid, Hours: dec("16")},
		{Type: payroll.LeaveVacation, Hours: dec("8")},
	})

	assert.True(t, paid.Equal(dec("1.5")), "got %s", paid)
	assert.True(t, unpaid.Equal(dec("2")), "got %s", unpaid)
}

func TestVacationTakenOf_ReadsLeaveLines(t *testing.T) {
	rate := dec("25")
	hours := dec("16")
	rec := payroll.Record{
		Earnings: []payroll.EarningLine{
			{Kind: payroll.EarningRegular, Amount: dec("2000"), Taxable: true},
			{Kind: payroll.EarningLeave, Code: payroll.LeaveVacation, Hours: &hours, Rate: &rate, Amount: dec("400"), Taxable: true},
			{Kind: payroll.EarningLeave, Code: payroll.LeaveSickPaid, Amount: dec("240"), Taxable: true},
		},
	}

	assert.True(t, vacationTakenOf(rec).Equal(dec("400")))
}

func TestSickBalance_RemainingDraw(t *testing.T) {
	bal := leave.SickBalance{
		EntitledPaid:   dec("10"),
		EntitledUnpaid: dec("3"),
		AccruedToDate:  dec("5"),
		CarriedOver:    dec("2"),
		UsedPaid:       dec("1"),
	}

	assert.True(t, bal.RemainingPaid().Equal(dec("6")), "accrued + carryover - used, got %s", bal.RemainingPaid())
	assert.True(t, bal.RemainingUnpaid().Equal(dec("3")))
}
