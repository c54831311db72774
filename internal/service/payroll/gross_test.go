package payroll

import (
	"testing"
	"time"

	"github.com/maplehr/payroll-backend-go/internal/domain/employee"
	"github.com/maplehr/payroll-backend-go/internal/domain/paygroup"
	"github.com/maplehr/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func hourly(rate string) employee.CompensationSnapshot {
	return employee.CompensationSnapshot{
		Type:          employee.CompensationHourly,
		Amount:        d(rate),
		EffectiveDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func salaried(annual string) employee.CompensationSnapshot {
	return employee.CompensationSnapshot{
		Type:          employee.CompensationSalaried,
		Amount:        d(annual),
		EffectiveDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func biweeklyContext(comp employee.CompensationSnapshot) grossContext {
	return grossContext{
		comp:           comp,
		periodsPerYear: 26,
		earnings:       paygroup.EarningsConfig{HolidayPayEnabled: true},
		vacationRate:   d("0.04"),
	}
}

func lineAmount(t *testing.T, res grossResult, kind payroll.EarningKind) decimal.Decimal {
	t.Helper()
	total := decimal.Zero
	found := false
	for _, l := range res.lines {
		if l.Kind == kind {
			total = total.Add(l.Amount)
			found = true
		}
	}
	require.True(t, found, "no %s line", kind)
	return total
}

func TestComputeGross_HourlyWithOvertimeAndBonus(t *testing.T) {
	in := payroll.PeriodInput{
		EmployeeID:    "emp-1",
		RegularHours:  d("80"),
		OvertimeHours: d("5"),
		Adjustments: []payroll.Adjustment{
			{Type: payroll.AdjustmentBonus, Amount: d("500"), Taxable: true},
		},
	}

	res := computeGross(in, biweeklyContext(hourly("25")))

	assert.True(t, lineAmount(t, res, payroll.EarningRegular).Equal(d("2000")), "regular")
	assert.True(t, lineAmount(t, res, payroll.EarningOvertime).Equal(d("187.50")), "overtime at 1.5x")
	assert.True(t, lineAmount(t, res, payroll.EarningBonus).Equal(d("500")), "bonus")

	// The bonus counts toward pensionable and insurable earnings but stays
	// out of the regular withholding base.
	assert.True(t, res.regularTaxable.Equal(d("2187.50")), "regular taxable got %s", res.regularTaxable)
	assert.True(t, res.bonusIncome.Equal(d("500")))
	assert.True(t, res.pensionable.Equal(d("2687.50")))
	assert.True(t, res.insurable.Equal(d("2687.50")))

	// Vacation accrues on wages, not on the bonus.
	assert.True(t, res.vacationable.Equal(d("2187.50")))
	assert.True(t, res.vacationAccrued.Equal(d("87.50")))
}

func TestComputeGross_VacationAccrualRate(t *testing.T) {
	in := payroll.PeriodInput{EmployeeID: "emp-1", RegularHours: d("80")}

	res := computeGross(in, biweeklyContext(hourly("25")))

	// $2,000.00 of wages at 4% accrues exactly $80.00.
	assert.True(t, res.vacationAccrued.Equal(d("80.00")), "got %s", res.vacationAccrued)
}

func TestComputeGross_SalariedIgnoresHours(t *testing.T) {
	in := payroll.PeriodInput{EmployeeID: "emp-1"}

	res := computeGross(in, biweeklyContext(salaried("52000")))

	assert.True(t, lineAmount(t, res, payroll.EarningRegular).Equal(d("2000")))
	assert.True(t, res.regularTaxable.Equal(d("2000")))
}

func TestComputeGross_HolidayPayAndPremium(t *testing.T) {
	holiday := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	in := payroll.PeriodInput{
		EmployeeID:        "emp-1",
		RegularHours:      d("72"),
		StatutoryHolidays: []time.Time{holiday},
		HolidayWork:       []payroll.HolidayWorkEntry{{Date: holiday, Hours: d("4")}},
	}

	res := computeGross(in, biweeklyContext(hourly("25")))

	// A day's pay for the holiday itself plus the worked hours at 1.5x.
	assert.True(t, lineAmount(t, res, payroll.EarningHolidayPay).Equal(d("200")))
	assert.True(t, lineAmount(t, res, payroll.EarningHolidayPremium).Equal(d("150")))
}

func TestComputeGross_HolidayPayOverrideKeepsPremium(t *testing.T) {
	holiday := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	exempt := true
	in := payroll.PeriodInput{
		EmployeeID:        "emp-1",
		RegularHours:      d("72"),
		StatutoryHolidays: []time.Time{holiday},
		HolidayWork:       []payroll.HolidayWorkEntry{{Date: holiday, Hours: d("4")}},
		Overrides:         payroll.Overrides{ExemptHolidayPay: &exempt},
	}

	res := computeGross(in, biweeklyContext(hourly("25")))

	for _, l := range res.lines {
		assert.NotEqual(t, payroll.EarningHolidayPay, l.Kind, "holiday pay should be suppressed")
	}
	assert.True(t, lineAmount(t, res, payroll.EarningHolidayPremium).Equal(d("150")))
}

func TestComputeGross_PaidSickUsesAverageDayRate(t *testing.T) {
	sickRate := d("30")
	gc := biweeklyContext(hourly("25"))
	gc.sickHourlyRate = &sickRate
	in := payroll.PeriodInput{
		EmployeeID:   "emp-1",
		RegularHours: d("72"),
		Leave: []payroll.LeaveEntry{
			{Type: payroll.LeaveSickPaid, Hours: d("8")},
			{Type: payroll.LeaveSickUnpaid, Hours: d("8")},
		},
	}

	res := computeGross(in, gc)

	// Paid sick hours at the average day's rate; unpaid sick produces no line.
	assert.True(t, lineAmount(t, res, payroll.EarningLeave).Equal(d("240")))
}

func TestComputeGross_VacationLeaveDrawsBalance(t *testing.T) {
	in := payroll.PeriodInput{
		EmployeeID:   "emp-1",
		RegularHours: d("64"),
		Leave: []payroll.LeaveEntry{
			{Type: payroll.LeaveVacation, Hours: d("16")},
		},
	}

	res := computeGross(in, biweeklyContext(hourly("25")))

	assert.True(t, res.vacationTaken.Equal(d("400")), "got %s", res.vacationTaken)
	// Vacation hours are still wages, so they accrue vacation themselves.
	assert.True(t, res.vacationable.Equal(d("2000")))
}

func TestComputeGross_ReimbursementNeverTaxable(t *testing.T) {
	in := payroll.PeriodInput{
		EmployeeID:   "emp-1",
		RegularHours: d("80"),
		Adjustments: []payroll.Adjustment{
			{Type: payroll.AdjustmentReimbursement, Amount: d("120.55"), Taxable: true},
		},
	}

	res := computeGross(in, biweeklyContext(hourly("25")))

	assert.True(t, res.regularTaxable.Equal(d("2000")))
	assert.True(t, res.pensionable.Equal(d("2000")))
	assert.True(t, lineAmount(t, res, payroll.EarningReimbursement).Equal(d("120.55")))
}

func TestComputeGross_PreTaxDeductionReducesBase(t *testing.T) {
	gc := biweeklyContext(hourly("25"))
	gc.deductions = paygroup.DeductionsConfig{Items: []paygroup.DeductionItem{
		{Code: "rrsp", Amount: d("100"), PreTax: true, Enabled: true},
		{Code: "social_club", Amount: d("10"), Enabled: true},
	}}
	in := payroll.PeriodInput{EmployeeID: "emp-1", RegularHours: d("80")}

	res := computeGross(in, gc)

	assert.True(t, res.regularTaxable.Equal(d("1900")), "got %s", res.regularTaxable)
	require.Len(t, res.other, 2)
	assert.True(t, res.other[0].PreTax)
	assert.False(t, res.other[1].PreTax)
}

func TestComputeGross_Deterministic(t *testing.T) {
	in := payroll.PeriodInput{
		EmployeeID:    "emp-1",
		RegularHours:  d("80"),
		OvertimeHours: d("3.5"),
		Adjustments: []payroll.Adjustment{
			{Type: payroll.AdjustmentBonus, Amount: d("250"), Taxable: true},
		},
	}
	gc := biweeklyContext(hourly("31.17"))

	first := computeGross(in, gc)
	second := computeGross(in, gc)

	require.Equal(t, len(first.lines), len(second.lines))
	for i := range first.lines {
		assert.True(t, first.lines[i].Amount.Equal(second.lines[i].Amount))
	}
	assert.True(t, first.regularTaxable.Equal(second.regularTaxable))
	assert.True(t, first.vacationAccrued.Equal(second.vacationAccrued))
}
