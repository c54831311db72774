package payroll

import (
	"github.com/maplehr/payroll-backend-go/internal/domain/employee"
	"github.com/maplehr/payroll-backend-go/internal/domain/paygroup"
	"github.com/maplehr/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Standard working time used to convert between annual, daily and hourly
// compensation.
var (
	hoursPerYear = decimal.NewFromInt(2080)
	daysPerYear  = decimal.NewFromInt(260)
	hoursPerDay  = decimal.NewFromInt(8)
)

// grossContext carries everything the calculator needs besides the period
// input itself.
type grossContext struct {
	comp           employee.CompensationSnapshot
	periodsPerYear int
	overtime       paygroup.OvertimePolicy
	earnings       paygroup.EarningsConfig
	benefits       paygroup.BenefitsConfig
	deductions     paygroup.DeductionsConfig
	vacationRate   decimal.Decimal
	// Employee-level statutory holiday pay exemption; the input override
	// takes precedence when present.
	holidayPayExempt bool
	// Hourly-equivalent rate for paid sick hours, derived from the average
	// day's pay over the jurisdiction's lookback window. Nil when the input
	// has no paid sick leave.
	sickHourlyRate *decimal.Decimal
}

// grossResult is the itemized outcome of the gross pay calculation with the
// accumulators the deduction engine consumes.
type grossResult struct {
	lines []payroll.EarningLine
	other []payroll.DeductionLine

	regularTaxable decimal.Decimal // withholding base; bonuses excluded
	bonusIncome    decimal.Decimal
	pensionable    decimal.Decimal
	insurable      decimal.Decimal
	vacationable   decimal.Decimal
	vacationAccrued decimal.Decimal
	vacationTaken   decimal.Decimal // leave pay drawn from the vacation balance

	// daysWorked feeds later average-day's-pay lookbacks.
	daysWorked decimal.Decimal
}

func cents(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// hourlyRate returns the effective hourly rate for the snapshot.
func hourlyRate(comp employee.CompensationSnapshot) decimal.Decimal {
	if comp.Type == employee.CompensationHourly {
		return comp.Amount
	}
	return comp.Amount.Div(hoursPerYear)
}

// dailyPay returns the statutory-holiday day's pay for the snapshot.
func dailyPay(comp employee.CompensationSnapshot) decimal.Decimal {
	if comp.Type == employee.CompensationHourly {
		return comp.Amount.Mul(hoursPerDay)
	}
	return comp.Amount.Div(daysPerYear)
}

// computeGross builds the itemized earnings for one record. It is a pure
// function of (input, context): recalculating with the same stored input
// always reproduces the same lines.
func computeGross(in payroll.PeriodInput, gc grossContext) grossResult {
	var res grossResult
	rate := hourlyRate(gc.comp)

	addTaxable := func(line payroll.EarningLine) {
		res.lines = append(res.lines, line)
		if !line.Taxable {
			return
		}
		res.pensionable = res.pensionable.Add(line.Amount)
		res.insurable = res.insurable.Add(line.Amount)
		if line.Kind == payroll.EarningBonus {
			res.bonusIncome = res.bonusIncome.Add(line.Amount)
			return
		}
		res.regularTaxable = res.regularTaxable.Add(line.Amount)
	}

	// Regular earnings. Salaried pay divides the annual amount by the
	// period count each time, so a frequency change never strands a stale
	// per-period figure.
	if gc.comp.Type == employee.CompensationSalaried {
		amount := cents(gc.comp.Amount.Div(decimal.NewFromInt(int64(gc.periodsPerYear))))
		addTaxable(payroll.EarningLine{Kind: payroll.EarningRegular, Amount: amount, Taxable: true})
	} else if in.RegularHours.IsPositive() {
		amount := cents(in.RegularHours.Mul(rate))
		addTaxable(payroll.EarningLine{
			Kind: payroll.EarningRegular, Hours: &in.RegularHours, Rate: &rate,
			Amount: amount, Taxable: true,
		})
	}

	// Overtime at the group's premium multiplier.
	if in.OvertimeHours.IsPositive() {
		mult := gc.overtime.Multiplier
		if mult.IsZero() {
			mult = decimal.NewFromFloat(1.5)
		}
		otRate := rate.Mul(mult)
		amount := cents(in.OvertimeHours.Mul(otRate))
		addTaxable(payroll.EarningLine{
			Kind: payroll.EarningOvertime, Hours: &in.OvertimeHours, Rate: &otRate,
			Amount: amount, Taxable: true,
		})
	}

	// Statutory holiday pay: owed whether or not the employee worked the
	// holiday, and exemptible per employee or per record.
	exemptHolidayPay := gc.holidayPayExempt
	if in.Overrides.ExemptHolidayPay != nil {
		exemptHolidayPay = *in.Overrides.ExemptHolidayPay
	}
	if gc.earnings.HolidayPayEnabled && !exemptHolidayPay {
		day := dailyPay(gc.comp)
		for range in.StatutoryHolidays {
			addTaxable(payroll.EarningLine{Kind: payroll.EarningHolidayPay, Amount: cents(day), Taxable: true})
		}
	}

	// Holiday premium for hours actually worked on a holiday. The holiday
	// pay override above never suppresses this.
	if len(in.HolidayWork) > 0 {
		premium := gc.earnings.HolidayPremiumRate
		if premium.IsZero() {
			premium = decimal.NewFromFloat(1.5)
		}
		premiumRate := rate.Mul(premium)
		for _, hw := range in.HolidayWork {
			hours := hw.Hours
			amount := cents(hours.Mul(premiumRate))
			addTaxable(payroll.EarningLine{
				Kind: payroll.EarningHolidayPremium, Hours: &hours, Rate: &premiumRate,
				Amount: amount, Taxable: true,
			})
		}
	}

	// Leave pay at the employee's current rate. Vacation leave also draws
	// the paid amount down from the running vacation balance.
	for _, entry := range in.Leave {
		if entry.Type == payroll.LeaveSickUnpaid {
			continue
		}
		hours := entry.Hours
		leaveRate := rate
		if entry.Type == payroll.LeaveSickPaid && gc.sickHourlyRate != nil {
			leaveRate = *gc.sickHourlyRate
		}
		amount := cents(hours.Mul(leaveRate))
		addTaxable(payroll.EarningLine{
			Kind: payroll.EarningLeave, Code: entry.Type, Hours: &hours, Rate: &leaveRate,
			Amount: amount, Taxable: true,
		})
		if entry.Type == payroll.LeaveVacation {
			res.vacationTaken = res.vacationTaken.Add(amount)
		}
	}

	// One-time adjustments, added verbatim. Bonus-tagged amounts are kept
	// out of the regular withholding base by addTaxable.
	for _, adj := range in.Adjustments {
		if adj.Type == payroll.AdjustmentDeduction {
			res.other = append(res.other, payroll.DeductionLine{Code: noteOr(adj.Note, "adjustment"), Amount: adj.Amount})
			continue
		}
		kind := adjustmentKind(adj.Type)
		taxable := adj.Taxable
		if adj.Type == payroll.AdjustmentReimbursement {
			taxable = false
		}
		addTaxable(payroll.EarningLine{Kind: kind, Code: adj.Note, Amount: cents(adj.Amount), Taxable: taxable})
	}

	// Employer-configured benefit items.
	for _, item := range gc.benefits.Items {
		if !item.Enabled || item.Amount.IsZero() {
			continue
		}
		addTaxable(payroll.EarningLine{
			Kind: payroll.EarningTaxableBenefit, Code: item.Code,
			Amount: cents(item.Amount), Taxable: item.Taxable,
		})
	}

	// Voluntary per-period deduction items; pre-tax items reduce the
	// withholding base.
	for _, item := range gc.deductions.Items {
		if !item.Enabled || item.Amount.IsZero() {
			continue
		}
		res.other = append(res.other, payroll.DeductionLine{Code: item.Code, Amount: cents(item.Amount), PreTax: item.PreTax})
		if item.PreTax {
			res.regularTaxable = res.regularTaxable.Sub(item.Amount)
		}
	}

	// Vacation accrues on wage earnings (bonuses, reimbursements and
	// benefit items excluded); payouts draw the balance down separately.
	for _, line := range res.lines {
		switch line.Kind {
		case payroll.EarningRegular, payroll.EarningOvertime, payroll.EarningHolidayPay,
			payroll.EarningHolidayPremium, payroll.EarningLeave, payroll.EarningRetroPay:
			res.vacationable = res.vacationable.Add(line.Amount)
		}
	}
	res.vacationAccrued = cents(res.vacationable.Mul(gc.vacationRate))

	// Days worked in the period. Salaried employees are credited the
	// period's share of the working year; hourly employees convert their
	// paid hours.
	if gc.comp.Type == employee.CompensationSalaried {
		res.daysWorked = daysPerYear.Div(decimal.NewFromInt(int64(gc.periodsPerYear)))
	} else {
		paidHours := in.RegularHours.Add(in.OvertimeHours)
		for _, hw := range in.HolidayWork {
			paidHours = paidHours.Add(hw.Hours)
		}
		for _, entry := range in.Leave {
			if entry.Type != payroll.LeaveSickUnpaid {
				paidHours = paidHours.Add(entry.Hours)
			}
		}
		res.daysWorked = paidHours.Div(hoursPerDay)
	}

	return res
}

func adjustmentKind(t payroll.AdjustmentType) payroll.EarningKind {
	switch t {
	case payroll.AdjustmentBonus:
		return payroll.EarningBonus
	case payroll.AdjustmentRetroPay:
		return payroll.EarningRetroPay
	case payroll.AdjustmentTaxableBenefit:
		return payroll.EarningTaxableBenefit
	case payroll.AdjustmentReimbursement:
		return payroll.EarningReimbursement
	}
	return payroll.EarningOther
}

func noteOr(note, fallback string) string {
	if note == "" {
		return fallback
	}
	return note
}
