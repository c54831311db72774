package payroll

import (
	"github.com/maplehr/payroll-backend-go/internal/domain/employee"
	"github.com/maplehr/payroll-backend-go/internal/domain/paygroup"
	"github.com/maplehr/payroll-backend-go/internal/domain/payroll"
	"github.com/maplehr/payroll-backend-go/internal/domain/taxref"
	"github.com/shopspring/decimal"
)

// statutoryInput bundles the statutory deduction engine's inputs. All
// amounts are for the current period unless named year-to-date.
type statutoryInput struct {
	edition        taxref.Edition
	periodsPerYear int
	method         paygroup.WithholdingMethod
	claim          employee.TaxClaim
	ytd            payroll.YearToDate
	taxYear        int

	initialPension       decimal.Decimal
	initialSupplementary decimal.Decimal
	initialInsurance     decimal.Decimal

	pensionExempt       bool
	supplementaryExempt bool
	insuranceExempt     bool

	pensionable    decimal.Decimal
	insurable      decimal.Decimal
	regularTaxable decimal.Decimal
	bonusIncome    decimal.Decimal
}

// computeStatutory derives the full statutory deduction set: both pension
// tiers, insurance, and federal/provincial withholding with the bonus
// component separated. Contributions are capped to the remaining annual
// room, never rejected, and capping is flagged for audit.
func computeStatutory(in statutoryInput) payroll.Deductions {
	var d payroll.Deductions
	periods := decimal.NewFromInt(int64(in.periodsPerYear))
	pr := in.edition.Pension
	ir := in.edition.Insurance

	// Base pension tier: rate on pensionable earnings above the per-period
	// share of the basic exemption.
	if !in.pensionExempt {
		exemption := pr.BasicExemption.Div(periods)
		pensionableCeiling := pr.MaxPensionable.Div(periods)
		base := decimal.Min(in.pensionable, pensionableCeiling).Sub(exemption)
		if base.IsNegative() {
			base = decimal.Zero
		}
		uncapped := cents(base.Mul(pr.Rate))
		room := pr.MaxContribution.Sub(in.ytd.Pension).Sub(in.initialPension)
		d.Pension, d.PensionCapped = capToRoom(uncapped, room)
	}

	// Supplementary tier: only the slice of earnings between the base
	// ceiling and the supplementary ceiling, with its own annual maximum.
	if !in.pensionExempt && !in.supplementaryExempt {
		lower := pr.MaxPensionable.Div(periods)
		upper := pr.SupplementaryCeiling.Div(periods)
		slice := decimal.Min(in.pensionable, upper).Sub(lower)
		if slice.IsPositive() {
			uncapped := cents(slice.Mul(pr.SupplementaryRate))
			room := pr.MaxSupplementary.Sub(in.ytd.PensionSupplementary).Sub(in.initialSupplementary)
			d.PensionSupplementary, d.PensionSupplementaryCapped = capToRoom(uncapped, room)
		}
	}

	if !in.insuranceExempt {
		insurableCeiling := ir.MaxInsurable.Div(periods)
		base := decimal.Min(in.insurable, insurableCeiling)
		uncapped := cents(base.Mul(ir.Rate))
		room := ir.MaxContribution.Sub(in.ytd.Insurance).Sub(in.initialInsurance)
		d.Insurance, d.InsuranceCapped = capToRoom(uncapped, room)
	}

	// Employer side matches the capped employee amounts: when annual room
	// limits the employee contribution, the employer contribution shrinks
	// in proportion.
	d.EmployerPension = d.Pension
	d.EmployerPensionSupplementary = d.PensionSupplementary
	d.EmployerInsurance = cents(d.Insurance.Mul(ir.EmployerMultiplier))

	// Income tax withholding: regular income under the selected method,
	// bonus income separately at the marginal rate. Bonus amounts never
	// touch the regular base.
	fed, prov := withholding(in)
	d.FederalTax, d.ProvincialTax = fed, prov

	if in.bonusIncome.IsPositive() {
		annual := annualizedRegular(in)
		fedRate := marginalRate(annual.Sub(in.claim.FederalTotal()), in.edition.FederalBrackets)
		provRate := marginalRate(annual.Sub(in.claim.ProvincialTotal()), in.edition.ProvincialBrackets)
		d.FederalBonusTax = cents(in.bonusIncome.Mul(fedRate))
		d.ProvincialBonusTax = cents(in.bonusIncome.Mul(provRate))
	}

	return d
}

func capToRoom(amount, room decimal.Decimal) (decimal.Decimal, bool) {
	if room.IsNegative() {
		room = decimal.Zero
	}
	if amount.GreaterThan(room) {
		return room, true
	}
	return amount, false
}

// annualizedRegular projects the period's regular taxable income to a yearly
// figure; under the cumulative method the projection uses the year-to-date
// average instead of the single period.
func annualizedRegular(in statutoryInput) decimal.Decimal {
	periods := decimal.NewFromInt(int64(in.periodsPerYear))
	if in.method == paygroup.WithholdingCumulative && in.ytd.Periods > 0 {
		elapsed := decimal.NewFromInt(int64(in.ytd.Periods + 1))
		avg := in.ytd.RegularTaxable.Add(in.regularTaxable).Div(elapsed)
		return avg.Mul(periods)
	}
	return in.regularTaxable.Mul(periods)
}

// withholding computes the period's federal and provincial tax on regular
// income under the pay group's method.
func withholding(in statutoryInput) (fed, prov decimal.Decimal) {
	periods := decimal.NewFromInt(int64(in.periodsPerYear))

	if in.method == paygroup.WithholdingCumulative {
		// Cumulative averaging: tax the projected annual income, prorate
		// the liability to the periods elapsed, and withhold the part not
		// yet withheld. Withholding never goes negative; over-withheld
		// periods simply withhold nothing.
		elapsed := decimal.NewFromInt(int64(in.ytd.Periods + 1))
		annual := annualizedRegular(in)

		fedLiability := bracketTax(annual.Sub(in.claim.FederalTotal()), in.edition.FederalBrackets).
			Div(periods).Mul(elapsed)
		provLiability := bracketTax(annual.Sub(in.claim.ProvincialTotal()), in.edition.ProvincialBrackets).
			Div(periods).Mul(elapsed)

		fed = cents(decimal.Max(decimal.Zero, fedLiability.Sub(in.ytd.FederalTax)))
		prov = cents(decimal.Max(decimal.Zero, provLiability.Sub(in.ytd.ProvincialTax)))
		return fed, prov
	}

	// Annualization: project, tax, divide back.
	annual := in.regularTaxable.Mul(periods)
	fed = cents(bracketTax(annual.Sub(in.claim.FederalTotal()), in.edition.FederalBrackets).Div(periods))
	prov = cents(bracketTax(annual.Sub(in.claim.ProvincialTotal()), in.edition.ProvincialBrackets).Div(periods))
	return fed, prov
}

// bracketTax walks a progressive bracket table. Taxable income at or below
// zero owes nothing.
func bracketTax(taxable decimal.Decimal, brackets []taxref.Bracket) decimal.Decimal {
	if taxable.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, b := range brackets {
		if taxable.LessThanOrEqual(b.Min) {
			break
		}
		upper := taxable
		if !b.Max.IsZero() && b.Max.LessThan(upper) {
			upper = b.Max
		}
		total = total.Add(upper.Sub(b.Min).Mul(b.Rate))
	}
	return total
}

// marginalRate returns the rate of the bracket containing the given taxable
// income; below the first threshold it is the lowest rate.
func marginalRate(taxable decimal.Decimal, brackets []taxref.Bracket) decimal.Decimal {
	if len(brackets) == 0 {
		return decimal.Zero
	}
	for _, b := range brackets {
		if b.Max.IsZero() || taxable.LessThanOrEqual(b.Max) {
			return b.Rate
		}
	}
	return brackets[len(brackets)-1].Rate
}
