package payroll

import (
	"testing"

	"github.com/maplehr/payroll-backend-go/internal/domain/employee"
	"github.com/maplehr/payroll-backend-go/internal/domain/paygroup"
	"github.com/maplehr/payroll-backend-go/internal/domain/payroll"
	"github.com/maplehr/payroll-backend-go/internal/domain/taxref"
	"github.com/maplehr/payroll-backend-go/internal/fixtures"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ontarioEdition(t *testing.T) taxref.Edition {
	t.Helper()
	for _, e := range fixtures.Editions2025() {
		if e.Province == "ON" {
			return e
		}
	}
	t.Fatal("no Ontario edition in fixtures")
	return taxref.Edition{}
}

func ontarioClaim() employee.TaxClaim {
	return employee.TaxClaim{FederalBasic: d("16129"), ProvincialBasic: d("12747")}
}

func biweeklyStatutory(t *testing.T) statutoryInput {
	t.Helper()
	return statutoryInput{
		edition:        ontarioEdition(t),
		periodsPerYear: 26,
		method:         paygroup.WithholdingAnnualization,
		claim:          ontarioClaim(),
		taxYear:        2025,
		pensionable:    d("2687.50"),
		insurable:      d("2687.50"),
		regularTaxable: d("2187.50"),
		bonusIncome:    d("500"),
	}
}

func TestComputeStatutory_BiweeklyHourlyScenario(t *testing.T) {
	dd := computeStatutory(biweeklyStatutory(t))

	// Base pension: 5.95% of pensionable above the per-period share of the
	// $3,500 exemption.
	assert.True(t, dd.Pension.Equal(d("151.90")), "pension got %s", dd.Pension)
	assert.False(t, dd.PensionCapped)
	assert.True(t, dd.PensionSupplementary.IsZero(), "earnings below the supplementary floor")

	assert.True(t, dd.Insurance.Equal(d("41.44")), "insurance got %s", dd.Insurance)
	assert.False(t, dd.InsuranceCapped)

	// Withholding on the $2,187.50 regular base only.
	assert.True(t, dd.FederalTax.Equal(d("235.07")), "federal got %s", dd.FederalTax)
	assert.True(t, dd.ProvincialTax.Equal(d("85.71")), "provincial got %s", dd.ProvincialTax)

	// The $500 bonus is taxed separately at the marginal rates.
	assert.True(t, dd.FederalBonusTax.Equal(d("75.00")), "federal bonus got %s", dd.FederalBonusTax)
	assert.True(t, dd.ProvincialBonusTax.Equal(d("25.25")), "provincial bonus got %s", dd.ProvincialBonusTax)

	// Employer side mirrors the employee amounts, insurance at 1.4x.
	assert.True(t, dd.EmployerPension.Equal(dd.Pension))
	assert.True(t, dd.EmployerInsurance.Equal(d("58.02")), "employer insurance got %s", dd.EmployerInsurance)
}

func TestComputeStatutory_BonusDoesNotShiftRegularTax(t *testing.T) {
	withBonus := biweeklyStatutory(t)
	withoutBonus := biweeklyStatutory(t)
	withoutBonus.bonusIncome = decimal.Zero
	withoutBonus.pensionable = d("2187.50")
	withoutBonus.insurable = d("2187.50")

	a := computeStatutory(withBonus)
	b := computeStatutory(withoutBonus)

	assert.True(t, a.FederalTax.Equal(b.FederalTax))
	assert.True(t, a.ProvincialTax.Equal(b.ProvincialTax))
	assert.True(t, b.FederalBonusTax.IsZero())
}

func TestComputeStatutory_PensionRoomCapsContribution(t *testing.T) {
	in := biweeklyStatutory(t)
	in.ytd = payroll.YearToDate{Pension: d("4000"), Periods: 20}
	in.initialPension = d("30")

	dd := computeStatutory(in)

	// $4,034.10 max less $4,000 withheld here less $30 from the previous
	// employer leaves $4.10 of room.
	assert.True(t, dd.Pension.Equal(d("4.10")), "got %s", dd.Pension)
	assert.True(t, dd.PensionCapped)
	assert.True(t, dd.EmployerPension.Equal(d("4.10")), "employer matches the capped amount")
}

func TestComputeStatutory_InitialYTDAloneExhaustsRoom(t *testing.T) {
	in := biweeklyStatutory(t)
	in.initialPension = d("4034.10")
	in.initialInsurance = d("1077.48")

	dd := computeStatutory(in)

	assert.True(t, dd.Pension.IsZero())
	assert.True(t, dd.PensionCapped)
	assert.True(t, dd.Insurance.IsZero())
	assert.True(t, dd.InsuranceCapped)
}

func TestComputeStatutory_SupplementaryTier(t *testing.T) {
	in := biweeklyStatutory(t)
	in.pensionable = d("3000")
	in.insurable = d("3000")
	in.regularTaxable = d("3000")
	in.bonusIncome = decimal.Zero

	dd := computeStatutory(in)

	// 4% of the slice between the base ceiling ($71,300/26) and the
	// supplementary ceiling ($81,200/26).
	assert.True(t, dd.PensionSupplementary.Equal(d("10.31")), "got %s", dd.PensionSupplementary)
	assert.True(t, dd.EmployerPensionSupplementary.Equal(dd.PensionSupplementary))
}

func TestComputeStatutory_ExemptionsZeroOut(t *testing.T) {
	in := biweeklyStatutory(t)
	in.pensionExempt = true
	in.insuranceExempt = true

	dd := computeStatutory(in)

	assert.True(t, dd.Pension.IsZero())
	assert.True(t, dd.PensionSupplementary.IsZero())
	assert.True(t, dd.Insurance.IsZero())
	assert.True(t, dd.EmployerPension.IsZero())
	assert.True(t, dd.EmployerInsurance.IsZero())
}

func TestComputeStatutory_ClaimAboveIncomeOwesNothing(t *testing.T) {
	in := biweeklyStatutory(t)
	in.regularTaxable = d("500")
	in.bonusIncome = decimal.Zero

	dd := computeStatutory(in)

	assert.True(t, dd.FederalTax.IsZero())
	assert.True(t, dd.ProvincialTax.IsZero())
}

func TestWithholding_CumulativeFirstPeriodMatchesAnnualization(t *testing.T) {
	annualized := biweeklyStatutory(t)
	cumulative := biweeklyStatutory(t)
	cumulative.method = paygroup.WithholdingCumulative

	a := computeStatutory(annualized)
	c := computeStatutory(cumulative)

	assert.True(t, a.FederalTax.Equal(c.FederalTax))
	assert.True(t, a.ProvincialTax.Equal(c.ProvincialTax))
}

func TestWithholding_CumulativeSmoothsVariableIncome(t *testing.T) {
	in := biweeklyStatutory(t)
	in.method = paygroup.WithholdingCumulative
	in.regularTaxable = d("3000")
	in.bonusIncome = decimal.Zero
	in.ytd = payroll.YearToDate{
		RegularTaxable: d("2187.50"),
		FederalTax:     d("235.07"),
		Periods:        1,
	}

	dd := computeStatutory(in)

	// Liability to date on the projected annual average, less what was
	// already withheld.
	assert.True(t, dd.FederalTax.Equal(d("356.95")), "got %s", dd.FederalTax)
}

func TestWithholding_CumulativeNeverNegative(t *testing.T) {
	in := biweeklyStatutory(t)
	in.method = paygroup.WithholdingCumulative
	in.regularTaxable = d("100")
	in.bonusIncome = decimal.Zero
	in.ytd = payroll.YearToDate{
		RegularTaxable: d("2187.50"),
		FederalTax:     d("1000"),
		ProvincialTax:  d("500"),
		Periods:        1,
	}

	dd := computeStatutory(in)

	assert.True(t, dd.FederalTax.IsZero(), "over-withheld periods withhold nothing")
	assert.True(t, dd.ProvincialTax.IsZero())
}

func TestBracketTax_WalksAllBrackets(t *testing.T) {
	brackets := ontarioEdition(t).FederalBrackets

	// $100,000: 15% of the first $57,375 and 20.5% of the rest.
	got := bracketTax(d("100000"), brackets)
	want := d("57375").Mul(d("0.15")).Add(d("42625").Mul(d("0.205")))
	assert.True(t, got.Equal(want), "got %s want %s", got, want)

	assert.True(t, bracketTax(d("-10"), brackets).IsZero())
	assert.True(t, bracketTax(decimal.Zero, brackets).IsZero())
}

func TestMarginalRate_PicksContainingBracket(t *testing.T) {
	brackets := ontarioEdition(t).FederalBrackets

	assert.True(t, marginalRate(d("40000"), brackets).Equal(d("0.15")))
	assert.True(t, marginalRate(d("60000"), brackets).Equal(d("0.205")))
	assert.True(t, marginalRate(d("300000"), brackets).Equal(d("0.33")))

	require.True(t, marginalRate(d("-5"), brackets).Equal(d("0.15")), "below the table uses the lowest rate")
}
