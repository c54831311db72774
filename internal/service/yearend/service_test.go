package yearend

import (
	"testing"

	"github.com/maplehr/payroll-backend-go/internal/domain/payroll"
	"github.com/maplehr/payroll-backend-go/internal/domain/yearend"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func record(employeeID, name string, regular, bonus, pension, fedTax string) payroll.Record {
	return payroll.Record{
		EmployeeID:          employeeID,
		EmployeeName:        name,
		Province:            "ON",
		RegularTaxable:      dec(regular),
		BonusIncome:         dec(bonus),
		PensionableEarnings: dec(regular).Add(dec(bonus)),
		InsurableEarnings:   dec(regular).Add(dec(bonus)),
		Deductions: payroll.Deductions{
			Pension:    dec(pension),
			FederalTax: dec(fedTax),
		},
	}
}

func TestAggregateSlips_GroupsByEmployee(t *testing.T) {
	records := []payroll.Record{
		record("emp-1", "Avery", "2000", "0", "110.50", "230"),
		record("emp-1", "Avery", "2000", "500", "110.50", "230"),
		record("emp-2", "Blake", "3000", "0", "170.25", "410"),
	}

	slips := aggregateSlips(records, "co-1", 2025)

	require.Len(t, slips, 2)

	avery := slips["emp-1"]
	require.NotNil(t, avery)
	assert.Equal(t, 2025, avery.TaxYear)
	assert.Equal(t, "Avery", avery.EmployeeName)
	assert.True(t, avery.EmploymentIncome.Equal(dec("4500")), "income includes the bonus, got %s", avery.EmploymentIncome)
	assert.True(t, avery.Pension.Equal(dec("221.00")))
	assert.True(t, avery.IncomeTax.Equal(dec("460")))
	assert.True(t, avery.PensionableEarnings.Equal(dec("4500")))

	blake := slips["emp-2"]
	require.NotNil(t, blake)
	assert.True(t, blake.EmploymentIncome.Equal(dec("3000")))
}

func TestAggregateSlips_SumsBonusTaxColumns(t *testing.T) {
	rec := record("emp-1", "Avery", "2000", "500", "150", "235.07")
	rec.Deductions.FederalBonusTax = dec("75.00")
	rec.Deductions.ProvincialTax = dec("85.71")
	rec.Deductions.ProvincialBonusTax = dec("25.25")

	slips := aggregateSlips([]payroll.Record{rec}, "co-1", 2025)

	require.Len(t, slips, 1)
	assert.True(t, slips["emp-1"].IncomeTax.Equal(dec("421.03")), "got %s", slips["emp-1"].IncomeTax)
}

func TestExpectedRemitted(t *testing.T) {
	summary := yearend.Summary{
		TotalPension:              dec("1000"),
		TotalPensionSupplementary: dec("50"),
		TotalInsurance:            dec("400"),
		TotalIncomeTax:            dec("5000"),
	}

	// Pension tiers matched 1:1 by the employer, insurance grossed up by
	// the 1.4x employer share.
	got := expectedRemitted(summary, dec("1.4"))
	assert.True(t, got.Equal(dec("8060")), "got %s", got)
}
