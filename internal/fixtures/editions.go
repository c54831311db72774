package fixtures

import (
	"context"
	"sort"
	"time"

	"github.com/maplehr/payroll-backend-go/internal/domain/taxref"
	"github.com/shopspring/decimal"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func d(v string) decimal.Decimal  { return decimal.RequireFromString(v) }
func day(y, m, dd int) time.Time  { return time.Date(y, time.Month(m), dd, 0, 0, 0, 0, time.UTC) }
func pct(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func brackets(rows ...[2]string) []taxref.Bracket {
	out := make([]taxref.Bracket, 0, len(rows))
	min := decimal.Zero
	for _, row := range rows {
		b := taxref.Bracket{Min: min, Rate: pct(row[1])}
		if row[0] != "" {
			b.Max = d(row[0])
			min = b.Max
		}
		out = append(out, b)
	}
	return out
}

// ==========================================
// 2025 REFERENCE PARAMETERS
// ==========================================

// Contribution rules shared by every 2025 edition. Annual maximums apply
// across all employers, which is why prior-employer year-to-date amounts
// count against them.
func pension2025() taxref.PensionRules {
	return taxref.PensionRules{
		Rate:                 pct("0.0595"),
		BasicExemption:       d("3500"),
		MaxPensionable:       d("71300"),
		MaxContribution:      d("4034.10"),
		SupplementaryRate:    pct("0.04"),
		SupplementaryCeiling: d("81200"),
		MaxSupplementary:     d("396.00"),
	}
}

func insurance2025() taxref.InsuranceRules {
	return taxref.InsuranceRules{
		Rate:               pct("0.0164"),
		MaxInsurable:       d("65700"),
		MaxContribution:    d("1077.48"),
		EmployerMultiplier: d("1.4"),
	}
}

func federalBrackets2025() []taxref.Bracket {
	return brackets(
		[2]string{"57375", "0.15"},
		[2]string{"114750", "0.205"},
		[2]string{"177882", "0.26"},
		[2]string{"253414", "0.29"},
		[2]string{"", "0.33"},
	)
}

const federalBasic2025 = "16129"

type provinceSeed struct {
	code           string
	basicPersonal  string
	brackets       []taxref.Bracket
	payDateMaxDays int
	vacationRate   string
	sick           taxref.SickPolicy
}

// Editions2025 returns the seeded parameter editions for tax year 2025.
// Nova Scotia ships two editions: its basic personal amount changed July 1.
func Editions2025() []taxref.Edition {
	seeds := []provinceSeed{
		{
			code: "ON", basicPersonal: "12747", payDateMaxDays: 7, vacationRate: "0.04",
			brackets: brackets(
				[2]string{"52886", "0.0505"},
				[2]string{"105775", "0.0915"},
				[2]string{"150000", "0.1116"},
				[2]string{"220000", "0.1216"},
				[2]string{"", "0.1316"},
			),
			sick: taxref.SickPolicy{
				UnpaidDays: 3, WaitingDays: 14,
				Accrual: taxref.SickAccrualImmediate, LookbackDays: 20,
			},
		},
		{
			code: "BC", basicPersonal: "12932", payDateMaxDays: 8, vacationRate: "0.04",
			brackets: brackets(
				[2]string{"49279", "0.0506"},
				[2]string{"98560", "0.077"},
				[2]string{"113158", "0.105"},
				[2]string{"137407", "0.1229"},
				[2]string{"186306", "0.147"},
				[2]string{"259829", "0.168"},
				[2]string{"", "0.205"},
			),
			sick: taxref.SickPolicy{
				PaidDays: 5, UnpaidDays: 3, WaitingDays: 90,
				Accrual: taxref.SickAccrualImmediate, LookbackDays: 30,
			},
		},
		{
			code: "AB", basicPersonal: "22323", payDateMaxDays: 10, vacationRate: "0.04",
			brackets: brackets(
				[2]string{"151234", "0.10"},
				[2]string{"181481", "0.12"},
				[2]string{"241974", "0.13"},
				[2]string{"362961", "0.14"},
				[2]string{"", "0.15"},
			),
			sick: taxref.SickPolicy{
				UnpaidDays: 5, WaitingDays: 90,
				Accrual: taxref.SickAccrualImmediate, LookbackDays: 30,
			},
		},
		{
			code: "MB", basicPersonal: "15969", payDateMaxDays: 10, vacationRate: "0.04",
			brackets: brackets(
				[2]string{"47564", "0.108"},
				[2]string{"101200", "0.1275"},
				[2]string{"", "0.174"},
			),
			sick: taxref.SickPolicy{
				UnpaidDays: 3, WaitingDays: 30,
				Accrual: taxref.SickAccrualImmediate, LookbackDays: 30,
			},
		},
		{
			code: "SK", basicPersonal: "18991", payDateMaxDays: 6, vacationRate: "0.0577",
			brackets: brackets(
				[2]string{"53463", "0.105"},
				[2]string{"152750", "0.125"},
				[2]string{"", "0.145"},
			),
			sick: taxref.SickPolicy{
				UnpaidDays: 12, WaitingDays: 90,
				Accrual: taxref.SickAccrualImmediate, LookbackDays: 30,
			},
		},
		{
			code: "QC", basicPersonal: "18571", payDateMaxDays: 16, vacationRate: "0.04",
			brackets: brackets(
				[2]string{"53255", "0.14"},
				[2]string{"106495", "0.19"},
				[2]string{"129590", "0.24"},
				[2]string{"", "0.2575"},
			),
			sick: taxref.SickPolicy{
				PaidDays: 2, WaitingDays: 90,
				Accrual: taxref.SickAccrualImmediate, LookbackDays: 20,
			},
		},
		{
			// Federally regulated employers (Canada Labour Code): monthly
			// sick-day accrual with an initial grant after one month.
			code: "FED", basicPersonal: "16129", payDateMaxDays: 30, vacationRate: "0.04",
			brackets: federalBrackets2025(),
			sick: taxref.SickPolicy{
				PaidDays: 10, WaitingDays: 30,
				Carryover: true, CarryoverCap: 10,
				Accrual:          taxref.SickAccrualMonthly,
				InitialGrant:     d("3"),
				QualifyingMonths: 1,
				MonthlyIncrement: d("1"),
				LookbackDays:     20,
			},
		},
	}

	editions := make([]taxref.Edition, 0, len(seeds)+2)
	for _, s := range seeds {
		editions = append(editions, taxref.Edition{
			ID:                      "2025-01-" + s.code,
			Province:                s.code,
			TaxYear:                 2025,
			EffectiveFrom:           day(2025, 1, 1),
			EffectiveTo:             day(2026, 1, 1),
			FederalBasicPersonal:    d(federalBasic2025),
			ProvincialBasicPersonal: d(s.basicPersonal),
			Pension:                 pension2025(),
			Insurance:               insurance2025(),
			FederalBrackets:         federalBrackets2025(),
			ProvincialBrackets:      s.brackets,
			PayDateMaxDays:          s.payDateMaxDays,
			DefaultVacationRate:     d(s.vacationRate),
			Sick:                    s.sick,
		})
	}

	nsSick := taxref.SickPolicy{
		UnpaidDays: 3, WaitingDays: 90,
		Accrual: taxref.SickAccrualImmediate, LookbackDays: 30,
	}
	nsBrackets := brackets(
		[2]string{"30507", "0.0879"},
		[2]string{"61015", "0.1495"},
		[2]string{"95883", "0.1667"},
		[2]string{"154650", "0.175"},
		[2]string{"", "0.21"},
	)
	editions = append(editions,
		taxref.Edition{
			ID:                      "2025-01-NS",
			Province:                "NS",
			TaxYear:                 2025,
			EffectiveFrom:           day(2025, 1, 1),
			EffectiveTo:             day(2025, 7, 1),
			FederalBasicPersonal:    d(federalBasic2025),
			ProvincialBasicPersonal: d("8744"),
			Pension:                 pension2025(),
			Insurance:               insurance2025(),
			FederalBrackets:         federalBrackets2025(),
			ProvincialBrackets:      nsBrackets,
			PayDateMaxDays:          7,
			DefaultVacationRate:     d("0.04"),
			Sick:                    nsSick,
		},
		taxref.Edition{
			ID:                      "2025-07-NS",
			Province:                "NS",
			TaxYear:                 2025,
			EffectiveFrom:           day(2025, 7, 1),
			EffectiveTo:             day(2026, 1, 1),
			FederalBasicPersonal:    d(federalBasic2025),
			ProvincialBasicPersonal: d("11744"),
			Pension:                 pension2025(),
			Insurance:               insurance2025(),
			FederalBrackets:         federalBrackets2025(),
			ProvincialBrackets:      nsBrackets,
			PayDateMaxDays:          7,
			DefaultVacationRate:     d("0.04"),
			Sick:                    nsSick,
		},
	)

	return editions
}

// ==========================================
// IN-MEMORY EDITION REPOSITORY
// ==========================================

type editionRepository struct {
	byProvince map[string][]taxref.Edition
}

// NewEditionRepository returns a read-only taxref.Repository backed by the
// seeded editions. Production deployments load editions into postgres; the
// seeded set serves development and tests.
func NewEditionRepository(editions []taxref.Edition) taxref.Repository {
	byProvince := make(map[string][]taxref.Edition)
	for _, e := range editions {
		byProvince[e.Province] = append(byProvince[e.Province], e)
	}
	for _, list := range byProvince {
		sort.Slice(list, func(i, j int) bool {
			return list[i].EffectiveFrom.Before(list[j].EffectiveFrom)
		})
	}
	return &editionRepository{byProvince: byProvince}
}

func (r *editionRepository) GetEdition(_ context.Context, province string, payDate time.Time) (taxref.Edition, error) {
	list, ok := r.byProvince[province]
	if !ok {
		return taxref.Edition{}, taxref.ErrUnknownProvince
	}
	for _, e := range list {
		if e.Covers(payDate) {
			return e, nil
		}
	}
	return taxref.Edition{}, taxref.ErrEditionNotFound
}

func (r *editionRepository) ListEditions(_ context.Context, province string, taxYear int) ([]taxref.Edition, error) {
	list, ok := r.byProvince[province]
	if !ok {
		return nil, taxref.ErrUnknownProvince
	}
	var out []taxref.Edition
	for _, e := range list {
		if e.TaxYear == taxYear {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return nil, taxref.ErrEditionNotFound
	}
	return out, nil
}
