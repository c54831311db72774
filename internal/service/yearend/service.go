package yearend

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/maplehr/payroll-backend-go/internal/domain/payroll"
	"github.com/maplehr/payroll-backend-go/internal/domain/remittance"
	"github.com/maplehr/payroll-backend-go/internal/domain/yearend"
	"github.com/maplehr/payroll-backend-go/internal/pkg/database"
	taxrefsvc "github.com/maplehr/payroll-backend-go/internal/service/taxref"
	"github.com/shopspring/decimal"
)

// Service produces year-end slips from approved payroll records and the
// summary that reconciles them against what was remitted.
type Service struct {
	db          *database.DB
	repo        yearend.Repository
	runs        payroll.Repository
	remittances remittance.Repository
	editions    *taxrefsvc.Resolver
}

func NewService(db *database.DB, repo yearend.Repository, runs payroll.Repository, remittances remittance.Repository, editions *taxrefsvc.Resolver) *Service {
	return &Service{db: db, repo: repo, runs: runs, remittances: remittances, editions: editions}
}

// GenerateSlips builds one slip per employee from the year's approved and
// paid records. A first generation files amendment 0; every later generation
// appends the next amendment number, leaving the filed slips untouched.
func (s *Service) GenerateSlips(ctx context.Context, companyID string, taxYear int) ([]yearend.Slip, error) {
	records, err := s.runs.ListRecordsByEmployeeYear(ctx, companyID, taxYear)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, yearend.ErrNothingToFile
	}

	byEmployee := aggregateSlips(records, companyID, taxYear)

	var out []yearend.Slip
	err = s.db.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, slip := range byEmployee {
			prev, err := s.repo.LatestAmendment(txCtx, companyID, slip.EmployeeID, taxYear)
			switch {
			case errors.Is(err, yearend.ErrSlipNotFound):
				slip.Amendment = 0
			case err != nil:
				return err
			default:
				slip.Amendment = prev + 1
			}
			saved, err := s.repo.AppendSlip(txCtx, *slip)
			if err != nil {
				return err
			}
			out = append(out, saved)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeName < out[j].EmployeeName })
	return out, nil
}

// aggregateSlips folds a year's records into one slip per employee.
func aggregateSlips(records []payroll.Record, companyID string, taxYear int) map[string]*yearend.Slip {
	byEmployee := make(map[string]*yearend.Slip)
	for _, rec := range records {
		slip, ok := byEmployee[rec.EmployeeID]
		if !ok {
			slip = &yearend.Slip{
				ID:           uuid.NewString(),
				CompanyID:    companyID,
				EmployeeID:   rec.EmployeeID,
				TaxYear:      taxYear,
				EmployeeName: rec.EmployeeName,
				Province:     rec.Province,
			}
			byEmployee[rec.EmployeeID] = slip
		}
		d := rec.Deductions
		slip.EmploymentIncome = slip.EmploymentIncome.Add(rec.RegularTaxable).Add(rec.BonusIncome)
		slip.Pension = slip.Pension.Add(d.Pension)
		slip.PensionSupplementary = slip.PensionSupplementary.Add(d.PensionSupplementary)
		slip.Insurance = slip.Insurance.Add(d.Insurance)
		slip.IncomeTax = slip.IncomeTax.
			Add(d.FederalTax).Add(d.FederalBonusTax).
			Add(d.ProvincialTax).Add(d.ProvincialBonusTax)
		slip.PensionableEarnings = slip.PensionableEarnings.Add(rec.PensionableEarnings)
		slip.InsurableEarnings = slip.InsurableEarnings.Add(rec.InsurableEarnings)
	}
	return byEmployee
}

// Slips returns the current (highest amendment) slip per employee.
func (s *Service) Slips(ctx context.Context, companyID string, taxYear int) ([]yearend.Slip, error) {
	return s.repo.LatestSlips(ctx, companyID, taxYear)
}

// BuildSummary totals the current slips and reconciles them against the
// year's remittance obligations. A non-zero difference is reported as-is;
// correcting it is a human decision.
func (s *Service) BuildSummary(ctx context.Context, companyID string, taxYear int) (yearend.Summary, error) {
	slips, err := s.repo.LatestSlips(ctx, companyID, taxYear)
	if err != nil {
		return yearend.Summary{}, err
	}
	if len(slips) == 0 {
		return yearend.Summary{}, yearend.ErrNothingToFile
	}

	summary := yearend.Summary{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		TaxYear:   taxYear,
		SlipCount: len(slips),
	}
	for _, slip := range slips {
		summary.TotalIncome = summary.TotalIncome.Add(slip.EmploymentIncome)
		summary.TotalPension = summary.TotalPension.Add(slip.Pension)
		summary.TotalPensionSupplementary = summary.TotalPensionSupplementary.Add(slip.PensionSupplementary)
		summary.TotalInsurance = summary.TotalInsurance.Add(slip.Insurance)
		summary.TotalIncomeTax = summary.TotalIncomeTax.Add(slip.IncomeTax)
	}

	from := time.Date(taxYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(taxYear, time.December, 31, 0, 0, 0, 0, time.UTC)
	obligations, err := s.remittances.ListByCompany(ctx, companyID, from, to)
	if err != nil {
		return yearend.Summary{}, err
	}
	for _, o := range obligations {
		summary.TotalRemitted = summary.TotalRemitted.Add(o.Total)
	}

	// Slips carry the employee side only. The expectation grosses pension
	// up for the 1:1 employer match and insurance by the jurisdiction's
	// employer multiplier, then compares against what the obligations hold.
	// Any difference is stored, not corrected.
	edition, err := s.editions.Resolve(ctx, "FED", to, taxYear)
	if err != nil {
		return yearend.Summary{}, err
	}
	summary.ReconciliationDifference = expectedRemitted(summary, edition.Insurance.EmployerMultiplier).Sub(summary.TotalRemitted)

	return s.repo.UpsertSummary(ctx, summary)
}

func expectedRemitted(s yearend.Summary, employerInsuranceMult decimal.Decimal) decimal.Decimal {
	two := decimal.NewFromInt(2)
	insuranceFactor := decimal.NewFromInt(1).Add(employerInsuranceMult)
	return s.TotalPension.Mul(two).
		Add(s.TotalPensionSupplementary.Mul(two)).
		Add(s.TotalInsurance.Mul(insuranceFactor)).
		Add(s.TotalIncomeTax)
}

// Summary returns the stored summary for the year.
func (s *Service) Summary(ctx context.Context, companyID string, taxYear int) (yearend.Summary, error) {
	return s.repo.GetSummary(ctx, companyID, taxYear)
}
