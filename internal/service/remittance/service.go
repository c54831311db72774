package remittance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/maplehr/payroll-backend-go/internal/domain/company"
	"github.com/maplehr/payroll-backend-go/internal/domain/payroll"
	"github.com/maplehr/payroll-backend-go/internal/domain/remittance"
	"github.com/maplehr/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

// Service aggregates approved payroll runs into remittance obligations and
// settles them against the authority's due dates.
type Service struct {
	db        *database.DB
	repo      remittance.Repository
	runs      payroll.Repository
	companies company.Repository
}

func NewService(db *database.DB, repo remittance.Repository, runs payroll.Repository, companies company.Repository) *Service {
	return &Service{db: db, repo: repo, runs: runs, companies: companies}
}

// Aggregate folds every approved run paying inside the window into the
// company's remittance periods. The obligation key is (company, frequency,
// period start), so running aggregation twice over the same window replaces
// rather than duplicates.
func (s *Service) Aggregate(ctx context.Context, companyID string, from, to time.Time) ([]remittance.Obligation, error) {
	comp, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	freq := comp.RemitterFrequency
	if !freq.Valid() {
		return nil, remittance.ErrUnknownFrequency
	}

	runs, err := s.runs.ListApprovedRuns(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list approved runs: %w", err)
	}

	type bucket struct {
		obligation remittance.Obligation
	}
	buckets := make(map[time.Time]*bucket)

	for _, run := range runs {
		start, end, due := PeriodFor(freq, run.PayDate)
		b, ok := buckets[start]
		if !ok {
			b = &bucket{obligation: remittance.Obligation{
				ID:          uuid.NewString(),
				CompanyID:   companyID,
				Frequency:   freq,
				PeriodStart: start,
				PeriodEnd:   end,
				DueDate:     due,
				Status:      remittance.StatusPending,
			}}
			buckets[start] = b
		}

		records, err := s.runs.ListRecordsByRun(ctx, run.ID, companyID)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			d := rec.Deductions
			b.obligation.Pension = b.obligation.Pension.
				Add(d.Pension).Add(d.PensionSupplementary).
				Add(d.EmployerPension).Add(d.EmployerPensionSupplementary)
			b.obligation.Insurance = b.obligation.Insurance.
				Add(d.Insurance).Add(d.EmployerInsurance)
			b.obligation.Tax = b.obligation.Tax.
				Add(d.FederalTax).Add(d.FederalBonusTax).
				Add(d.ProvincialTax).Add(d.ProvincialBonusTax)
		}
		b.obligation.RunIDs = append(b.obligation.RunIDs, run.ID)
	}

	var out []remittance.Obligation
	err = s.db.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, b := range buckets {
			o := b.obligation
			o.Total = o.Pension.Add(o.Insurance).Add(o.Tax)

			// A period already marked paid stays untouched; late-arriving
			// runs for it need an amended remittance, not a silent rewrite.
			existing, err := s.repo.GetByPeriod(txCtx, companyID, freq, o.PeriodStart)
			if err == nil && existing.Status != remittance.StatusPending {
				out = append(out, existing)
				continue
			}
			if err != nil && !errors.Is(err, remittance.ErrObligationNotFound) {
				return err
			}
			if err == nil {
				o.ID = existing.ID
				o.CreatedAt = existing.CreatedAt
			}
			saved, err := s.repo.Upsert(txCtx, o)
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
	return out, nil
}

// List returns the company's obligations inside the window.
func (s *Service) List(ctx context.Context, companyID string, from, to time.Time) ([]remittance.Obligation, error) {
	return s.repo.ListByCompany(ctx, companyID, from, to)
}

// Pay settles an obligation, computing the late penalty from the gap between
// the due date and the payment date.
func (s *Service) Pay(ctx context.Context, companyID, obligationID string, paidAt time.Time) (remittance.Obligation, error) {
	o, err := s.repo.GetByID(ctx, obligationID, companyID)
	if err != nil {
		return remittance.Obligation{}, err
	}
	if o.Status != remittance.StatusPending {
		return remittance.Obligation{}, remittance.ErrAlreadyPaid
	}

	o.Penalty = PenaltyFor(o.Total, o.DueDate, paidAt)
	o.PaidAt = &paidAt
	o.Status = remittance.StatusPaid
	if o.Penalty.IsPositive() {
		o.Status = remittance.StatusLate
	}
	if err := s.repo.MarkPaid(ctx, o); err != nil {
		return remittance.Obligation{}, err
	}
	return o, nil
}

// PeriodFor maps a pay date onto the remitter tier's period and its due
// date. Accelerated weekly due dates land on the third working day after the
// period ends.
func PeriodFor(freq remittance.Frequency, payDate time.Time) (start, end, due time.Time) {
	y, m, _ := payDate.Date()
	switch freq {
	case remittance.FrequencyQuarterly:
		qm := time.Month((int(m)-1)/3*3 + 1)
		start = time.Date(y, qm, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 3, -1)
		due = time.Date(y, qm+3, 15, 0, 0, 0, 0, time.UTC)
	case remittance.FrequencyMonthly:
		start = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
		due = start.AddDate(0, 1, 14)
	case remittance.FrequencyAcceleratedSemimonthly:
		if payDate.Day() <= 15 {
			start = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
			end = time.Date(y, m, 15, 0, 0, 0, 0, time.UTC)
			due = time.Date(y, m, 25, 0, 0, 0, 0, time.UTC)
		} else {
			start = time.Date(y, m, 16, 0, 0, 0, 0, time.UTC)
			end = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
			due = time.Date(y, m, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
		}
	case remittance.FrequencyAcceleratedWeekly:
		switch {
		case payDate.Day() <= 7:
			start = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
			end = time.Date(y, m, 7, 0, 0, 0, 0, time.UTC)
		case payDate.Day() <= 14:
			start = time.Date(y, m, 8, 0, 0, 0, 0, time.UTC)
			end = time.Date(y, m, 14, 0, 0, 0, 0, time.UTC)
		case payDate.Day() <= 21:
			start = time.Date(y, m, 15, 0, 0, 0, 0, time.UTC)
			end = time.Date(y, m, 21, 0, 0, 0, 0, time.UTC)
		default:
			start = time.Date(y, m, 22, 0, 0, 0, 0, time.UTC)
			end = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
		}
		due = addWorkingDays(end, 3)
	}
	return start, end, due
}

func addWorkingDays(from time.Time, days int) time.Time {
	d := from
	for added := 0; added < days; {
		d = d.AddDate(0, 0, 1)
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			added++
		}
	}
	return d
}

// Late-payment penalty steps. The step function is on whole days past due.
var (
	threePct = decimal.NewFromFloat(0.03)
	fivePct  = decimal.NewFromFloat(0.05)
	sevenPct = decimal.NewFromFloat(0.07)
	tenPct   = decimal.NewFromFloat(0.10)
)

// PenaltyFor returns the late-remittance penalty: nothing on time, 3% up to
// three days late, 5% up to five, 7% up to seven, 10% beyond.
func PenaltyFor(total decimal.Decimal, due, paidAt time.Time) decimal.Decimal {
	daysLate := int(paidAt.Sub(due).Hours() / 24)
	if paidAt.After(due) && paidAt.Sub(due)%(24*time.Hour) != 0 {
		daysLate++
	}
	switch {
	case daysLate <= 0:
		return decimal.Zero
	case daysLate <= 3:
		return total.Mul(threePct).Round(2)
	case daysLate <= 5:
		return total.Mul(fivePct).Round(2)
	case daysLate <= 7:
		return total.Mul(sevenPct).Round(2)
	default:
		return total.Mul(tenPct).Round(2)
	}
}
