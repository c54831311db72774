package leave

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/maplehr/payroll-backend-go/internal/domain/employee"
	"github.com/maplehr/payroll-backend-go/internal/domain/leave"
	"github.com/maplehr/payroll-backend-go/internal/domain/payroll"
	"github.com/maplehr/payroll-backend-go/internal/domain/taxref"
	"github.com/shopspring/decimal"
)

// SickBalanceFor returns the employee's sick balance for the year, created
// on demand from the jurisdiction's policy.
func (s *Service) SickBalanceFor(ctx context.Context, employeeID, companyID string, year int) (leave.SickBalance, error) {
	emp, err := s.employees.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return leave.SickBalance{}, err
	}
	asOf := time.Now().UTC()
	if asOf.Year() != year {
		asOf = time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
	edition, err := s.editions.Resolve(ctx, emp.Province, asOf, year)
	if err != nil {
		return leave.SickBalance{}, err
	}
	return s.sickBalanceAsOf(ctx, emp, year, asOf, edition.Sick)
}

// SickUsageFor lists usage rows for the year.
func (s *Service) SickUsageFor(ctx context.Context, employeeID string, year int) ([]leave.SickUsage, error) {
	return s.repo.ListSickUsage(ctx, employeeID, year)
}

// sickBalanceAsOf loads the year's balance, creating it with the policy's
// entitlements (and last year's carryover) when absent, and brings the
// accrued-to-date figure current for monthly accrual jurisdictions.
func (s *Service) sickBalanceAsOf(ctx context.Context, emp employee.Employee, year int, asOf time.Time, policy taxref.SickPolicy) (leave.SickBalance, error) {
	bal, err := s.repo.GetSickBalance(ctx, emp.ID, year)
	if errors.Is(err, leave.ErrBalanceNotFound) {
		bal, err = s.createSickBalance(ctx, emp, year, policy)
	}
	if err != nil {
		return leave.SickBalance{}, err
	}

	accrued := accruedDays(emp.HireDate, asOf, bal.EligibleFrom, policy)
	if !accrued.Equal(bal.AccruedToDate) {
		bal.AccruedToDate = accrued
		bal.UpdatedAt = time.Now().UTC()
		bal, err = s.repo.UpsertSickBalance(ctx, bal)
		if err != nil {
			return leave.SickBalance{}, err
		}
	}
	return bal, nil
}

func (s *Service) createSickBalance(ctx context.Context, emp employee.Employee, year int, policy taxref.SickPolicy) (leave.SickBalance, error) {
	bal := leave.SickBalance{
		ID:             uuid.NewString(),
		EmployeeID:     emp.ID,
		Year:           year,
		EntitledPaid:   decimal.NewFromInt(int64(policy.PaidDays)),
		EntitledUnpaid: decimal.NewFromInt(int64(policy.UnpaidDays)),
		EligibleFrom:   emp.HireDate.AddDate(0, 0, policy.WaitingDays),
		UpdatedAt:      time.Now().UTC(),
	}
	if policy.Carryover {
		prev, err := s.repo.GetSickBalance(ctx, emp.ID, year-1)
		if err == nil {
			carried := prev.RemainingPaid()
			if carried.IsNegative() {
				carried = decimal.Zero
			}
			if policy.CarryoverCap > 0 {
				limit := decimal.NewFromInt(int64(policy.CarryoverCap))
				if carried.GreaterThan(limit) {
					carried = limit
				}
			}
			bal.CarriedOver = carried
		} else if !errors.Is(err, leave.ErrBalanceNotFound) {
			return leave.SickBalance{}, err
		}
	}
	return s.repo.UpsertSickBalance(ctx, bal)
}

// accruedDays derives the paid days granted so far. Immediate accrual grants
// the full entitlement once the waiting period has passed; monthly accrual
// grants the initial block after the qualifying months and one increment per
// further month, capped at the annual entitlement.
func accruedDays(hire, asOf, eligibleFrom time.Time, policy taxref.SickPolicy) decimal.Decimal {
	entitled := decimal.NewFromInt(int64(policy.PaidDays))
	switch policy.Accrual {
	case taxref.SickAccrualMonthly:
		months := monthsBetween(hire, asOf)
		if months < policy.QualifyingMonths {
			return decimal.Zero
		}
		accrued := policy.InitialGrant.Add(policy.MonthlyIncrement.Mul(decimal.NewFromInt(int64(months - policy.QualifyingMonths))))
		if accrued.GreaterThan(entitled) {
			return entitled
		}
		return accrued
	default:
		if asOf.Before(eligibleFrom) {
			return decimal.Zero
		}
		return entitled
	}
}

func monthsBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// SickHourlyRate converts the average day's pay over the policy's lookback
// window into an hourly rate for paid sick hours. With no earnings history
// the employee's current compensation stands in.
func (s *Service) SickHourlyRate(ctx context.Context, emp employee.Employee, comp employee.CompensationSnapshot, asOf time.Time, policy taxref.SickPolicy) (decimal.Decimal, error) {
	lookback := policy.LookbackDays
	if lookback <= 0 {
		lookback = 30
	}
	win, err := s.repo.RecentEarnings(ctx, emp.ID, asOf.AddDate(0, 0, -lookback), asOf)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if win.Days.IsPositive() {
		avgDay := win.Total.Div(win.Days)
		return avgDay.Div(hoursPerDay), nil
	}
	if comp.Type == employee.CompensationHourly {
		return comp.Amount, nil
	}
	return comp.Amount.Div(decimal.NewFromInt(260)).Div(hoursPerDay), nil
}

func (s *Service) recordSickUsage(ctx context.Context, run payroll.Run, rec payroll.Record) error {
	paid, unpaid := sickDaysRequested(rec.Input.Leave)
	if paid.IsZero() && unpaid.IsZero() {
		return nil
	}
	emp, err := s.employees.GetByID(ctx, rec.EmployeeID, rec.CompanyID)
	if err != nil {
		return err
	}
	edition, err := s.editions.Resolve(ctx, emp.Province, run.PayDate, run.TaxYear)
	if err != nil {
		return err
	}
	bal, err := s.sickBalanceAsOf(ctx, emp, run.TaxYear, run.PeriodEnd, edition.Sick)
	if err != nil {
		return err
	}

	bal.UsedPaid = bal.UsedPaid.Add(paid)
	bal.UsedUnpaid = bal.UsedUnpaid.Add(unpaid)
	bal.UpdatedAt = time.Now().UTC()

	avgDay := sickDayPayOf(rec)
	if paid.IsPositive() {
		usage := leave.SickUsage{
			ID:            uuid.NewString(),
			EmployeeID:    rec.EmployeeID,
			Year:          run.TaxYear,
			Date:          run.PeriodEnd,
			Days:          paid,
			Paid:          true,
			AverageDayPay: avgDay,
			LookbackDays:  edition.Sick.LookbackDays,
			RunID:         &run.ID,
		}
		if err := s.repo.RecordSickUsage(ctx, usage, bal); err != nil {
			return err
		}
	}
	if unpaid.IsPositive() {
		usage := leave.SickUsage{
			ID:         uuid.NewString(),
			EmployeeID: rec.EmployeeID,
			Year:       run.TaxYear,
			Date:       run.PeriodEnd,
			Days:       unpaid,
			Paid:       false,
			RunID:      &run.ID,
		}
		if err := s.repo.RecordSickUsage(ctx, usage, bal); err != nil {
			return err
		}
	}
	return nil
}

// reverseSickUsage posts negative usage rows so a cancelled run leaves an
// audit trail instead of vanishing.
func (s *Service) reverseSickUsage(ctx context.Context, run payroll.Run, rec payroll.Record) error {
	paid, unpaid := sickDaysRequested(rec.Input.Leave)
	if paid.IsZero() && unpaid.IsZero() {
		return nil
	}
	bal, err := s.repo.GetSickBalance(ctx, rec.EmployeeID, run.TaxYear)
	if err != nil {
		return err
	}
	bal.UsedPaid = bal.UsedPaid.Sub(paid)
	bal.UsedUnpaid = bal.UsedUnpaid.Sub(unpaid)
	bal.UpdatedAt = time.Now().UTC()

	if paid.IsPositive() {
		usage := leave.SickUsage{
			ID:         uuid.NewString(),
			EmployeeID: rec.EmployeeID,
			Year:       run.TaxYear,
			Date:       run.PeriodEnd,
			Days:       paid.Neg(),
			Paid:       true,
			RunID:      &run.ID,
		}
		if err := s.repo.RecordSickUsage(ctx, usage, bal); err != nil {
			return err
		}
	}
	if unpaid.IsPositive() {
		usage := leave.SickUsage{
			ID:         uuid.NewString(),
			EmployeeID: rec.EmployeeID,
			Year:       run.TaxYear,
			Date:       run.PeriodEnd,
			Days:       unpaid.Neg(),
			Paid:       false,
			RunID:      &run.ID,
		}
		if err := s.repo.RecordSickUsage(ctx, usage, bal); err != nil {
			return err
		}
	}
	return nil
}

// sickDayPayOf recovers the average day's pay actually used for the
// record's paid sick lines.
func sickDayPayOf(rec payroll.Record) decimal.Decimal {
	for _, line := range rec.Earnings {
		if line.Kind == payroll.EarningLeave && line.Code == payroll.LeaveSickPaid && line.Rate != nil {
			return line.Rate.Mul(hoursPerDay)
		}
	}
	return decimal.Zero
}
