package leave

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maplehr/payroll-backend-go/internal/domain/employee"
	"github.com/maplehr/payroll-backend-go/internal/domain/leave"
	"github.com/maplehr/payroll-backend-go/internal/domain/payroll"
	"github.com/maplehr/payroll-backend-go/internal/pkg/database"
	taxrefsvc "github.com/maplehr/payroll-backend-go/internal/service/taxref"
	"github.com/shopspring/decimal"
)

var hoursPerDay = decimal.NewFromInt(8)

// Service owns the vacation ledger and the per-year sick balances. Balances
// only move when a payroll run is approved or reversed, or through an
// explicit payout; calculation never writes here.
type Service struct {
	db        *database.DB
	repo      leave.Repository
	editions  *taxrefsvc.Resolver
	employees employee.Repository

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(db *database.DB, repo leave.Repository, editions *taxrefsvc.Resolver, employees employee.Repository) *Service {
	return &Service{
		db:        db,
		repo:      repo,
		editions:  editions,
		employees: employees,
		locks:     make(map[string]*sync.Mutex),
	}
}

// lockFor serializes balance movement per employee.
func (s *Service) lockFor(employeeID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[employeeID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[employeeID] = l
	}
	return l
}

// VacationBalance returns the running balance, zero when no ledger exists yet.
func (s *Service) VacationBalance(ctx context.Context, employeeID string) (leave.VacationBalance, error) {
	bal, err := s.repo.GetVacationBalance(ctx, employeeID)
	if errors.Is(err, leave.ErrBalanceNotFound) {
		return leave.VacationBalance{EmployeeID: employeeID, Balance: decimal.Zero}, nil
	}
	return bal, err
}

// VacationHistory lists ledger events in the window.
func (s *Service) VacationHistory(ctx context.Context, employeeID string, from, to time.Time) ([]leave.VacationEvent, error) {
	return s.repo.ListVacationEvents(ctx, employeeID, from, to)
}

// RequestPayout draws vacation pay out of the balance outside a payroll run,
// for a cashout or a termination settlement.
func (s *Service) RequestPayout(ctx context.Context, employeeID string, kind leave.VacationEventKind, amount decimal.Decimal, reason string) (leave.VacationBalance, error) {
	if !kind.Payout() || kind == leave.VacationTaken {
		return leave.VacationBalance{}, fmt.Errorf("kind %q is not a payout", kind)
	}
	if !amount.IsPositive() {
		return leave.VacationBalance{}, fmt.Errorf("payout amount must be positive")
	}

	l := s.lockFor(employeeID)
	l.Lock()
	defer l.Unlock()

	bal, err := s.VacationBalance(ctx, employeeID)
	if err != nil {
		return leave.VacationBalance{}, err
	}
	if bal.Balance.LessThan(amount) {
		return leave.VacationBalance{}, leave.ErrInsufficientVacation
	}
	bal.Balance = bal.Balance.Sub(amount)
	bal.UpdatedAt = time.Now().UTC()

	event := leave.VacationEvent{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Kind:       kind,
		Amount:     amount,
		Reason:     reason,
		OccurredAt: bal.UpdatedAt,
	}
	if err := s.repo.AppendVacationEvent(ctx, event, bal); err != nil {
		return leave.VacationBalance{}, err
	}
	return bal, nil
}

// CheckPeriodLeave validates a record's leave entries against the balances
// available at calculation time. Vacation accrued inside the same period is
// not spendable until the run is approved.
func (s *Service) CheckPeriodLeave(ctx context.Context, emp employee.Employee, periodEnd time.Time, entries []payroll.LeaveEntry, vacationTaken, vacationAccrued decimal.Decimal) error {
	if vacationTaken.IsPositive() {
		bal, err := s.VacationBalance(ctx, emp.ID)
		if err != nil {
			return err
		}
		if bal.Balance.LessThan(vacationTaken) {
			return leave.ErrInsufficientVacation
		}
	}

	paidDays, unpaidDays := sickDaysRequested(entries)
	if paidDays.IsZero() && unpaidDays.IsZero() {
		return nil
	}

	edition, err := s.editions.Resolve(ctx, emp.Province, periodEnd, periodEnd.Year())
	if err != nil {
		return err
	}
	bal, err := s.sickBalanceAsOf(ctx, emp, periodEnd.Year(), periodEnd, edition.Sick)
	if err != nil {
		return err
	}
	if periodEnd.Before(bal.EligibleFrom) {
		return leave.ErrNotYetEligible
	}
	if paidDays.GreaterThan(bal.RemainingPaid()) {
		return leave.ErrInsufficientSick
	}
	if unpaidDays.GreaterThan(bal.RemainingUnpaid()) {
		return leave.ErrInsufficientSick
	}
	return nil
}

// PostApprovedRecord moves the leave a record carries onto the ledgers:
// vacation accrual and draw-down, then sick usage.
func (s *Service) PostApprovedRecord(ctx context.Context, run payroll.Run, rec payroll.Record) error {
	l := s.lockFor(rec.EmployeeID)
	l.Lock()
	defer l.Unlock()

	taken := vacationTakenOf(rec)
	if err := s.moveVacation(ctx, rec.EmployeeID, &run.ID, rec.VacationAccrued, taken, "payroll run approved"); err != nil {
		return err
	}
	return s.recordSickUsage(ctx, run, rec)
}

// ReverseApprovedRecord undoes PostApprovedRecord when an approved run is
// cancelled before payment.
func (s *Service) ReverseApprovedRecord(ctx context.Context, run payroll.Run, rec payroll.Record) error {
	l := s.lockFor(rec.EmployeeID)
	l.Lock()
	defer l.Unlock()

	taken := vacationTakenOf(rec)
	// Opposite direction: the accrual comes back out, the draw goes back in.
	if err := s.moveVacation(ctx, rec.EmployeeID, &run.ID, taken, rec.VacationAccrued, "payroll run cancelled"); err != nil {
		return err
	}
	return s.reverseSickUsage(ctx, run, rec)
}

// moveVacation applies one accrual and one draw as ledger events and keeps
// the running balance in step.
func (s *Service) moveVacation(ctx context.Context, employeeID string, runID *string, accrue, draw decimal.Decimal, reason string) error {
	if accrue.IsZero() && draw.IsZero() {
		return nil
	}
	bal, err := s.VacationBalance(ctx, employeeID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	if accrue.IsPositive() {
		bal.Balance = bal.Balance.Add(accrue)
		bal.UpdatedAt = now
		event := leave.VacationEvent{
			ID:         uuid.NewString(),
			EmployeeID: employeeID,
			Kind:       leave.VacationAccrual,
			Amount:     accrue,
			Reason:     reason,
			RunID:      runID,
			OccurredAt: now,
		}
		if err := s.repo.AppendVacationEvent(ctx, event, bal); err != nil {
			return err
		}
	}
	if draw.IsPositive() {
		bal.Balance = bal.Balance.Sub(draw)
		bal.UpdatedAt = now
		event := leave.VacationEvent{
			ID:         uuid.NewString(),
			EmployeeID: employeeID,
			Kind:       leave.VacationTaken,
			Amount:     draw,
			Reason:     reason,
			RunID:      runID,
			OccurredAt: now,
		}
		if err := s.repo.AppendVacationEvent(ctx, event, bal); err != nil {
			return err
		}
	}
	return nil
}

// vacationTakenOf recovers the vacation draw from the record's itemized
// earning lines.
func vacationTakenOf(rec payroll.Record) decimal.Decimal {
	taken := decimal.Zero
	for _, line := range rec.Earnings {
		if line.Kind == payroll.EarningLeave && line.Code == payroll.LeaveVacation {
			taken = taken.Add(line.Amount)
		}
	}
	return taken
}

func sickDaysRequested(entries []payroll.LeaveEntry) (paid, unpaid decimal.Decimal) {
	for _, entry := range entries {
		days := entry.Hours.Div(hoursPerDay)
		switch entry.Type {
		case payroll.LeaveSickPaid:
			paid = paid.Add(days)
		case payroll.LeaveSickUnpaid:
			unpaid = unpaid.Add(days)
		}
	}
	return paid, unpaid
}
