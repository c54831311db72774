package employee

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	domain "github.com/maplehr/payroll-backend-go/internal/domain/employee"
	"github.com/maplehr/payroll-backend-go/internal/pkg/validator"
	taxrefsvc "github.com/maplehr/payroll-backend-go/internal/service/taxref"
	"github.com/shopspring/decimal"
)

// Service owns the engine-side employee state: compensation snapshot
// transitions and per-year tax claims. Employee identity is managed by the
// external directory and never mutated here.
type Service struct {
	repo     domain.Repository
	editions *taxrefsvc.Resolver

	// One lock per employee: snapshot transitions are serialized per
	// employee, and a conflicting concurrent writer is rejected rather than
	// silently reordered.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(repo domain.Repository, editions *taxrefsvc.Resolver) *Service {
	return &Service{
		repo:     repo,
		editions: editions,
		locks:    make(map[string]*sync.Mutex),
	}
}

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

func (s *Service) Get(ctx context.Context, id, companyID string) (domain.Employee, error) {
	return s.repo.GetByID(ctx, id, companyID)
}

func (s *Service) ListByPayGroup(ctx context.Context, payGroupID, companyID string) ([]domain.Employee, error) {
	return s.repo.ListByPayGroup(ctx, payGroupID, companyID)
}

func (s *Service) ActiveCompensation(ctx context.Context, employeeID string) (domain.CompensationSnapshot, error) {
	return s.repo.GetActiveSnapshot(ctx, employeeID)
}

// UpdateCompensation closes the employee's active snapshot and opens a new
// one. The new effective date must strictly follow the active snapshot's;
// anything else is rejected so history never reorders.
func (s *Service) UpdateCompensation(ctx context.Context, employeeID string, compType domain.CompensationType, amount decimal.Decimal, effective time.Time) (domain.CompensationSnapshot, error) {
	if amount.IsNegative() {
		return domain.CompensationSnapshot{}, validator.ValidationErrors{{Field: "amount", Message: "must be non-negative"}}
	}
	if compType != domain.CompensationSalaried && compType != domain.CompensationHourly {
		return domain.CompensationSnapshot{}, validator.ValidationErrors{{Field: "type", Message: "must be salaried or hourly"}}
	}

	l := s.lockFor(employeeID)
	l.Lock()
	defer l.Unlock()

	next := domain.CompensationSnapshot{
		ID:            uuid.NewString(),
		EmployeeID:    employeeID,
		Type:          compType,
		Amount:        amount,
		EffectiveDate: effective,
	}

	active, err := s.repo.GetActiveSnapshot(ctx, employeeID)
	if err == domain.ErrSnapshotNotFound {
		created, err := s.repo.CreateSnapshot(ctx, next)
		if err != nil {
			return domain.CompensationSnapshot{}, fmt.Errorf("create first snapshot: %w", err)
		}
		return created, nil
	}
	if err != nil {
		return domain.CompensationSnapshot{}, fmt.Errorf("load active snapshot: %w", err)
	}

	if !effective.After(active.EffectiveDate) {
		return domain.CompensationSnapshot{}, domain.ErrSnapshotOutOfOrder
	}

	created, err := s.repo.CloseAndCreateSnapshot(ctx, active.ID, next)
	if err != nil {
		return domain.CompensationSnapshot{}, fmt.Errorf("transition snapshot: %w", err)
	}
	return created, nil
}

// EnsureTaxClaim returns the employee's claim for the year, creating it from
// reference data when absent. Basic personal amounts always come from the
// edition in force on asOf; only the additional amounts are editable.
func (s *Service) EnsureTaxClaim(ctx context.Context, emp domain.Employee, taxYear int, asOf time.Time) (domain.TaxClaim, error) {
	claim, err := s.repo.GetTaxClaim(ctx, emp.ID, taxYear)
	if err == nil {
		return claim, nil
	}
	if err != domain.ErrTaxClaimNotFound {
		return domain.TaxClaim{}, err
	}

	edition, err := s.editions.Resolve(ctx, emp.Province, asOf, taxYear)
	if err != nil {
		return domain.TaxClaim{}, err
	}

	claim = domain.TaxClaim{
		ID:              uuid.NewString(),
		EmployeeID:      emp.ID,
		TaxYear:         taxYear,
		FederalBasic:    edition.FederalBasicPersonal,
		ProvincialBasic: edition.ProvincialBasicPersonal,
	}
	return s.repo.UpsertTaxClaim(ctx, claim)
}

// SetAdditionalClaims updates the employee-editable portion of a claim. The
// basic amounts are re-derived from reference data, never taken from input.
func (s *Service) SetAdditionalClaims(ctx context.Context, emp domain.Employee, taxYear int, asOf time.Time, federal, provincial decimal.Decimal) (domain.TaxClaim, error) {
	if federal.IsNegative() || provincial.IsNegative() {
		return domain.TaxClaim{}, validator.ValidationErrors{{Field: "additional_claims", Message: "must be non-negative"}}
	}

	claim, err := s.EnsureTaxClaim(ctx, emp, taxYear, asOf)
	if err != nil {
		return domain.TaxClaim{}, err
	}
	claim.FederalAdditional = federal
	claim.ProvincialAdditional = provincial
	return s.repo.UpsertTaxClaim(ctx, claim)
}
