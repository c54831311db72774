package paygroup

import (
	"context"
	"time"

	"github.com/google/uuid"
	domain "github.com/maplehr/payroll-backend-go/internal/domain/paygroup"
	periodsvc "github.com/maplehr/payroll-backend-go/internal/service/period"
)

// Service manages pay group configuration. Policy blocks are validated at
// write time so a saved group can always resolve periods and pick a
// withholding method at run time.
type Service struct {
	repo    domain.Repository
	periods *periodsvc.Service
}

func NewService(repo domain.Repository, periods *periodsvc.Service) *Service {
	return &Service{repo: repo, periods: periods}
}

func (s *Service) Create(ctx context.Context, companyID string, req domain.CreatePayGroupRequest) (domain.PayGroup, error) {
	if err := req.Validate(); err != nil {
		return domain.PayGroup{}, err
	}

	group := domain.PayGroup{
		ID:                uuid.NewString(),
		CompanyID:         companyID,
		Name:              req.Name,
		Province:          req.Province,
		Frequency:         req.Frequency,
		CompensationType:  req.CompensationType,
		WithholdingMethod: req.WithholdingMethod,
		StartDayRule:      req.StartDayRule,
		Overtime:          req.Overtime,
		Earnings:          req.Earnings,
		Benefits:          req.Benefits,
		Deductions:        req.Deductions,
	}
	return s.repo.Create(ctx, group)
}

func (s *Service) Get(ctx context.Context, id, companyID string) (domain.PayGroup, error) {
	return s.repo.GetByID(ctx, id, companyID)
}

func (s *Service) List(ctx context.Context, companyID string) ([]domain.PayGroup, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

// Update replaces the group's policy configuration. The schedule anchor is
// never taken from input: changing it would re-run already-paid periods.
func (s *Service) Update(ctx context.Context, id, companyID string, req domain.CreatePayGroupRequest) (domain.PayGroup, error) {
	if err := req.Validate(); err != nil {
		return domain.PayGroup{}, err
	}

	group, err := s.repo.GetByID(ctx, id, companyID)
	if err != nil {
		return domain.PayGroup{}, err
	}

	group.Name = req.Name
	group.Province = req.Province
	group.Frequency = req.Frequency
	group.CompensationType = req.CompensationType
	group.WithholdingMethod = req.WithholdingMethod
	group.StartDayRule = req.StartDayRule
	group.Overtime = req.Overtime
	group.Earnings = req.Earnings
	group.Benefits = req.Benefits
	group.Deductions = req.Deductions
	return s.repo.Update(ctx, group)
}

// NextPeriod previews the period a new run would cover, without advancing
// the schedule anchor.
func (s *Service) NextPeriod(ctx context.Context, id, companyID string) (periodsvc.Period, error) {
	group, err := s.repo.GetByID(ctx, id, companyID)
	if err != nil {
		return periodsvc.Period{}, err
	}
	return s.periods.ResolveNext(ctx, group, time.Now())
}
