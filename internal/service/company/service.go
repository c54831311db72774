package company

import (
	"context"

	"github.com/maplehr/payroll-backend-go/internal/domain/company"
)

// Service exposes the engine-side company settings: the remitter frequency
// assignment and the payroll defaults pay groups fall back to.
type Service struct {
	repo company.Repository
}

func NewService(repo company.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, companyID string) (company.Company, error) {
	return s.repo.GetByID(ctx, companyID)
}

// UpdateSettings replaces the company's payroll settings. A frequency change
// only affects remittance periods aggregated after the change; already
// persisted obligations keep the frequency they were built under.
func (s *Service) UpdateSettings(ctx context.Context, companyID string, req company.UpdateSettingsRequest) (company.Company, error) {
	if err := req.Validate(); err != nil {
		return company.Company{}, err
	}

	current, err := s.repo.GetByID(ctx, companyID)
	if err != nil {
		return company.Company{}, err
	}

	current.RemitterFrequency = req.RemitterFrequency
	current.DefaultVacationRate = req.DefaultVacationRate
	current.HolidayPayByDefault = req.HolidayPayByDefault
	return s.repo.UpdateSettings(ctx, current)
}
