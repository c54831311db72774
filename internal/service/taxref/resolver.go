package taxref

import (
	"context"
	"fmt"
	"time"

	domain "github.com/maplehr/payroll-backend-go/internal/domain/taxref"
)

// Resolver picks the parameter edition applicable to a pay date. A failed
// resolution is a configuration error and blocks the calling operation; the
// engine never falls back to a default parameter set.
type Resolver struct {
	repo domain.Repository
}

func NewResolver(repo domain.Repository) *Resolver {
	return &Resolver{repo: repo}
}

// Editions lists the published editions for a province and tax year.
func (r *Resolver) Editions(ctx context.Context, province string, taxYear int) ([]domain.Edition, error) {
	return r.repo.ListEditions(ctx, province, taxYear)
}

// Resolve returns the edition for province whose effective window contains
// payDate, verifying it belongs to the expected tax year.
func (r *Resolver) Resolve(ctx context.Context, province string, payDate time.Time, taxYear int) (domain.Edition, error) {
	edition, err := r.repo.GetEdition(ctx, province, payDate)
	if err != nil {
		return domain.Edition{}, fmt.Errorf("resolve edition for %s at %s: %w", province, payDate.Format("2006-01-02"), err)
	}
	if edition.TaxYear != taxYear {
		return domain.Edition{}, fmt.Errorf("edition %s covers tax year %d, expected %d: %w",
			edition.ID, edition.TaxYear, taxYear, domain.ErrEditionNotFound)
	}
	return edition, nil
}
