package company

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Company, error)
	// List returns every company, for the scheduled remittance sweep.
	List(ctx context.Context) ([]Company, error)
	UpdateSettings(ctx context.Context, c Company) (Company, error)
}
