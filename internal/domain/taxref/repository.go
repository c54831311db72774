package taxref

import (
	"context"
	"time"
)

// Repository provides read access to published parameter editions. Reference
// data is maintained externally; the engine only ever reads it.
type Repository interface {
	// GetEdition returns the edition for the province whose effective window
	// contains payDate, or ErrEditionNotFound.
	GetEdition(ctx context.Context, province string, payDate time.Time) (Edition, error)
	// ListEditions returns all editions for a province and tax year, ordered
	// by effective date.
	ListEditions(ctx context.Context, province string, taxYear int) ([]Edition, error)
}
