package taxref

import (
	"context"
	"testing"
	"time"

	domain "github.com/maplehr/payroll-backend-go/internal/domain/taxref"
	"github.com/maplehr/payroll-backend-go/internal/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolver() *Resolver {
	return NewResolver(fixtures.NewEditionRepository(fixtures.Editions2025()))
}

func TestResolve_PicksEditionCoveringPayDate(t *testing.T) {
	r := testResolver()
	ctx := context.Background()

	edition, err := r.Resolve(ctx, "ON", time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), 2025)
	require.NoError(t, err)
	assert.Equal(t, "ON", edition.Province)
	assert.Equal(t, 2025, edition.TaxYear)
	assert.Equal(t, "12747", edition.ProvincialBasicPersonal.String())
}

func TestResolve_MidYearEditionSwitch(t *testing.T) {
	r := testResolver()
	ctx := context.Background()

	june, err := r.Resolve(ctx, "NS", time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), 2025)
	require.NoError(t, err)
	july, err := r.Resolve(ctx, "NS", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), 2025)
	require.NoError(t, err)

	assert.Equal(t, "8744", june.ProvincialBasicPersonal.String())
	assert.Equal(t, "11744", july.ProvincialBasicPersonal.String())
	assert.NotEqual(t, june.ID, july.ID)
}

func TestResolve_UnknownProvinceIsFatal(t *testing.T) {
	r := testResolver()

	_, err := r.Resolve(context.Background(), "XX", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 2025)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownProvince)
}

func TestResolve_UncoveredYearIsFatal(t *testing.T) {
	r := testResolver()

	_, err := r.Resolve(context.Background(), "ON", time.Date(2031, 3, 1, 0, 0, 0, 0, time.UTC), 2031)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEditionNotFound)
}

func TestResolve_TaxYearMismatchIsFatal(t *testing.T) {
	r := testResolver()

	_, err := r.Resolve(context.Background(), "ON", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 2024)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEditionNotFound)
}
