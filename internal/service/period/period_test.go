package period

import (
	"context"
	"testing"
	"time"

	"github.com/maplehr/payroll-backend-go/internal/domain/paygroup"
	"github.com/maplehr/payroll-backend-go/internal/fixtures"
	taxrefsvc "github.com/maplehr/payroll-backend-go/internal/service/taxref"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestNextBounds_Biweekly(t *testing.T) {
	rule := paygroup.StartDayRule{Kind: paygroup.StartRuleWeekday, Weekday: time.Monday}

	// 2025-03-14 is a Friday; the next Monday is the 17th.
	start, end, err := NextBounds(paygroup.FrequencyBiweekly, rule, date(2025, 3, 14))
	require.NoError(t, err)
	assert.Equal(t, date(2025, 3, 17), start)
	assert.Equal(t, date(2025, 3, 30), end)

	// Anchored on the previous end, the next period starts the very next day.
	start, end, err = NextBounds(paygroup.FrequencyBiweekly, rule, date(2025, 3, 30))
	require.NoError(t, err)
	assert.Equal(t, date(2025, 3, 31), start)
	assert.Equal(t, date(2025, 4, 13), end)
}

func TestNextBounds_Semimonthly(t *testing.T) {
	rule := paygroup.StartDayRule{Kind: paygroup.StartRuleSemimonthly}

	start, end, err := NextBounds(paygroup.FrequencySemimonthly, rule, date(2025, 1, 15))
	require.NoError(t, err)
	assert.Equal(t, date(2025, 1, 16), start)
	assert.Equal(t, date(2025, 1, 31), end)

	start, end, err = NextBounds(paygroup.FrequencySemimonthly, rule, date(2025, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, date(2025, 2, 1), start)
	assert.Equal(t, date(2025, 2, 15), end)
}

func TestNextBounds_MonthlyHandlesShortMonths(t *testing.T) {
	rule := paygroup.StartDayRule{Kind: paygroup.StartRuleDayOfMonth, DayOfMonth: 1}

	start, end, err := NextBounds(paygroup.FrequencyMonthly, rule, date(2025, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, date(2025, 2, 1), start)
	assert.Equal(t, date(2025, 2, 28), end)
}

func TestNextBounds_RejectsIncompatibleRule(t *testing.T) {
	rule := paygroup.StartDayRule{Kind: paygroup.StartRuleDayOfMonth, DayOfMonth: 1}

	_, _, err := NextBounds(paygroup.FrequencyWeekly, rule, date(2025, 1, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, paygroup.ErrIncompatibleStartRule)
}

func TestPayDateFor(t *testing.T) {
	assert.Equal(t, date(2025, 4, 6), PayDateFor(date(2025, 3, 31), 6))
}

func TestResolveNext_DerivesPayDateFromJurisdiction(t *testing.T) {
	resolver := taxrefsvc.NewResolver(fixtures.NewEditionRepository(fixtures.Editions2025()))
	svc := NewService(resolver)

	anchor := date(2025, 3, 30)
	pg := paygroup.PayGroup{
		Province:      "SK", // 6-day payday rule, the tightest in the data
		Frequency:     paygroup.FrequencyBiweekly,
		StartDayRule:  paygroup.StartDayRule{Kind: paygroup.StartRuleWeekday, Weekday: time.Monday},
		LastPeriodEnd: &anchor,
	}

	p, err := svc.ResolveNext(context.Background(), pg, time.Now())
	require.NoError(t, err)
	assert.Equal(t, date(2025, 3, 31), p.Start)
	assert.Equal(t, date(2025, 4, 13), p.End)
	assert.Equal(t, date(2025, 4, 19), p.PayDate)
}
