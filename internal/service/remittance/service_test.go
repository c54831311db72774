package remittance

import (
	"testing"
	"time"

	"github.com/maplehr/payroll-backend-go/internal/domain/remittance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func TestPenaltyFor_StepFunction(t *testing.T) {
	total := dec("10000")
	due := date(2025, 4, 15)

	tests := []struct {
		name   string
		paidAt time.Time
		want   string
	}{
		{"on time", date(2025, 4, 15), "0"},
		{"early", date(2025, 4, 10), "0"},
		{"one day late", date(2025, 4, 16), "300.00"},
		{"three days late", date(2025, 4, 18), "300.00"},
		{"four days late", date(2025, 4, 19), "500.00"},
		{"five days late", date(2025, 4, 20), "500.00"},
		{"seven days late", date(2025, 4, 22), "700.00"},
		{"eight days late", date(2025, 4, 23), "1000.00"},
		{"a month late", date(2025, 5, 15), "1000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PenaltyFor(total, due, tt.paidAt)
			assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestPeriodFor_Quarterly(t *testing.T) {
	start, end, due := PeriodFor(remittance.FrequencyQuarterly, date(2025, 2, 14))

	assert.Equal(t, date(2025, 1, 1), start)
	assert.Equal(t, date(2025, 3, 31), end)
	assert.Equal(t, date(2025, 4, 15), due)
}

func TestPeriodFor_Monthly(t *testing.T) {
	start, end, due := PeriodFor(remittance.FrequencyMonthly, date(2025, 6, 27))

	assert.Equal(t, date(2025, 6, 1), start)
	assert.Equal(t, date(2025, 6, 30), end)
	assert.Equal(t, date(2025, 7, 15), due)
}

func TestPeriodFor_AcceleratedSemimonthly(t *testing.T) {
	// First half of the month is due the 25th of the same month.
	start, end, due := PeriodFor(remittance.FrequencyAcceleratedSemimonthly, date(2025, 6, 13))
	assert.Equal(t, date(2025, 6, 1), start)
	assert.Equal(t, date(2025, 6, 15), end)
	assert.Equal(t, date(2025, 6, 25), due)

	// Second half rolls to the 10th of the next month.
	start, end, due = PeriodFor(remittance.FrequencyAcceleratedSemimonthly, date(2025, 6, 27))
	assert.Equal(t, date(2025, 6, 16), start)
	assert.Equal(t, date(2025, 6, 30), end)
	assert.Equal(t, date(2025, 7, 10), due)
}

func TestPeriodFor_AcceleratedWeekly(t *testing.T) {
	// 2025-06-07 is a Saturday; three working days later is Wednesday the 11th.
	start, end, due := PeriodFor(remittance.FrequencyAcceleratedWeekly, date(2025, 6, 3))
	assert.Equal(t, date(2025, 6, 1), start)
	assert.Equal(t, date(2025, 6, 7), end)
	assert.Equal(t, date(2025, 6, 11), due)

	// Tail bucket runs to month end.
	start, end, _ = PeriodFor(remittance.FrequencyAcceleratedWeekly, date(2025, 6, 29))
	assert.Equal(t, date(2025, 6, 22), start)
	assert.Equal(t, date(2025, 6, 30), end)
}

func TestAddWorkingDays_SkipsWeekends(t *testing.T) {
	// 2025-06-12 is a Thursday; three working days on is Tuesday the 17th.
	assert.Equal(t, date(2025, 6, 17), addWorkingDays(date(2025, 6, 12), 3))
}
