package period

import (
	"context"
	"fmt"
	"time"

	"github.com/maplehr/payroll-backend-go/internal/domain/paygroup"
	taxrefsvc "github.com/maplehr/payroll-backend-go/internal/service/taxref"
)

// Period is one resolved pay period. PayDate is always derived from End; it
// is never stored or edited independently.
type Period struct {
	Start   time.Time
	End     time.Time
	PayDate time.Time
}

// Service resolves the next pay period for a pay group, deriving the pay
// date from the jurisdiction's maximum payday delay.
type Service struct {
	editions *taxrefsvc.Resolver
}

func NewService(editions *taxrefsvc.Resolver) *Service {
	return &Service{editions: editions}
}

// ResolveNext computes the period following the group's schedule anchor
// (LastPeriodEnd, or the reference date for a group that has never run).
func (s *Service) ResolveNext(ctx context.Context, pg paygroup.PayGroup, reference time.Time) (Period, error) {
	after := reference
	if pg.LastPeriodEnd != nil {
		after = *pg.LastPeriodEnd
	}

	start, end, err := NextBounds(pg.Frequency, pg.StartDayRule, after)
	if err != nil {
		return Period{}, err
	}

	edition, err := s.editions.Resolve(ctx, pg.Province, end, end.Year())
	if err != nil {
		return Period{}, err
	}

	return Period{
		Start:   start,
		End:     end,
		PayDate: PayDateFor(end, edition.PayDateMaxDays),
	}, nil
}

// NextBounds returns the first full period starting after the given date.
// The rule/frequency pairing is validated when the pay group is configured;
// an incompatible pairing reaching this point is a programming error and is
// still rejected rather than guessed around.
func NextBounds(freq paygroup.Frequency, rule paygroup.StartDayRule, after time.Time) (start, end time.Time, err error) {
	if !rule.CompatibleWith(freq) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s under %s", paygroup.ErrIncompatibleStartRule, rule.Kind, freq)
	}

	ref := midnightUTC(after).AddDate(0, 0, 1)

	switch freq {
	case paygroup.FrequencyWeekly, paygroup.FrequencyBiweekly:
		start = nextWeekday(ref, rule.Weekday)
		days := 6
		if freq == paygroup.FrequencyBiweekly {
			days = 13
		}
		end = start.AddDate(0, 0, days)
	case paygroup.FrequencyMonthly:
		start = nextDayOfMonth(ref, rule.DayOfMonth)
		end = start.AddDate(0, 1, 0).AddDate(0, 0, -1)
	case paygroup.FrequencySemimonthly:
		start, end = nextSemimonthly(ref)
	default:
		return time.Time{}, time.Time{}, paygroup.ErrUnsupportedFrequency
	}
	return start, end, nil
}

// PayDateFor derives the pay date from a period end: the latest date the
// jurisdiction permits. The most restrictive jurisdiction in the reference
// data allows 6 days.
func PayDateFor(periodEnd time.Time, maxDelayDays int) time.Time {
	return midnightUTC(periodEnd).AddDate(0, 0, maxDelayDays)
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func nextWeekday(from time.Time, wd time.Weekday) time.Time {
	diff := (int(wd) - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, diff)
}

func nextDayOfMonth(from time.Time, day int) time.Time {
	candidate := time.Date(from.Year(), from.Month(), day, 0, 0, 0, 0, time.UTC)
	if candidate.Before(from) {
		candidate = candidate.AddDate(0, 1, 0)
	}
	return candidate
}

// Semimonthly periods split every month on the 1st and the 16th.
func nextSemimonthly(from time.Time) (time.Time, time.Time) {
	year, month, day := from.Year(), from.Month(), from.Day()
	switch {
	case day == 1:
		start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		return start, time.Date(year, month, 15, 0, 0, 0, 0, time.UTC)
	case day <= 16:
		start := time.Date(year, month, 16, 0, 0, 0, 0, time.UTC)
		end := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
		return start, end
	default:
		start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
		return start, time.Date(start.Year(), start.Month(), 15, 0, 0, 0, 0, time.UTC)
	}
}
