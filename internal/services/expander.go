package services

import (
	"fmt"
	"time"

	"budgetapp/internal/calendar"
	"budgetapp/internal/models"
)

// ScheduleStrategy produces the candidate dates of one cadence within a
// single month. Results are bounded to [start, end]; no strategy ever
// expands an infinite horizon.
type ScheduleStrategy interface {
	Dates(anchor, start, end time.Time) []time.Time
}

// IntervalStrategy steps a fixed number of days from the anchor date.
// Covers the weekly and bi-weekly cadences.
type IntervalStrategy struct {
	Days int
}

func (s IntervalStrategy) Dates(anchor, start, end time.Time) []time.Time {
	anchor = dateOnly(anchor)
	first := anchor
	if anchor.Before(start) {
		gap := int(start.Sub(anchor).Hours() / 24)
		steps := gap / s.Days
		if gap%s.Days != 0 {
			steps++
		}
		first = anchor.AddDate(0, 0, steps*s.Days)
	}

	var dates []time.Time
	for d := first; !d.After(end); d = d.AddDate(0, 0, s.Days) {
		dates = append(dates, d)
	}
	return dates
}

// SemiMonthlyStrategy yields two fixed calendar positions per month: the
// anchor's day-of-month and that day plus fifteen, each clamped to the
// month's length. When both clamp to the same day only one date results.
type SemiMonthlyStrategy struct{}

func (SemiMonthlyStrategy) Dates(anchor, start, end time.Time) []time.Time {
	year, month := start.Year(), start.Month()
	first := calendar.ClampDay(year, month, anchor.Day())
	second := calendar.ClampDay(year, month, anchor.Day()+15)
	if second < first {
		first, second = second, first
	}

	dates := []time.Time{dayInMonth(start, first)}
	if second != first {
		dates = append(dates, dayInMonth(start, second))
	}
	return notBeforeAnchor(dates, anchor)
}

// MonthlyStrategy yields one occurrence per month on the anchor's
// day-of-month, clamped to the target month's length.
type MonthlyStrategy struct{}

func (MonthlyStrategy) Dates(anchor, start, end time.Time) []time.Time {
	day := calendar.ClampDay(start.Year(), start.Month(), anchor.Day())
	return notBeforeAnchor([]time.Time{dayInMonth(start, day)}, anchor)
}

// BiMonthlyStrategy yields the monthly date only in every other calendar
// month counted from the anchor; off-cadence months get nothing.
type BiMonthlyStrategy struct{}

func (BiMonthlyStrategy) Dates(anchor, start, end time.Time) []time.Time {
	if calendar.MonthsBetween(anchor, start)%2 != 0 {
		return nil
	}
	return MonthlyStrategy{}.Dates(anchor, start, end)
}

// scheduleStrategies maps frequency units to their cadence implementations.
var scheduleStrategies = map[models.FrequencyUnit]ScheduleStrategy{
	models.UnitWeekly:      IntervalStrategy{Days: 7},
	models.UnitBiWeekly:    IntervalStrategy{Days: 14},
	models.UnitSemiMonthly: SemiMonthlyStrategy{},
	models.UnitMonthly:     MonthlyStrategy{},
	models.UnitBiMonthly:   BiMonthlyStrategy{},
}

// Expand materializes the candidate dates of one definition within the
// month containing monthStart. Paycheck definitions take their cadence
// from the budget's pay schedule instead of a fixed unit; one-time
// definitions are never regenerated.
func Expand(def *models.RecurringDefinition, monthStart time.Time, settings *models.BudgetSettings) ([]time.Time, error) {
	start, end := calendar.MonthBounds(monthStart)

	anchor := def.AnchorDate
	unit := def.Unit

	switch def.Type {
	case models.FrequencyTypeOneTime:
		return nil, nil
	case models.FrequencyTypePaycheck:
		if settings == nil {
			return nil, fmt.Errorf("paycheck definition %s requires budget settings", def.ID)
		}
		unit = settings.PayFrequency
		anchor = settings.LastPayDate
	case models.FrequencyTypeRecurring:
		// anchor and unit come from the definition itself
	default:
		return nil, fmt.Errorf("unknown frequency type: %s", def.Type)
	}

	strategy, ok := scheduleStrategies[unit]
	if !ok {
		return nil, fmt.Errorf("unknown frequency unit: %s", unit)
	}
	return strategy.Dates(dateOnly(anchor), start, end), nil
}

// dateOnly truncates a timestamp to midnight UTC so interval math works
// in whole days.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dayInMonth(monthStart time.Time, day int) time.Time {
	return time.Date(monthStart.Year(), monthStart.Month(), day, 0, 0, 0, 0, time.UTC)
}

// notBeforeAnchor drops candidates that precede the schedule's root; a
// definition anchored mid-month must not back-fill earlier days of its
// own first month.
func notBeforeAnchor(dates []time.Time, anchor time.Time) []time.Time {
	anchor = dateOnly(anchor)
	kept := dates[:0]
	for _, d := range dates {
		if !d.Before(anchor) {
			kept = append(kept, d)
		}
	}
	return kept
}
