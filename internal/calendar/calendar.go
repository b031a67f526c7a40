// Package calendar provides the pure date arithmetic behind month
// materialization: month boundaries, day-of-month clamping, ordinal
// labels, and current-month lookup over an ordered month list.
package calendar

import "time"

// LastDay returns the number of days in the given month (28-31).
func LastDay(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysInMonth returns the ordered sequence of valid day numbers for the
// given month, used to populate day-of-month selection.
func DaysInMonth(year int, month time.Month) []int {
	last := LastDay(year, month)
	days := make([]int, last)
	for i := range days {
		days[i] = i + 1
	}
	return days
}

// ClampDay returns day limited to the length of the given month. An
// anchor day that does not exist in a shorter month lands on the month's
// last day (day 31 in February clamps to the 28th or 29th).
func ClampDay(year int, month time.Month, day int) int {
	if last := LastDay(year, month); day > last {
		return last
	}
	return day
}

// OrdinalSuffix returns the English ordinal suffix for a day number:
// "st", "nd", "rd", or "th". 11-13 are always "th".
func OrdinalSuffix(day int) string {
	if d := day % 100; d >= 11 && d <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// MonthBounds returns the inclusive boundaries of the month containing t:
// the first of the month at 00:00:00 and the last day at 23:59:59.
func MonthBounds(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end = time.Date(t.Year(), t.Month(), LastDay(t.Year(), t.Month()), 23, 59, 59, 0, t.Location())
	return start, end
}

// Contains reports whether t falls within the month containing month.
func Contains(month, t time.Time) bool {
	start, end := MonthBounds(month)
	return !t.Before(start) && !t.After(end)
}

// CurrentIndex returns the index of the month whose bounds contain today.
// If today is past every known month the last index is returned; if it
// precedes them all, the first. An empty list yields -1.
func CurrentIndex(monthStarts []time.Time, today time.Time) int {
	if len(monthStarts) == 0 {
		return -1
	}
	for i, m := range monthStarts {
		if Contains(m, today) || today.Before(m) {
			return i
		}
	}
	return len(monthStarts) - 1
}

// MonthsBetween returns the number of whole calendar months from a to b.
// The day-of-month is ignored; February to April is two regardless of day.
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
