package core

import "time"

// AddMonthsClamped moves t by n calendar months. When the target month is
// shorter than t's day of month the day is clamped to the month's last day
// (Jan 31 + 1 month = Feb 28 or 29). Clock time and location are preserved.
func AddMonthsClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(first.Year(), first.Month(), t.Location()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// NextBillingDate returns the date exactly one cycle after start.
func NextBillingDate(start time.Time, cycle Cycle) time.Time {
	return AddMonthsClamped(start, cycle.Months())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
