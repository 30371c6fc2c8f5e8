// Package core has the analytics, comparison and report lifecycle logic.
package core

import "time"

// monthLayout renders a timestamp as a short month plus two-digit year,
// e.g. "Nov '24". The label doubles as the grouping key, so it must stay
// byte-stable for equal month/year.
const monthLayout = "Jan '06"

// weekLayout is the ISO date of a week's Sunday, e.g. "2024-11-03".
const weekLayout = "2006-01-02"

// MonthBucket maps a timestamp to its calendar month label.
func MonthBucket(t time.Time) string {
	return t.Format(monthLayout)
}

// WeekBucket maps a timestamp to the ISO date of the Sunday starting its
// calendar week. Sunday maps to itself. The result sorts chronologically
// as a plain string.
func WeekBucket(t time.Time) string {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	sunday := midnight.AddDate(0, 0, -int(midnight.Weekday()))
	return sunday.Format(weekLayout)
}
