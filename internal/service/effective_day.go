package service

import "time"

// The planner day rolls over at offsetHours instead of midnight, so a block
// logged at 01:30 counts toward the previous calendar day.

// EffectiveDate returns the planner day (at midnight) a timestamp belongs to.
func EffectiveDate(t time.Time, offsetHours int) time.Time {
	shifted := t.Add(-time.Duration(offsetHours) * time.Hour)
	return time.Date(shifted.Year(), shifted.Month(), shifted.Day(), 0, 0, 0, 0, t.Location())
}

// EffectiveWindow returns the half-open wall-clock window [start, end) covered
// by the planner day.
func EffectiveWindow(day time.Time, offsetHours int) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), offsetHours, 0, 0, 0, day.Location())
	return start, start.Add(24 * time.Hour)
}

// calendarDate truncates a timestamp to its own calendar date, ignoring the
// day offset. Dashboard buckets and streak days use this.
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
