package services

import "time"

// NextMonday returns the first Monday strictly after the given time, at
// midnight UTC. When called on a Monday it advances a full week, so a
// Sunday-evening trigger and a Monday-morning manual run both target the
// upcoming week rather than the one already in progress.
func NextMonday(from time.Time) time.Time {
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(time.Monday) - int(day.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return day.AddDate(0, 0, offset)
}

// dateOnly truncates a time to midnight UTC without changing the day
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
