// Package schedule lays plan entries out on the weekly board and the
// monthly calendar: track packing so overlapping bars stack instead of
// colliding, plus the week and month window math the views need.
package schedule

import "time"

// StartOfWeek returns the Monday 00:00 of t's week in t's location.
func StartOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -(weekday - 1))
}

// WeekNumber returns the ISO week number of t.
func WeekNumber(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// WeekDays lists the seven days of t's week starting Monday.
func WeekDays(t time.Time) []time.Time {
	start := StartOfWeek(t)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// CalendarWeeks builds the six Monday-started week rows that cover the
// month of t, the way a wall calendar prints it.
func CalendarWeeks(t time.Time) [][]time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	cursor := StartOfWeek(first)

	weeks := make([][]time.Time, 6)
	for w := range weeks {
		week := make([]time.Time, 7)
		for d := range week {
			week[d] = cursor
			cursor = cursor.AddDate(0, 0, 1)
		}
		weeks[w] = week
	}
	return weeks
}

// DayStart returns midnight of t's day.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd returns the last instant of t's day.
func DayEnd(t time.Time) time.Time {
	return DayStart(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// DayColumn returns the zero-based column of day within a week row
// starting at weekStart, or -1 when the day falls outside the row.
// Columns match by calendar date, so a window anchored in one location
// still places spans parsed in another.
func DayColumn(weekStart, day time.Time) int {
	y, m, d := day.Date()
	for i := 0; i < 7; i++ {
		cy, cm, cd := weekStart.AddDate(0, 0, i).Date()
		if cy == y && cm == m && cd == d {
			return i
		}
	}
	return -1
}

// Overlaps reports whether the two inclusive ranges share any instant.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}
