// Package shared holds the small request-parsing helpers the handlers
// have in common.
package shared

import (
	"net/http"
	"strconv"
	"time"
)

// ParseDate accepts RFC3339 or YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}

// ParseMonth reads month and year query parameters, defaulting to the
// current month.
func ParseMonth(r *http.Request, now time.Time) (time.Month, int) {
	month := now.Month()
	year := now.Year()
	if raw := r.URL.Query().Get("month"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 1 && v <= 12 {
			month = time.Month(v)
		}
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 2000 && v < 2200 {
			year = v
		}
	}
	return month, year
}

// ParseWeekOf reads the weekOf query parameter, defaulting to now.
func ParseWeekOf(r *http.Request, now time.Time) time.Time {
	raw := r.URL.Query().Get("weekOf")
	if raw == "" {
		return now
	}
	parsed, err := ParseDate(raw)
	if err != nil || parsed.IsZero() {
		return now
	}
	return parsed
}
