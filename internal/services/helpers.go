package services

import (
	"fmt"
	"time"
)

// DateOnly drops the clock, keeping the calendar day in t's location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MonthBounds returns the first and last day of day's month.
func MonthBounds(day time.Time) (first, last time.Time) {
	y, m, _ := day.Date()
	first = time.Date(y, m, 1, 0, 0, 0, 0, day.Location())
	last = first.AddDate(0, 1, -1)
	return first, last
}

// FormatCents renders an int64 cent amount as "123.45 USD" for
// human-facing notes and notifications.
func FormatCents(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, cents/100, cents%100, currency)
}
