package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMonthBounds(t *testing.T) {
	first, last := MonthBounds(date(2026, time.January, 15))
	require.Equal(t, date(2026, time.January, 1), first)
	require.Equal(t, date(2026, time.January, 31), last)

	// Leap February.
	first, last = MonthBounds(date(2028, time.February, 10))
	require.Equal(t, date(2028, time.February, 1), first)
	require.Equal(t, date(2028, time.February, 29), last)
}

func TestFormatCents(t *testing.T) {
	require.Equal(t, "1500.00 USD", FormatCents(150000, "USD"))
	require.Equal(t, "0.05 USD", FormatCents(5, "USD"))
	require.Equal(t, "-12.34 EUR", FormatCents(-1234, "EUR"))
}

func TestDateOnly(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	stamp := time.Date(2026, time.January, 15, 23, 45, 0, 0, loc)
	got := DateOnly(stamp)
	require.Equal(t, time.Date(2026, time.January, 15, 0, 0, 0, 0, loc), got)
}
