package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func d(y int, m time.Month, dd int) time.Time {
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

func TestNextBusinessDay(t *testing.T) {
	// A Thursday stays put.
	require.Equal(t, d(2026, time.January, 15), NextBusinessDay(d(2026, time.January, 15)))

	// Saturday the 17th: Monday the 19th is MLK Day, so Tuesday the 20th.
	require.Equal(t, d(2026, time.January, 20), NextBusinessDay(d(2026, time.January, 17)))

	// July 4 2026 is a Saturday; the Friday before is the observed
	// holiday, so the 3rd itself rolls to Monday the 6th.
	require.Equal(t, d(2026, time.July, 6), NextBusinessDay(d(2026, time.July, 3)))
}

func TestIsBusinessDay(t *testing.T) {
	require.True(t, IsBusinessDay(d(2026, time.January, 14)))
	require.False(t, IsBusinessDay(d(2026, time.January, 17))) // Saturday
	require.False(t, IsBusinessDay(d(2026, time.December, 25)))
}
