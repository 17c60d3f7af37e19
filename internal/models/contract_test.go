package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRentNormalization(t *testing.T) {
	monthly := &Contract{AmountCents: 150000, Recurrence: RecurrenceMonth}
	require.Equal(t, int64(150000), monthly.MonthlyAmountCents())
	require.Equal(t, int64(1800000), monthly.YearlyAmountCents())

	yearly := &Contract{AmountCents: 1200000, Recurrence: RecurrenceYear}
	require.Equal(t, int64(100000), yearly.MonthlyAmountCents())
	require.Equal(t, int64(1200000), yearly.YearlyAmountCents())

	// Integer cents: the sub-cent remainder of 1000.00/12 is dropped.
	odd := &Contract{AmountCents: 100000, Recurrence: RecurrenceYear}
	require.Equal(t, int64(8333), odd.MonthlyAmountCents())
}

func TestContractWindow(t *testing.T) {
	end := day(2026, time.June, 30)
	c := &Contract{
		StartDate: day(2026, time.January, 1),
		EndDate:   &end,
		State:     ContractStateActive,
	}

	require.False(t, c.InWindow(day(2025, time.December, 31)))
	require.True(t, c.InWindow(day(2026, time.January, 1)))
	require.True(t, c.InWindow(day(2026, time.June, 30)))
	require.False(t, c.InWindow(day(2026, time.July, 1)))

	require.True(t, c.ActiveOn(day(2026, time.March, 15)))
	c.State = ContractStateDraft
	require.False(t, c.ActiveOn(day(2026, time.March, 15)))

	// Open-ended windows never expire on the right side.
	open := &Contract{StartDate: day(2026, time.January, 1), State: ContractStateActive}
	require.True(t, open.ActiveOn(day(2030, time.January, 1)))
}

func TestInvoiceOutstanding(t *testing.T) {
	inv := &Invoice{State: InvoiceStateDraft, AmountTotalCents: 150000, AmountResidualCents: 0}
	require.Equal(t, int64(150000), inv.OutstandingCents())

	inv.State = InvoiceStatePosted
	inv.AmountResidualCents = 40000
	require.Equal(t, int64(40000), inv.OutstandingCents())
}
