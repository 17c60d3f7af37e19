package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/poofware/rental-service/internal/models"
)

func TestRevenueMixesMonthlyAndYearlyContracts(t *testing.T) {
	ctx := context.Background()
	buildings := newFakeBuildingRepo()
	contracts := newFakeContractRepo()
	svc := NewRevenueService(buildings, contracts)

	b := &models.Building{ID: uuid.New(), Name: "Harborview"}
	require.NoError(t, buildings.Create(ctx, b))

	require.NoError(t, contracts.Create(ctx, &models.Contract{
		ID: uuid.New(), BuildingID: b.ID, UnitID: uuid.New(),
		AmountCents: 150000, Recurrence: models.RecurrenceMonth,
		StartDate: date(2026, time.January, 1), State: models.ContractStateActive,
	}))
	require.NoError(t, contracts.Create(ctx, &models.Contract{
		ID: uuid.New(), BuildingID: b.ID, UnitID: uuid.New(),
		AmountCents: 1200000, Recurrence: models.RecurrenceYear,
		StartDate: date(2026, time.January, 1), State: models.ContractStateActive,
	}))

	rev, err := svc.ForBuilding(ctx, b.ID, date(2026, time.June, 1))
	require.NoError(t, err)
	// 1500/mo plus 12000/yr normalized both ways.
	require.Equal(t, int64(250000), rev.MonthlyExpectedCents)
	require.Equal(t, int64(3000000), rev.YearlyExpectedCents)
}

func TestRevenueExcludesInactiveAndOutOfWindow(t *testing.T) {
	ctx := context.Background()
	buildings := newFakeBuildingRepo()
	contracts := newFakeContractRepo()
	svc := NewRevenueService(buildings, contracts)

	b := &models.Building{ID: uuid.New(), Name: "Harborview"}
	require.NoError(t, buildings.Create(ctx, b))

	require.NoError(t, contracts.Create(ctx, &models.Contract{
		ID: uuid.New(), BuildingID: b.ID, UnitID: uuid.New(),
		AmountCents: 150000, Recurrence: models.RecurrenceMonth,
		StartDate: date(2026, time.January, 1), State: models.ContractStateDraft,
	}))
	end := date(2026, time.March, 31)
	require.NoError(t, contracts.Create(ctx, &models.Contract{
		ID: uuid.New(), BuildingID: b.ID, UnitID: uuid.New(),
		AmountCents: 90000, Recurrence: models.RecurrenceMonth,
		StartDate: date(2026, time.January, 1), EndDate: &end,
		State: models.ContractStateActive,
	}))

	rev, err := svc.ForBuilding(ctx, b.ID, date(2026, time.June, 1))
	require.NoError(t, err)
	require.Equal(t, int64(0), rev.MonthlyExpectedCents)
	require.Equal(t, int64(0), rev.YearlyExpectedCents)
}

func TestRevenueForAllBuildingsReportsZeros(t *testing.T) {
	ctx := context.Background()
	buildings := newFakeBuildingRepo()
	contracts := newFakeContractRepo()
	svc := NewRevenueService(buildings, contracts)

	empty := &models.Building{ID: uuid.New(), Name: "Empty Lot"}
	full := &models.Building{ID: uuid.New(), Name: "Harborview"}
	require.NoError(t, buildings.Create(ctx, empty))
	require.NoError(t, buildings.Create(ctx, full))

	require.NoError(t, contracts.Create(ctx, &models.Contract{
		ID: uuid.New(), BuildingID: full.ID, UnitID: uuid.New(),
		AmountCents: 150000, Recurrence: models.RecurrenceMonth,
		StartDate: date(2026, time.January, 1), State: models.ContractStateActive,
	}))

	list, err := svc.ForAllBuildings(ctx, date(2026, time.June, 1))
	require.NoError(t, err)
	require.Len(t, list, 2)

	byID := map[uuid.UUID]*models.BuildingRevenue{}
	for _, rev := range list {
		byID[rev.BuildingID] = rev
	}
	require.Equal(t, int64(0), byID[empty.ID].MonthlyExpectedCents)
	require.Equal(t, int64(150000), byID[full.ID].MonthlyExpectedCents)
}
