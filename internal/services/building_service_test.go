package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/poofware/rental-service/internal/models"
)

func TestCreateBuildingGeneratesUnitGrid(t *testing.T) {
	ctx := context.Background()
	buildings := newFakeBuildingRepo()
	units := newFakeUnitRepo()
	svc := NewBuildingService(buildings, units)

	owner := uuid.New()
	b, err := svc.Create(ctx, &models.Building{
		Name: "Harborview", CompanyID: uuid.New(), OwnerID: &owner,
	}, 3, 4)
	require.NoError(t, err)

	list, _ := units.ListByBuildingID(ctx, b.ID)
	require.Len(t, list, 12)

	byNumber := map[string]*models.Unit{}
	for _, u := range list {
		byNumber[u.UnitNumber] = u
	}
	third := byNumber["203"]
	require.NotNil(t, third)
	require.Equal(t, 2, third.Floor)
	require.Equal(t, "Harborview 203", third.Name)
	require.NotNil(t, third.EffectiveOwnerID)
	require.Equal(t, owner, *third.EffectiveOwnerID)
}

func TestCreateBuildingWithoutGrid(t *testing.T) {
	ctx := context.Background()
	buildings := newFakeBuildingRepo()
	units := newFakeUnitRepo()
	svc := NewBuildingService(buildings, units)

	b, err := svc.Create(ctx, &models.Building{Name: "Harborview"}, 0, 0)
	require.NoError(t, err)

	list, _ := units.ListByBuildingID(ctx, b.ID)
	require.Empty(t, list)
}

func TestUpdateBuildingOwnerCascadesToUnownedUnits(t *testing.T) {
	ctx := context.Background()
	buildings := newFakeBuildingRepo()
	units := newFakeUnitRepo()
	svc := NewBuildingService(buildings, units)

	b, err := svc.Create(ctx, &models.Building{Name: "Harborview"}, 1, 2)
	require.NoError(t, err)

	// One unit has an owner of its own; the cascade must not touch it.
	list, _ := units.ListByBuildingID(ctx, b.ID)
	privateOwner := uuid.New()
	require.NoError(t, units.UpdateWithRetry(ctx, list[1].ID, func(u *models.Unit) error {
		o := privateOwner
		u.OwnerID = &o
		u.EffectiveOwnerID = &o
		return nil
	}))

	newOwner := uuid.New()
	b.OwnerID = &newOwner
	_, err = svc.Update(ctx, b)
	require.NoError(t, err)

	list, _ = units.ListByBuildingID(ctx, b.ID)
	require.NotNil(t, list[0].EffectiveOwnerID)
	require.Equal(t, newOwner, *list[0].EffectiveOwnerID)
	require.Equal(t, privateOwner, *list[1].EffectiveOwnerID)
}

func TestDeleteBuildingIsSoft(t *testing.T) {
	ctx := context.Background()
	buildings := newFakeBuildingRepo()
	svc := NewBuildingService(buildings, newFakeUnitRepo())

	b, err := svc.Create(ctx, &models.Building{Name: "Harborview"}, 0, 0)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, b.ID))

	got, err := buildings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.Nil(t, got)
	// The row itself survives for audit.
	require.Contains(t, buildings.rows, b.ID)
}

func TestSetUnitOwnerResolvesEffectiveOwner(t *testing.T) {
	ctx := context.Background()
	buildings := newFakeBuildingRepo()
	units := newFakeUnitRepo()
	unitSvc := NewUnitService(units, buildings)

	bldgOwner := uuid.New()
	b := &models.Building{ID: uuid.New(), Name: "Harborview", OwnerID: &bldgOwner}
	require.NoError(t, buildings.Create(ctx, b))

	u, err := unitSvc.Create(ctx, &models.Unit{BuildingID: b.ID, Floor: 1, UnitNumber: "101"})
	require.NoError(t, err)
	// No owner of its own: inherits the building's.
	require.Equal(t, bldgOwner, *u.EffectiveOwnerID)

	unitOwner := uuid.New()
	u, err = unitSvc.SetOwner(ctx, u.ID, &unitOwner)
	require.NoError(t, err)
	require.Equal(t, unitOwner, *u.EffectiveOwnerID)

	// Clearing the unit owner falls back to the building owner.
	u, err = unitSvc.SetOwner(ctx, u.ID, nil)
	require.NoError(t, err)
	require.Equal(t, bldgOwner, *u.EffectiveOwnerID)
}
