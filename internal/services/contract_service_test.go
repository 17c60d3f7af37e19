package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/utils"
)

type contractFixture struct {
	svc       ContractService
	contracts *fakeContractRepo
	units     *fakeUnitRepo
	buildings *fakeBuildingRepo
	partners  *fakePartnerRepo

	building *models.Building
	unit     *models.Unit
	tenant   *models.Partner
}

func newContractFixture(t *testing.T) *contractFixture {
	t.Helper()
	ctx := context.Background()

	f := &contractFixture{
		contracts: newFakeContractRepo(),
		units:     newFakeUnitRepo(),
		buildings: newFakeBuildingRepo(),
		partners:  newFakePartnerRepo(),
	}
	f.svc = NewContractService(f.contracts, f.units, f.buildings, f.partners)

	f.building = &models.Building{ID: uuid.New(), Name: "Harborview", CompanyID: uuid.New()}
	require.NoError(t, f.buildings.Create(ctx, f.building))

	owner := uuid.New()
	f.unit = &models.Unit{
		ID: uuid.New(), BuildingID: f.building.ID, Floor: 2, UnitNumber: "203",
		EffectiveOwnerID: &owner,
	}
	require.NoError(t, f.units.Create(ctx, f.unit))

	f.tenant = &models.Partner{ID: uuid.New(), Name: "Jamie Okafor"}
	require.NoError(t, f.partners.Create(ctx, f.tenant))
	return f
}

func (f *contractFixture) draft() *models.Contract {
	return &models.Contract{
		TenantID:    f.tenant.ID,
		BuildingID:  f.building.ID,
		UnitID:      f.unit.ID,
		AmountCents: 150000,
		StartDate:   date(2026, time.January, 1),
		RentDueDay:  1,
	}
}

func requireAppError(t *testing.T, err error, status int, sentinel error) {
	t.Helper()
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, status, appErr.StatusCode)
	require.True(t, errors.Is(err, sentinel))
}

func TestCreateContractAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	f := newContractFixture(t)

	c, err := f.svc.Create(ctx, f.draft())
	require.NoError(t, err)

	require.Equal(t, models.ContractStateDraft, c.State)
	require.Equal(t, models.RecurrenceMonth, c.Recurrence)
	require.Equal(t, "USD", c.Currency)
	require.Equal(t, f.building.CompanyID, c.CompanyID)
	require.Equal(t, f.unit.EffectiveOwnerID, c.OwnerID)
	require.Equal(t, "Jamie Okafor / Harborview - 203", c.Name)
}

func TestCreateContractValidation(t *testing.T) {
	ctx := context.Background()
	f := newContractFixture(t)

	noTenant := f.draft()
	noTenant.TenantID = uuid.Nil
	_, err := f.svc.Create(ctx, noTenant)
	requireAppError(t, err, http.StatusUnprocessableEntity, utils.ErrNoTenant)

	freeRent := f.draft()
	freeRent.AmountCents = 0
	_, err = f.svc.Create(ctx, freeRent)
	requireAppError(t, err, http.StatusBadRequest, utils.ErrAmountNotPositive)

	badDay := f.draft()
	badDay.RentDueDay = 32
	_, err = f.svc.Create(ctx, badDay)
	requireAppError(t, err, http.StatusBadRequest, utils.ErrRentDueDayOutOfRange)
}

func TestCreateContractRejectsForeignUnit(t *testing.T) {
	ctx := context.Background()
	f := newContractFixture(t)

	other := &models.Building{ID: uuid.New(), Name: "Elsewhere", CompanyID: uuid.New()}
	require.NoError(t, f.buildings.Create(ctx, other))

	c := f.draft()
	c.BuildingID = other.ID
	_, err := f.svc.Create(ctx, c)
	requireAppError(t, err, http.StatusBadRequest, utils.ErrUnitNotInBuilding)
}

func TestActivateClaimsUnitAndResidence(t *testing.T) {
	ctx := context.Background()
	f := newContractFixture(t)

	c, err := f.svc.Create(ctx, f.draft())
	require.NoError(t, err)

	c, err = f.svc.Activate(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, models.ContractStateActive, c.State)

	unit, _ := f.units.GetByID(ctx, f.unit.ID)
	require.NotNil(t, unit.TenantID)
	require.Equal(t, f.tenant.ID, *unit.TenantID)

	tenant, _ := f.partners.GetByID(ctx, f.tenant.ID)
	require.NotNil(t, tenant.UnitID)
	require.Equal(t, f.unit.ID, *tenant.UnitID)
}

func TestActivateRejectsSecondActiveContract(t *testing.T) {
	ctx := context.Background()
	f := newContractFixture(t)

	first, err := f.svc.Create(ctx, f.draft())
	require.NoError(t, err)
	_, err = f.svc.Activate(ctx, first.ID)
	require.NoError(t, err)

	second := f.draft()
	second.TenantID = uuid.New()
	created, err := f.svc.Create(ctx, second)
	require.NoError(t, err)

	_, err = f.svc.Activate(ctx, created.ID)
	requireAppError(t, err, http.StatusConflict, utils.ErrDuplicateContractState)
}

func TestCancelReleasesUnit(t *testing.T) {
	ctx := context.Background()
	f := newContractFixture(t)

	c, err := f.svc.Create(ctx, f.draft())
	require.NoError(t, err)
	_, err = f.svc.Activate(ctx, c.ID)
	require.NoError(t, err)

	c, err = f.svc.Cancel(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, models.ContractStateCancelled, c.State)

	unit, _ := f.units.GetByID(ctx, f.unit.ID)
	require.Nil(t, unit.TenantID)

	tenant, _ := f.partners.GetByID(ctx, f.tenant.ID)
	require.Nil(t, tenant.UnitID)
	require.Nil(t, tenant.BuildingID)
}

func TestExpireOverdueFlipsOnlyEndedActives(t *testing.T) {
	ctx := context.Background()
	f := newContractFixture(t)

	end := date(2026, time.January, 10)
	ended := f.draft()
	ended.ID = uuid.New()
	ended.State = models.ContractStateActive
	ended.EndDate = &end
	require.NoError(t, f.contracts.Create(ctx, ended))

	openEnded := f.draft()
	openEnded.ID = uuid.New()
	openEnded.UnitID = uuid.New()
	openEnded.State = models.ContractStateActive
	require.NoError(t, f.contracts.Create(ctx, openEnded))

	ExpireOverdue(ctx, f.contracts, f.building.ID, date(2026, time.January, 15))

	got, _ := f.contracts.GetByID(ctx, ended.ID)
	require.Equal(t, models.ContractStateExpired, got.State)
	got, _ = f.contracts.GetByID(ctx, openEnded.ID)
	require.Equal(t, models.ContractStateActive, got.State)
}
