package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/utils"
)

func newPrepaymentFixture(t *testing.T) (PrepaymentService, *fakePrepaymentRepo, *fakeConsumptionRepo, *models.Contract) {
	t.Helper()
	ctx := context.Background()

	consumptions := newFakeConsumptionRepo()
	prepayments := newFakePrepaymentRepo(consumptions)
	contracts := newFakeContractRepo()
	svc := NewPrepaymentService(prepayments, consumptions, contracts)

	contract := &models.Contract{
		ID: uuid.New(), TenantID: uuid.New(), BuildingID: uuid.New(), UnitID: uuid.New(),
		Currency: "USD", AmountCents: 150000, State: models.ContractStateActive,
	}
	require.NoError(t, contracts.Create(ctx, contract))
	return svc, prepayments, consumptions, contract
}

func TestCreatePrepaymentDefaultsAndValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _, contract := newPrepaymentFixture(t)

	p, err := svc.Create(ctx, &models.Prepayment{
		ContractID: contract.ID, Months: 2, AmountCents: 300000,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, p.ID)
	require.Equal(t, "USD", p.Currency)
	require.False(t, p.Date.IsZero())
	require.Equal(t, int64(300000), p.BalanceCents)

	_, err = svc.Create(ctx, &models.Prepayment{ContractID: contract.ID, Months: 2})
	requireAppError(t, err, http.StatusBadRequest, utils.ErrAmountNotPositive)

	_, err = svc.Create(ctx, &models.Prepayment{ContractID: contract.ID, AmountCents: 300000})
	requireAppError(t, err, http.StatusBadRequest, utils.ErrMonthsNotPositive)

	_, err = svc.Create(ctx, &models.Prepayment{
		ContractID: uuid.New(), Months: 1, AmountCents: 100,
	})
	requireAppError(t, err, http.StatusNotFound, utils.ErrNotFound)
}

func TestPrepaymentBalanceSumsLedger(t *testing.T) {
	ctx := context.Background()
	svc, _, consumptions, contract := newPrepaymentFixture(t)

	first, err := svc.Create(ctx, &models.Prepayment{
		ContractID: contract.ID, Months: 1, AmountCents: 100000,
		Date: date(2026, time.January, 1),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.Prepayment{
		ContractID: contract.ID, Months: 1, AmountCents: 50000,
		Date: date(2026, time.February, 1),
	})
	require.NoError(t, err)

	require.NoError(t, consumptions.Create(ctx, &models.ConsumptionLink{
		ID: uuid.New(), PrepaymentID: first.ID, ContractID: contract.ID,
		InvoiceID: uuid.New(), AmountCents: 40000,
	}))

	balance, err := svc.Balance(ctx, contract.ID)
	require.NoError(t, err)
	require.Equal(t, int64(110000), balance)

	list, err := svc.ListByContract(ctx, contract.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, first.ID, list[0].ID)
	require.Equal(t, int64(40000), list[0].AmountConsumedCents)
	require.Equal(t, int64(60000), list[0].BalanceCents)
}

func TestDeletePrepaymentRefusesConsumed(t *testing.T) {
	ctx := context.Background()
	svc, _, consumptions, contract := newPrepaymentFixture(t)

	p, err := svc.Create(ctx, &models.Prepayment{
		ContractID: contract.ID, Months: 1, AmountCents: 100000,
	})
	require.NoError(t, err)

	require.NoError(t, consumptions.Create(ctx, &models.ConsumptionLink{
		ID: uuid.New(), PrepaymentID: p.ID, ContractID: contract.ID,
		InvoiceID: uuid.New(), AmountCents: 1,
	}))

	err = svc.Delete(ctx, p.ID)
	requireAppError(t, err, http.StatusConflict, utils.ErrPrepaymentConsumed)
}

func TestDeletePrepaymentRemovesUntouched(t *testing.T) {
	ctx := context.Background()
	svc, prepayments, _, contract := newPrepaymentFixture(t)

	p, err := svc.Create(ctx, &models.Prepayment{
		ContractID: contract.ID, Months: 1, AmountCents: 100000,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID))
	require.Empty(t, prepayments.rows)
}
