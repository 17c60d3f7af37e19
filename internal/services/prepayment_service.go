package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/poofware/rental-service/internal/constants"
	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/repositories"
	"github.com/poofware/rental-service/internal/utils"
)

/* ───────────── public interface ───────────── */

type PrepaymentService interface {
	// Create records an advance payment against a contract. Amount and
	// months must both be positive.
	Create(ctx context.Context, p *models.Prepayment) (*models.Prepayment, error)

	GetByID(ctx context.Context, id uuid.UUID) (*models.Prepayment, error)

	// ListByContract returns the ledger oldest-first with per-prepayment
	// consumed/balance figures.
	ListByContract(ctx context.Context, contractID uuid.UUID) ([]*models.Prepayment, error)

	// Balance is the contract's remaining advance balance.
	Balance(ctx context.Context, contractID uuid.UUID) (int64, error)

	Delete(ctx context.Context, id uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type prepaymentService struct {
	prepayments  repositories.PrepaymentRepository
	consumptions repositories.ConsumptionRepository
	contracts    repositories.ContractRepository
}

func NewPrepaymentService(
	prepayments repositories.PrepaymentRepository,
	consumptions repositories.ConsumptionRepository,
	contracts repositories.ContractRepository,
) PrepaymentService {
	return &prepaymentService{
		prepayments:  prepayments,
		consumptions: consumptions,
		contracts:    contracts,
	}
}

func (s *prepaymentService) Create(ctx context.Context, p *models.Prepayment) (*models.Prepayment, error) {
	if p.AmountCents <= 0 {
		return nil, utils.NewValidationError("Prepayment amount must be positive", utils.ErrAmountNotPositive)
	}
	if p.Months <= 0 {
		return nil, utils.NewValidationError("Prepayment months must be positive", utils.ErrMonthsNotPositive)
	}

	contract, err := s.contracts.GetByID(ctx, p.ContractID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, utils.NewNotFoundError("Contract not found")
	}

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Date.IsZero() {
		p.Date = DateOnly(time.Now())
	}
	if p.Currency == "" {
		p.Currency = contract.Currency
		if p.Currency == "" {
			p.Currency = constants.DefaultCurrency
		}
	}

	if err := s.prepayments.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.prepayments.GetByID(ctx, p.ID)
}

func (s *prepaymentService) GetByID(ctx context.Context, id uuid.UUID) (*models.Prepayment, error) {
	p, err := s.prepayments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.NewNotFoundError("Prepayment not found")
	}
	return p, nil
}

func (s *prepaymentService) ListByContract(ctx context.Context, contractID uuid.UUID) ([]*models.Prepayment, error) {
	return s.prepayments.ListByContractFIFO(ctx, contractID)
}

func (s *prepaymentService) Balance(ctx context.Context, contractID uuid.UUID) (int64, error) {
	return s.prepayments.BalanceCents(ctx, contractID)
}

func (s *prepaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	// A consumed prepayment is part of the audit trail and cannot be
	// removed.
	if p.AmountConsumedCents > 0 {
		return utils.NewConflictError("Prepayment has been consumed and cannot be deleted", utils.ErrPrepaymentConsumed)
	}
	return s.prepayments.Delete(ctx, id)
}
