package services

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/repositories"
	"github.com/poofware/rental-service/internal/utils"
)

/* ───────────── public interface ───────────── */

type UtilityService interface {
	CreateType(ctx context.Context, t *models.UtilityType) (*models.UtilityType, error)
	ListTypes(ctx context.Context) ([]*models.UtilityType, error)

	// CreateExpense records a utility charge for a contract. For metered
	// types the amount derives from the readings and the type's unit
	// rate; fixed types take the amount as given.
	CreateExpense(ctx context.Context, e *models.UtilityExpense) (*models.UtilityExpense, error)

	ListExpensesByContract(ctx context.Context, contractID uuid.UUID) ([]*models.UtilityExpense, error)

	// BillExpense pushes a draft expense onto the invoice as an extra
	// line and marks the expense billed. The invoice must be a draft.
	BillExpense(ctx context.Context, expenseID, invoiceID uuid.UUID) (*models.UtilityExpense, error)
}

/* ───────────── implementation ───────────── */

type utilityService struct {
	utilities repositories.UtilityRepository
	contracts repositories.ContractRepository
	invoices  repositories.InvoiceRepository
}

func NewUtilityService(
	utilities repositories.UtilityRepository,
	contracts repositories.ContractRepository,
	invoices repositories.InvoiceRepository,
) UtilityService {
	return &utilityService{utilities: utilities, contracts: contracts, invoices: invoices}
}

func (s *utilityService) CreateType(ctx context.Context, t *models.UtilityType) (*models.UtilityType, error) {
	if t.Name == "" {
		return nil, utils.NewValidationError("Utility type name is required", nil)
	}
	if t.Pricing == models.UtilityPricingMeter && t.UnitRateCents <= 0 {
		return nil, utils.NewValidationError("Metered utility needs a positive unit rate", utils.ErrAmountNotPositive)
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if err := s.utilities.CreateType(ctx, t); err != nil {
		return nil, err
	}
	return s.utilities.GetType(ctx, t.ID)
}

func (s *utilityService) ListTypes(ctx context.Context) ([]*models.UtilityType, error) {
	return s.utilities.ListTypes(ctx)
}

func (s *utilityService) CreateExpense(ctx context.Context, e *models.UtilityExpense) (*models.UtilityExpense, error) {
	contract, err := s.contracts.GetByID(ctx, e.ContractID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, utils.NewNotFoundError("Contract not found")
	}

	utype, err := s.utilities.GetType(ctx, e.TypeID)
	if err != nil {
		return nil, err
	}
	if utype == nil {
		return nil, utils.NewNotFoundError("Utility type not found")
	}

	if utype.Pricing == models.UtilityPricingMeter {
		if e.ReadingEnd < e.ReadingStart {
			return nil, utils.NewValidationError("End reading must not be below start reading", nil)
		}
		e.AmountCents = int64(math.Round(e.Units() * float64(utype.UnitRateCents)))
	}
	if e.AmountCents <= 0 {
		return nil, utils.NewValidationError("Expense amount must be positive", utils.ErrAmountNotPositive)
	}

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Name == "" {
		e.Name = fmt.Sprintf("%s %s", utype.Name, e.PeriodStart.Format("January 2006"))
	}
	if e.Currency == "" {
		e.Currency = contract.Currency
	}
	e.State = models.UtilityExpenseDraft

	if err := s.utilities.CreateExpense(ctx, e); err != nil {
		return nil, err
	}
	return s.utilities.GetExpense(ctx, e.ID)
}

func (s *utilityService) ListExpensesByContract(ctx context.Context, contractID uuid.UUID) ([]*models.UtilityExpense, error) {
	return s.utilities.ListExpensesByContract(ctx, contractID)
}

func (s *utilityService) BillExpense(ctx context.Context, expenseID, invoiceID uuid.UUID) (*models.UtilityExpense, error) {
	expense, err := s.utilities.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, utils.NewNotFoundError("Utility expense not found")
	}
	if expense.State != models.UtilityExpenseDraft {
		return nil, utils.NewConflictError("Expense is already billed", utils.ErrExpenseAlreadyBilled)
	}

	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, utils.NewNotFoundError("Invoice not found")
	}
	if inv.State != models.InvoiceStateDraft {
		return nil, utils.NewConflictError("Expense lines can only be added to draft invoices", utils.ErrInvoiceNotDraft)
	}

	billed, err := s.utilities.MarkBilled(ctx, expenseID, invoiceID)
	if err != nil {
		return nil, err
	}
	if !billed {
		// Lost the race to another biller.
		return nil, utils.NewConflictError("Expense is already billed", utils.ErrExpenseAlreadyBilled)
	}

	line := &models.InvoiceLine{
		ID:             uuid.New(),
		InvoiceID:      invoiceID,
		Description:    expense.Name,
		Quantity:       1,
		PriceUnitCents: expense.AmountCents,
		TaxApplied:     true,
	}
	if err := s.invoices.AddLine(ctx, line); err != nil {
		return nil, err
	}
	if _, err := s.invoices.RecomputeTotals(ctx, invoiceID); err != nil {
		return nil, err
	}

	return s.utilities.GetExpense(ctx, expenseID)
}
