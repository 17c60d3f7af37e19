package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/poofware/rental-service/internal/constants"
	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/repositories"
	"github.com/poofware/rental-service/internal/utils"
)

/* ───────────── public interface ───────────── */

// AllocationService applies a contract's prepayment balance against an
// invoice, oldest prepayment first.
type AllocationService interface {
	// ApplyToInvoice consumes up to the invoice's outstanding amount from
	// the contract's prepayments. It adds one negative, tax-free line for
	// the covered total, writes one consumption link per prepayment
	// touched, and auto-posts the invoice when its total reaches zero.
	// Returns the refreshed invoice and the amount covered.
	ApplyToInvoice(ctx context.Context, contract *models.Contract, inv *models.Invoice) (*models.Invoice, int64, error)
}

/* ───────────── implementation ───────────── */

type allocationService struct {
	prepayments  repositories.PrepaymentRepository
	consumptions repositories.ConsumptionRepository
	invoices     repositories.InvoiceRepository

	advanceAccount string
}

func NewAllocationService(
	prepayments repositories.PrepaymentRepository,
	consumptions repositories.ConsumptionRepository,
	invoices repositories.InvoiceRepository,
	advanceAccount string,
) AllocationService {
	if advanceAccount == "" {
		advanceAccount = constants.DefaultAdvanceAccountCode
	}
	return &allocationService{
		prepayments:    prepayments,
		consumptions:   consumptions,
		invoices:       invoices,
		advanceAccount: advanceAccount,
	}
}

func (s *allocationService) ApplyToInvoice(ctx context.Context, contract *models.Contract, inv *models.Invoice) (*models.Invoice, int64, error) {
	if inv.MoveType != models.MoveTypeOutInvoice {
		return inv, 0, nil
	}
	if inv.State != models.InvoiceStateDraft {
		return inv, 0, utils.ErrInvoiceNotDraft
	}

	// Re-running a pass must not double-consume: once any link exists for
	// this invoice, allocation already happened.
	consumed, err := s.consumptions.ExistsForInvoice(ctx, inv.ID)
	if err != nil {
		return inv, 0, err
	}
	if consumed {
		return inv, 0, nil
	}

	balance, err := s.prepayments.BalanceCents(ctx, contract.ID)
	if err != nil {
		return inv, 0, err
	}

	toCover := min64(balance, inv.OutstandingCents())
	if toCover <= 0 {
		return inv, 0, nil
	}

	line := &models.InvoiceLine{
		ID:             uuid.New(),
		InvoiceID:      inv.ID,
		Description:    "Prepayment applied",
		Quantity:       1,
		PriceUnitCents: -toCover,
		AccountCode:    s.advanceAccount,
		TaxApplied:     false,
	}
	if err := s.invoices.AddLine(ctx, line); err != nil {
		return inv, 0, err
	}

	if err := s.writeLinks(ctx, contract, inv, toCover); err != nil {
		return inv, 0, err
	}

	fresh, err := s.invoices.RecomputeTotals(ctx, inv.ID)
	if err != nil {
		return inv, toCover, err
	}
	if fresh.AmountTotalCents == 0 {
		if fresh, err = s.invoices.Post(ctx, fresh.ID); err != nil {
			return fresh, toCover, err
		}
		utils.Logger.Infof("Invoice %s fully covered by prepayments, auto-posted", fresh.ID)
	}
	return fresh, toCover, nil
}

// writeLinks walks the ledger oldest-first, draining each prepayment's
// remaining balance until toCover is exhausted.
func (s *allocationService) writeLinks(ctx context.Context, contract *models.Contract, inv *models.Invoice, toCover int64) error {
	ledger, err := s.prepayments.ListByContractFIFO(ctx, contract.ID)
	if err != nil {
		return err
	}

	remaining := toCover
	for _, p := range ledger {
		if remaining <= 0 {
			break
		}
		take := min64(p.BalanceCents, remaining)
		if take <= 0 {
			continue
		}
		link := &models.ConsumptionLink{
			ID:           uuid.New(),
			ContractID:   contract.ID,
			InvoiceID:    inv.ID,
			PrepaymentID: p.ID,
			AmountCents:  take,
			Currency:     p.Currency,
		}
		if err := s.consumptions.Create(ctx, link); err != nil {
			return err
		}
		remaining -= take
	}

	if remaining > 0 {
		// Balance shrank between the read and the walk; the links written
		// still sum below the negative line. Log loudly, the next pass
		// reconciles totals from the lines.
		utils.Logger.Errorf("Contract %s: %d cents of planned consumption not linkable", contract.ID, remaining)
	}
	return nil
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
