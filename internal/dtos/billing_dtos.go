package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/poofware/rental-service/internal/models"
)

type CreatePrepaymentRequest struct {
	ContractID  uuid.UUID `json:"contract_id" validate:"required"`
	Date        time.Time `json:"date,omitempty"`
	Months      int       `json:"months" validate:"gt=0"`
	AmountCents int64     `json:"amount_cents" validate:"gt=0"`
	Description string    `json:"description,omitempty"`
}

type PrepaymentBalanceResponse struct {
	ContractID   uuid.UUID `json:"contract_id"`
	BalanceCents int64     `json:"balance_cents"`
}

// RunBillingRequest triggers a daily pass for one building on an
// explicit day, mainly for operations and testing.
type RunBillingRequest struct {
	BuildingID uuid.UUID `json:"building_id" validate:"required"`
	Day        time.Time `json:"day" validate:"required"`
}

type InvoiceResponse struct {
	*models.Invoice
	OutstandingCents int64                 `json:"outstanding_cents"`
	Lines            []*models.InvoiceLine `json:"lines,omitempty"`
}

func NewInvoiceResponse(inv *models.Invoice, lines []*models.InvoiceLine) InvoiceResponse {
	return InvoiceResponse{
		Invoice:          inv,
		OutstandingCents: inv.OutstandingCents(),
		Lines:            lines,
	}
}
