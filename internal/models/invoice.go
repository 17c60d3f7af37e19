package models

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceStateType string

const (
	InvoiceStateDraft  InvoiceStateType = "DRAFT"
	InvoiceStatePosted InvoiceStateType = "POSTED"
)

type MoveType string

const (
	MoveTypeOutInvoice MoveType = "OUT_INVOICE"
	MoveTypeInInvoice  MoveType = "IN_INVOICE"
)

// Invoice is the narrow accounting document this service reads and
// writes: state, totals, residual, plus the estate tags used for
// grouping. PeriodMonth is the first day of the billing month and backs
// the unique find-or-create identity per tenant/building/unit.
type Invoice struct {
	Versioned
	ID        uuid.UUID        `json:"id"`
	MoveType  MoveType         `json:"move_type"`
	State     InvoiceStateType `json:"state"`
	TenantID  uuid.UUID        `json:"tenant_id"`
	CompanyID uuid.UUID        `json:"company_id"`
	Currency  string           `json:"currency"`

	InvoiceDate time.Time `json:"invoice_date"`
	PeriodMonth time.Time `json:"period_month"`

	// Estate tags, propagated from the originating contract.
	BuildingID uuid.UUID  `json:"building_id"`
	UnitID     uuid.UUID  `json:"unit_id"`
	Floor      int        `json:"floor"`
	UnitNumber string     `json:"unit_number"`
	OwnerID    *uuid.UUID `json:"owner_id,omitempty"`

	AmountTotalCents    int64 `json:"amount_total_cents"`
	AmountResidualCents int64 `json:"amount_residual_cents"`

	PostedAt  *time.Time `json:"posted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (i *Invoice) GetID() string { return i.ID.String() }

// OutstandingCents is the amount still owed: the residual once posted,
// the running total while still a draft.
func (i *Invoice) OutstandingCents() int64 {
	if i.State == InvoiceStatePosted {
		return i.AmountResidualCents
	}
	return i.AmountTotalCents
}

// InvoiceLine is one line on an invoice. Estate tags are carried on the
// parent invoice; lines inherit them for reporting queries.
type InvoiceLine struct {
	ID             uuid.UUID `json:"id"`
	InvoiceID      uuid.UUID `json:"invoice_id"`
	Description    string    `json:"description"`
	Quantity       int64     `json:"quantity"`
	PriceUnitCents int64     `json:"price_unit_cents"`
	AccountCode    string    `json:"account_code,omitempty"`
	TaxApplied     bool      `json:"tax_applied"`
	CreatedAt      time.Time `json:"created_at"`
}

// TotalCents is quantity times unit price.
func (l *InvoiceLine) TotalCents() int64 {
	return l.Quantity * l.PriceUnitCents
}
