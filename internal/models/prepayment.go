package models

import (
	"time"

	"github.com/google/uuid"
)

// Prepayment is an advance payment recorded against a contract,
// consumable against future invoices, oldest first.
type Prepayment struct {
	ID          uuid.UUID  `json:"id"`
	ContractID  uuid.UUID  `json:"contract_id"`
	Date        time.Time  `json:"date"`
	Months      int        `json:"months"`
	AmountCents int64      `json:"amount_cents"`
	Currency    string     `json:"currency"`
	Description string     `json:"description,omitempty"`
	InvoiceID   *uuid.UUID `json:"invoice_id,omitempty"`

	// Derived from consumption links on read.
	AmountConsumedCents int64 `json:"amount_consumed_cents"`
	BalanceCents        int64 `json:"balance_cents"`

	CreatedAt time.Time `json:"created_at"`
}

// ConsumptionLink records that a specific invoice consumed a specific
// amount from a specific prepayment. Insert-only audit trail.
type ConsumptionLink struct {
	ID          uuid.UUID `json:"id"`
	ContractID  uuid.UUID `json:"contract_id"`
	InvoiceID   uuid.UUID `json:"invoice_id"`
	PrepaymentID uuid.UUID `json:"prepayment_id"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
}
