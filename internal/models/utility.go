package models

import (
	"time"

	"github.com/google/uuid"
)

type UtilityPricingType string

const (
	UtilityPricingFixed UtilityPricingType = "FIXED"
	UtilityPricingMeter UtilityPricingType = "METER"
)

type UtilityExpenseState string

const (
	UtilityExpenseDraft  UtilityExpenseState = "DRAFT"
	UtilityExpenseBilled UtilityExpenseState = "BILLED"
	UtilityExpensePaid   UtilityExpenseState = "PAID"
)

// UtilityType describes a billable utility (water, electricity, ...),
// either fixed per period or metered per unit consumed.
type UtilityType struct {
	ID            uuid.UUID          `json:"id"`
	Name          string             `json:"name"`
	Pricing       UtilityPricingType `json:"pricing"`
	UnitRateCents int64              `json:"unit_rate_cents"`
	UnitOfMeasure string             `json:"unit_of_measure,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// UtilityExpense is a utility charge for a contract over a period,
// billed onto the contract's month invoice as an extra line.
type UtilityExpense struct {
	ID          uuid.UUID `json:"id"`
	ContractID  uuid.UUID `json:"contract_id"`
	TypeID      uuid.UUID `json:"type_id"`
	Name        string    `json:"name"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	// Metering; units derive from the readings for METER pricing.
	ReadingStart float64 `json:"reading_start,omitempty"`
	ReadingEnd   float64 `json:"reading_end,omitempty"`

	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Notes       string `json:"notes,omitempty"`

	InvoiceID *uuid.UUID          `json:"invoice_id,omitempty"`
	State     UtilityExpenseState `json:"state"`
	CreatedAt time.Time           `json:"created_at"`
}

// Units consumed for metered pricing, never negative.
func (e *UtilityExpense) Units() float64 {
	d := e.ReadingEnd - e.ReadingStart
	if d < 0 {
		return 0
	}
	return d
}
