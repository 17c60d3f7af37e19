package dtos

import (
	"time"

	"github.com/google/uuid"
)

type CreateUtilityTypeRequest struct {
	Name          string `json:"name" validate:"required,min=1"`
	Pricing       string `json:"pricing" validate:"required,oneof=FIXED METER"`
	UnitRateCents int64  `json:"unit_rate_cents,omitempty" validate:"omitempty,gt=0"`
	UnitOfMeasure string `json:"unit_of_measure,omitempty"`
}

type CreateUtilityExpenseRequest struct {
	ContractID   uuid.UUID `json:"contract_id" validate:"required"`
	TypeID       uuid.UUID `json:"type_id" validate:"required"`
	Name         string    `json:"name,omitempty"`
	PeriodStart  time.Time `json:"period_start" validate:"required"`
	PeriodEnd    time.Time `json:"period_end" validate:"required,gtfield=PeriodStart"`
	ReadingStart float64   `json:"reading_start,omitempty" validate:"gte=0"`
	ReadingEnd   float64   `json:"reading_end,omitempty" validate:"gte=0"`
	AmountCents  int64     `json:"amount_cents,omitempty" validate:"omitempty,gt=0"`
	Notes        string    `json:"notes,omitempty"`
}

type BillUtilityExpenseRequest struct {
	InvoiceID uuid.UUID `json:"invoice_id" validate:"required"`
}
