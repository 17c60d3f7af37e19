package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/poofware/rental-service/internal/models"
)

type CreateContractRequest struct {
	Name              string     `json:"name,omitempty"`
	TenantID          uuid.UUID  `json:"tenant_id" validate:"required"`
	BuildingID        uuid.UUID  `json:"building_id" validate:"required"`
	UnitID            uuid.UUID  `json:"unit_id" validate:"required"`
	ResponsibleUserID uuid.UUID  `json:"responsible_user_id" validate:"required"`
	AmountCents       int64      `json:"amount_cents" validate:"gt=0"`
	Currency          string     `json:"currency,omitempty" validate:"omitempty,iso4217"`
	Recurrence        string     `json:"recurrence,omitempty" validate:"omitempty,oneof=MONTH YEAR"`
	StartDate         time.Time  `json:"start_date" validate:"required"`
	EndDate           *time.Time `json:"end_date,omitempty" validate:"omitempty,gtfield=StartDate"`
	RentDueDay        int        `json:"rent_due_day" validate:"gte=1,lte=31"`
}

type UpdateContractRequest struct {
	Name        string     `json:"name,omitempty"`
	AmountCents int64      `json:"amount_cents" validate:"gt=0"`
	Recurrence  string     `json:"recurrence,omitempty" validate:"omitempty,oneof=MONTH YEAR"`
	StartDate   time.Time  `json:"start_date" validate:"required"`
	EndDate     *time.Time `json:"end_date,omitempty" validate:"omitempty,gtfield=StartDate"`
	RentDueDay  int        `json:"rent_due_day" validate:"gte=1,lte=31"`
}

// ContractResponse augments the model with the normalized rent figures.
type ContractResponse struct {
	*models.Contract
	MonthlyAmountCents int64 `json:"monthly_amount_cents"`
	YearlyAmountCents  int64 `json:"yearly_amount_cents"`
}

func NewContractResponse(c *models.Contract) ContractResponse {
	return ContractResponse{
		Contract:           c,
		MonthlyAmountCents: c.MonthlyAmountCents(),
		YearlyAmountCents:  c.YearlyAmountCents(),
	}
}
