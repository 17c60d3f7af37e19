package models

import (
	"time"

	"github.com/google/uuid"
)

/*──────────────────────────────────────────────────────────────────────────────
  Primary enums
──────────────────────────────────────────────────────────────────────────────*/
type ContractStateType string

const (
	ContractStateDraft     ContractStateType = "DRAFT"
	ContractStateActive    ContractStateType = "ACTIVE"
	ContractStateExpired   ContractStateType = "EXPIRED"
	ContractStateCancelled ContractStateType = "CANCELLED"
)

type RecurrenceType string

const (
	RecurrenceMonth RecurrenceType = "MONTH"
	RecurrenceYear  RecurrenceType = "YEAR"
)

/*──────────────────────────────────────────────────────────────────────────────
  MAIN MODEL – Contract
──────────────────────────────────────────────────────────────────────────────*/

// Contract binds a tenant to a unit for a recurring rent amount over a
// validity window. At most one contract per (unit, state) pair exists,
// enforced by a DB unique constraint.
type Contract struct {
	Versioned

	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	TenantID   uuid.UUID `json:"tenant_id"`
	BuildingID uuid.UUID `json:"building_id"`
	UnitID     uuid.UUID `json:"unit_id"`
	CompanyID  uuid.UUID `json:"company_id"`
	Currency   string    `json:"currency"`

	ResponsibleUserID uuid.UUID  `json:"responsible_user_id"`
	OwnerID           *uuid.UUID `json:"owner_id,omitempty"`

	AmountCents int64          `json:"amount_cents"`
	Recurrence  RecurrenceType `json:"recurrence"`

	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	State      ContractStateType `json:"state"`
	RentDueDay int               `json:"rent_due_day"`

	// Last date a daily pass touched this contract. The per-day
	// idempotence token: a contract is processed at most once per
	// calendar day no matter how often the pass runs.
	LastDueActivityDate *time.Time `json:"last_due_activity_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Contract) GetID() string { return c.ID.String() }

// MonthlyAmountCents normalizes the rent to a per-month figure.
// Yearly rents divide by 12 in integer cents; the sub-cent remainder is
// dropped, matching the currency's natural precision.
func (c *Contract) MonthlyAmountCents() int64 {
	if c.Recurrence == RecurrenceYear {
		return c.AmountCents / 12
	}
	return c.AmountCents
}

// YearlyAmountCents normalizes the rent to a per-year figure.
func (c *Contract) YearlyAmountCents() int64 {
	if c.Recurrence == RecurrenceMonth {
		return c.AmountCents * 12
	}
	return c.AmountCents
}

// InWindow reports whether the validity window contains day. A zero
// start date or nil end date leaves that side open.
func (c *Contract) InWindow(day time.Time) bool {
	if !c.StartDate.IsZero() && c.StartDate.After(day) {
		return false
	}
	if c.EndDate != nil && c.EndDate.Before(day) {
		return false
	}
	return true
}

// ActiveOn reports whether the contract is ACTIVE with day inside its
// validity window.
func (c *Contract) ActiveOn(day time.Time) bool {
	return c.State == ContractStateActive && c.InWindow(day)
}
