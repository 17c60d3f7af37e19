package models

import (
	"time"

	"github.com/google/uuid"
)

// Partner is a tenant or a property owner. Residence tags (building/unit)
// are informational and copied onto invoices for reporting.
type Partner struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email,omitempty"`
	Phone           string     `json:"phone,omitempty"`
	IsPropertyOwner bool       `json:"is_property_owner"`
	BuildingID      *uuid.UUID `json:"building_id,omitempty"`
	UnitID          *uuid.UUID `json:"unit_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
