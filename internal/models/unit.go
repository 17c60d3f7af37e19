package models

import (
	"time"

	"github.com/google/uuid"
)

// Unit is a tenant-addressable space inside a building. EffectiveOwnerID
// is persisted: the unit's own owner when set, else the building's owner.
type Unit struct {
	Versioned
	ID               uuid.UUID  `json:"id"`
	BuildingID       uuid.UUID  `json:"building_id"`
	Name             string     `json:"name"`
	Floor            int        `json:"floor"`
	UnitNumber       string     `json:"unit_number"`
	OwnerID          *uuid.UUID `json:"owner_id,omitempty"`
	EffectiveOwnerID *uuid.UUID `json:"effective_owner_id,omitempty"`
	TenantID         *uuid.UUID `json:"tenant_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
}

func (u *Unit) GetID() string { return u.ID.String() }

// DisplayNumber prefers the unit number for human-facing text.
func (u *Unit) DisplayNumber() string {
	if u.UnitNumber != "" {
		return u.UnitNumber
	}
	return u.Name
}
