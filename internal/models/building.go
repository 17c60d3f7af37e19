package models

import (
	"time"

	"github.com/google/uuid"
)

type Building struct {
	Versioned
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Code      string     `json:"code,omitempty"`
	Street    string     `json:"street,omitempty"`
	City      string     `json:"city,omitempty"`
	Region    string     `json:"region,omitempty"`
	Country   string     `json:"country,omitempty"`
	CompanyID uuid.UUID  `json:"company_id"`
	OwnerID   *uuid.UUID `json:"owner_id,omitempty"`
	Latitude  float64    `json:"latitude,omitempty"`
	Longitude float64    `json:"longitude,omitempty"`
	TimeZone  string     `json:"time_zone,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func (b *Building) GetID() string { return b.ID.String() }

// BuildingRevenue is the expected-revenue aggregate for one building.
// Both fields are always assigned, zero when no active contracts exist.
type BuildingRevenue struct {
	BuildingID          uuid.UUID `json:"building_id"`
	MonthlyExpectedCents int64    `json:"monthly_expected_cents"`
	YearlyExpectedCents  int64    `json:"yearly_expected_cents"`
}
