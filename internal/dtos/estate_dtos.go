package dtos

import (
	"github.com/google/uuid"
)

type CreateBuildingRequest struct {
	Name      string     `json:"name" validate:"required,min=1"`
	Code      string     `json:"code,omitempty"`
	Street    string     `json:"street,omitempty"`
	City      string     `json:"city,omitempty"`
	Region    string     `json:"region,omitempty"`
	Country   string     `json:"country,omitempty"`
	CompanyID uuid.UUID  `json:"company_id" validate:"required"`
	OwnerID   *uuid.UUID `json:"owner_id,omitempty"`
	Latitude  float64    `json:"latitude,omitempty"`
	Longitude float64    `json:"longitude,omitempty"`
	TimeZone  string     `json:"time_zone,omitempty" validate:"omitempty,timezone"`

	// Optional unit grid generated on create.
	Floors        int `json:"floors,omitempty" validate:"omitempty,gt=0"`
	UnitsPerFloor int `json:"units_per_floor,omitempty" validate:"omitempty,gt=0"`
}

type UpdateBuildingRequest struct {
	Name      string     `json:"name" validate:"required,min=1"`
	Code      string     `json:"code,omitempty"`
	Street    string     `json:"street,omitempty"`
	City      string     `json:"city,omitempty"`
	Region    string     `json:"region,omitempty"`
	Country   string     `json:"country,omitempty"`
	OwnerID   *uuid.UUID `json:"owner_id,omitempty"`
	Latitude  float64    `json:"latitude,omitempty"`
	Longitude float64    `json:"longitude,omitempty"`
	TimeZone  string     `json:"time_zone,omitempty" validate:"omitempty,timezone"`
}

type CreateUnitRequest struct {
	BuildingID uuid.UUID  `json:"building_id" validate:"required"`
	Name       string     `json:"name,omitempty"`
	Floor      int        `json:"floor" validate:"gte=0"`
	UnitNumber string     `json:"unit_number" validate:"required,min=1"`
	OwnerID    *uuid.UUID `json:"owner_id,omitempty"`
}

type SetUnitOwnerRequest struct {
	OwnerID *uuid.UUID `json:"owner_id"`
}
