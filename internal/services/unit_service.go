package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/repositories"
	"github.com/poofware/rental-service/internal/utils"
)

/* ───────────── public interface ───────────── */

type UnitService interface {
	Create(ctx context.Context, u *models.Unit) (*models.Unit, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error)
	ListByBuildingID(ctx context.Context, bldgID uuid.UUID) ([]*models.Unit, error)

	// SetOwner assigns or clears the unit's own owner and re-resolves
	// the effective owner (unit owner wins, else building owner).
	SetOwner(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) (*models.Unit, error)

	Delete(ctx context.Context, id uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type unitService struct {
	units     repositories.UnitRepository
	buildings repositories.BuildingRepository
}

func NewUnitService(
	units repositories.UnitRepository,
	buildings repositories.BuildingRepository,
) UnitService {
	return &unitService{units: units, buildings: buildings}
}

func (s *unitService) Create(ctx context.Context, u *models.Unit) (*models.Unit, error) {
	bldg, err := s.buildings.GetByID(ctx, u.BuildingID)
	if err != nil {
		return nil, err
	}
	if bldg == nil {
		return nil, utils.NewNotFoundError("Building not found")
	}

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.EffectiveOwnerID = resolveEffectiveOwner(u.OwnerID, bldg.OwnerID)

	if err := s.units.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.units.GetByID(ctx, u.ID)
}

func (s *unitService) GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	u, err := s.units.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, utils.NewNotFoundError("Unit not found")
	}
	return u, nil
}

func (s *unitService) ListByBuildingID(ctx context.Context, bldgID uuid.UUID) ([]*models.Unit, error) {
	return s.units.ListByBuildingID(ctx, bldgID)
}

func (s *unitService) SetOwner(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) (*models.Unit, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	bldg, err := s.buildings.GetByID(ctx, u.BuildingID)
	if err != nil {
		return nil, err
	}

	var bldgOwner *uuid.UUID
	if bldg != nil {
		bldgOwner = bldg.OwnerID
	}
	effective := resolveEffectiveOwner(ownerID, bldgOwner)

	err = s.units.UpdateWithRetry(ctx, id, func(m *models.Unit) error {
		m.OwnerID = ownerID
		m.EffectiveOwnerID = effective
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.units.GetByID(ctx, id)
}

func (s *unitService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.units.Delete(ctx, id)
}

/* ---------- internals ---------- */

func resolveEffectiveOwner(unitOwner, buildingOwner *uuid.UUID) *uuid.UUID {
	if unitOwner != nil {
		return unitOwner
	}
	return buildingOwner
}
