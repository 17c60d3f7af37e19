package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/repositories"
	"github.com/poofware/rental-service/internal/utils"
)

/* ───────────── public interface ───────────── */

type BuildingService interface {
	// Create persists the building and optionally generates a grid of
	// units: unitsPerFloor units on each of floors floors, numbered
	// "<floor><seq>" (floor 2, third unit -> "203").
	Create(ctx context.Context, b *models.Building, floors, unitsPerFloor int) (*models.Building, error)

	GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error)
	ListAll(ctx context.Context) ([]*models.Building, error)
	Update(ctx context.Context, b *models.Building) (*models.Building, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type buildingService struct {
	buildings repositories.BuildingRepository
	units     repositories.UnitRepository
}

func NewBuildingService(
	buildings repositories.BuildingRepository,
	units repositories.UnitRepository,
) BuildingService {
	return &buildingService{buildings: buildings, units: units}
}

func (s *buildingService) Create(ctx context.Context, b *models.Building, floors, unitsPerFloor int) (*models.Building, error) {
	if b.Name == "" {
		return nil, utils.NewValidationError("Building name is required", nil)
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	if err := s.buildings.Create(ctx, b); err != nil {
		return nil, err
	}

	if floors > 0 && unitsPerFloor > 0 {
		units := make([]models.Unit, 0, floors*unitsPerFloor)
		for f := 1; f <= floors; f++ {
			for u := 1; u <= unitsPerFloor; u++ {
				number := fmt.Sprintf("%d%02d", f, u)
				units = append(units, models.Unit{
					ID:               uuid.New(),
					BuildingID:       b.ID,
					Name:             fmt.Sprintf("%s %s", b.Name, number),
					Floor:            f,
					UnitNumber:       number,
					EffectiveOwnerID: b.OwnerID,
				})
			}
		}
		if err := s.units.CreateMany(ctx, units); err != nil {
			return nil, err
		}
		utils.Logger.Infof("Building %s created with %d generated units", b.ID, len(units))
	}

	return s.buildings.GetByID(ctx, b.ID)
}

func (s *buildingService) GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	b, err := s.buildings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, utils.NewNotFoundError("Building not found")
	}
	return b, nil
}

func (s *buildingService) ListAll(ctx context.Context) ([]*models.Building, error) {
	return s.buildings.ListAll(ctx)
}

func (s *buildingService) Update(ctx context.Context, b *models.Building) (*models.Building, error) {
	prev, err := s.GetByID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	ownerChanged := !uuidPtrEqual(prev.OwnerID, b.OwnerID)

	if err := s.buildings.Update(ctx, b); err != nil {
		return nil, err
	}

	// A building-owner change cascades to units without an owner of
	// their own.
	if ownerChanged {
		if err := s.recomputeEffectiveOwners(ctx, b.ID, b.OwnerID); err != nil {
			utils.Logger.Warnf("Failed to recompute unit owners for building %s: %v", b.ID, err)
		}
	}

	return s.buildings.GetByID(ctx, b.ID)
}

func (s *buildingService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.buildings.SoftDelete(ctx, id)
}

/* ---------- internals ---------- */

func (s *buildingService) recomputeEffectiveOwners(ctx context.Context, bldgID uuid.UUID, bldgOwner *uuid.UUID) error {
	units, err := s.units.ListByBuildingID(ctx, bldgID)
	if err != nil {
		return err
	}
	for _, u := range units {
		if u.OwnerID != nil {
			continue
		}
		if err := s.units.SetEffectiveOwner(ctx, u.ID, bldgOwner); err != nil {
			return err
		}
	}
	return nil
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
