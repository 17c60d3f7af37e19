package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/repositories"
)

/* ───────────── public interface ───────────── */

// RevenueService aggregates expected rent per building from its active
// contracts.
type RevenueService interface {
	// ForBuilding returns the building's expected monthly and yearly
	// revenue as of asOf. Both figures are always present; a building
	// with no active contracts reports zeros.
	ForBuilding(ctx context.Context, bldgID uuid.UUID, asOf time.Time) (*models.BuildingRevenue, error)

	// ForAllBuildings returns one aggregate per building, zeros included.
	ForAllBuildings(ctx context.Context, asOf time.Time) ([]*models.BuildingRevenue, error)
}

/* ───────────── implementation ───────────── */

type revenueService struct {
	buildings repositories.BuildingRepository
	contracts repositories.ContractRepository
}

func NewRevenueService(
	buildings repositories.BuildingRepository,
	contracts repositories.ContractRepository,
) RevenueService {
	return &revenueService{buildings: buildings, contracts: contracts}
}

func (s *revenueService) ForBuilding(ctx context.Context, bldgID uuid.UUID, asOf time.Time) (*models.BuildingRevenue, error) {
	list, err := s.contracts.ListByBuildingID(ctx, bldgID)
	if err != nil {
		return nil, err
	}

	rev := &models.BuildingRevenue{BuildingID: bldgID}
	for _, c := range list {
		if !c.ActiveOn(asOf) {
			continue
		}
		rev.MonthlyExpectedCents += c.MonthlyAmountCents()
		rev.YearlyExpectedCents += c.YearlyAmountCents()
	}
	return rev, nil
}

func (s *revenueService) ForAllBuildings(ctx context.Context, asOf time.Time) ([]*models.BuildingRevenue, error) {
	buildings, err := s.buildings.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*models.BuildingRevenue, 0, len(buildings))
	for _, b := range buildings {
		rev, err := s.ForBuilding(ctx, b.ID, asOf)
		if err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, nil
}
