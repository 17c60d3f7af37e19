package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/repositories"
	"github.com/poofware/rental-service/internal/services"
	"github.com/poofware/rental-service/internal/utils"
)

// SeedTestData provisions a small demo estate: one manager, one owner,
// one tenant, a building with a unit grid, an active contract and a
// two-month prepayment. Gated by the seed_db_with_test_data flag and
// idempotent via fixed IDs.
func SeedTestData(
	ctx context.Context,
	users repositories.UserRepository,
	partners repositories.PartnerRepository,
	buildingSvc services.BuildingService,
	unitRepo repositories.UnitRepository,
	contractSvc services.ContractService,
	prepaymentSvc services.PrepaymentService,
) error {
	managerID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	ownerID := uuid.MustParse("00000000-0000-0000-0000-000000000002")
	tenantID := uuid.MustParse("00000000-0000-0000-0000-000000000003")
	buildingID := uuid.MustParse("00000000-0000-0000-0000-000000000010")
	companyID := uuid.MustParse("00000000-0000-0000-0000-000000000099")

	if existing, err := users.GetByID(ctx, managerID); err != nil {
		return err
	} else if existing != nil {
		utils.Logger.Info("Test data already seeded, skipping")
		return nil
	}

	if err := users.Create(ctx, &models.User{
		ID:    managerID,
		Name:  "Morgan Reyes",
		Email: "morgan.reyes@example.com",
		Phone: "+15555550100",
	}); err != nil {
		return err
	}

	if err := partners.Create(ctx, &models.Partner{
		ID:              ownerID,
		Name:            "Harborview Holdings LLC",
		Email:           "owners@harborview.example.com",
		IsPropertyOwner: true,
	}); err != nil {
		return err
	}
	if err := partners.Create(ctx, &models.Partner{
		ID:    tenantID,
		Name:  "Jamie Okafor",
		Email: "jamie.okafor@example.com",
		Phone: "+15555550101",
	}); err != nil {
		return err
	}

	oid := ownerID
	bldg, err := buildingSvc.Create(ctx, &models.Building{
		ID:        buildingID,
		Name:      "Harborview Tower",
		Code:      "HVT",
		Street:    "1 Harbor Way",
		City:      "Seattle",
		Region:    "WA",
		Country:   "US",
		CompanyID: companyID,
		OwnerID:   &oid,
		Latitude:  47.6062,
		Longitude: -122.3321,
	}, 3, 4)
	if err != nil {
		return err
	}

	units, err := unitRepo.ListByBuildingID(ctx, bldg.ID)
	if err != nil {
		return err
	}
	if len(units) == 0 {
		utils.Logger.Warn("Seed building has no units, skipping contract seed")
		return nil
	}

	start := time.Date(time.Now().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	contract, err := contractSvc.Create(ctx, &models.Contract{
		TenantID:          tenantID,
		BuildingID:        bldg.ID,
		UnitID:            units[0].ID,
		CompanyID:         companyID,
		ResponsibleUserID: managerID,
		AmountCents:       150000,
		Recurrence:        models.RecurrenceMonth,
		StartDate:         start,
		RentDueDay:        1,
	})
	if err != nil {
		return err
	}
	if _, err := contractSvc.Activate(ctx, contract.ID); err != nil {
		return err
	}

	if _, err := prepaymentSvc.Create(ctx, &models.Prepayment{
		ContractID:  contract.ID,
		Date:        start,
		Months:      2,
		AmountCents: 300000,
		Description: "Move-in advance",
	}); err != nil {
		return err
	}

	utils.Logger.Info("Seeded test data successfully")
	return nil
}
