package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/poofware/rental-service/internal/constants"
	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/repositories"
	"github.com/poofware/rental-service/internal/utils"
)

/* ───────────── public interface ───────────── */

type ContractService interface {
	Create(ctx context.Context, c *models.Contract) (*models.Contract, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Contract, error)
	ListByBuildingID(ctx context.Context, bldgID uuid.UUID) ([]*models.Contract, error)
	Update(ctx context.Context, c *models.Contract) (*models.Contract, error)

	// Lifecycle transitions. Activation claims the unit for the tenant;
	// cancel/expire release it.
	Activate(ctx context.Context, id uuid.UUID) (*models.Contract, error)
	Cancel(ctx context.Context, id uuid.UUID) (*models.Contract, error)
	Expire(ctx context.Context, id uuid.UUID) (*models.Contract, error)

	Delete(ctx context.Context, id uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type contractService struct {
	contracts repositories.ContractRepository
	units     repositories.UnitRepository
	buildings repositories.BuildingRepository
	partners  repositories.PartnerRepository
}

func NewContractService(
	contracts repositories.ContractRepository,
	units repositories.UnitRepository,
	buildings repositories.BuildingRepository,
	partners repositories.PartnerRepository,
) ContractService {
	return &contractService{
		contracts: contracts,
		units:     units,
		buildings: buildings,
		partners:  partners,
	}
}

/* ---------- create / read / update ---------- */

func (s *contractService) Create(ctx context.Context, c *models.Contract) (*models.Contract, error) {
	if c.TenantID == uuid.Nil {
		return nil, utils.NewUserError("Contract needs a tenant", utils.ErrNoTenant)
	}
	if c.AmountCents <= 0 {
		return nil, utils.NewValidationError("Rent amount must be positive", utils.ErrAmountNotPositive)
	}
	if c.RentDueDay < constants.MinRentDueDay || c.RentDueDay > constants.MaxRentDueDay {
		return nil, utils.NewValidationError(
			fmt.Sprintf("Rent due day must be between %d and %d", constants.MinRentDueDay, constants.MaxRentDueDay),
			utils.ErrRentDueDayOutOfRange)
	}

	unit, err := s.units.GetByID(ctx, c.UnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, utils.NewNotFoundError("Unit not found")
	}
	if unit.BuildingID != c.BuildingID {
		return nil, utils.NewValidationError("Unit does not belong to the contract's building", utils.ErrUnitNotInBuilding)
	}

	bldg, err := s.buildings.GetByID(ctx, c.BuildingID)
	if err != nil {
		return nil, err
	}
	if bldg == nil {
		return nil, utils.NewNotFoundError("Building not found")
	}

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.State == "" {
		c.State = models.ContractStateDraft
	}
	if c.Recurrence == "" {
		c.Recurrence = models.RecurrenceMonth
	}
	if c.Currency == "" {
		c.Currency = constants.DefaultCurrency
	}
	if c.CompanyID == uuid.Nil {
		c.CompanyID = bldg.CompanyID
	}
	if c.OwnerID == nil {
		c.OwnerID = unit.EffectiveOwnerID
	}
	if c.Name == "" {
		c.Name = s.deriveName(ctx, c, bldg, unit)
	}

	if err := s.contracts.Create(ctx, c); err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, utils.NewConflictError("Unit already has a contract in this state", utils.ErrDuplicateContractState)
		}
		return nil, err
	}
	return s.contracts.GetByID(ctx, c.ID)
}

func (s *contractService) GetByID(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	c, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, utils.NewNotFoundError("Contract not found")
	}
	return c, nil
}

func (s *contractService) ListByBuildingID(ctx context.Context, bldgID uuid.UUID) ([]*models.Contract, error) {
	return s.contracts.ListByBuildingID(ctx, bldgID)
}

func (s *contractService) Update(ctx context.Context, c *models.Contract) (*models.Contract, error) {
	if c.AmountCents <= 0 {
		return nil, utils.NewValidationError("Rent amount must be positive", utils.ErrAmountNotPositive)
	}
	if c.RentDueDay < constants.MinRentDueDay || c.RentDueDay > constants.MaxRentDueDay {
		return nil, utils.NewValidationError(
			fmt.Sprintf("Rent due day must be between %d and %d", constants.MinRentDueDay, constants.MaxRentDueDay),
			utils.ErrRentDueDayOutOfRange)
	}
	if err := s.contracts.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.contracts.GetByID(ctx, c.ID)
}

/* ---------- lifecycle ---------- */

func (s *contractService) Activate(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.State == models.ContractStateActive {
		return c, nil
	}

	c.State = models.ContractStateActive
	if err := s.contracts.Update(ctx, c); err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, utils.NewConflictError("Unit already has an active contract", utils.ErrDuplicateContractState)
		}
		return nil, err
	}

	// The unit records its current tenant; the tenant records where they
	// live. Both are display/reporting conveniences, the contract stays
	// the source of truth.
	tid := c.TenantID
	if err := s.units.SetTenant(ctx, c.UnitID, &tid); err != nil {
		utils.Logger.Warnf("Failed to set tenant on unit %s: %v", c.UnitID, err)
	}
	bid, uid := c.BuildingID, c.UnitID
	if err := s.partners.SetResidence(ctx, c.TenantID, &bid, &uid); err != nil {
		utils.Logger.Warnf("Failed to set residence on partner %s: %v", c.TenantID, err)
	}

	return s.contracts.GetByID(ctx, id)
}

func (s *contractService) Cancel(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	return s.release(ctx, id, models.ContractStateCancelled)
}

func (s *contractService) Expire(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	return s.release(ctx, id, models.ContractStateExpired)
}

func (s *contractService) release(ctx context.Context, id uuid.UUID, to models.ContractStateType) (*models.Contract, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	wasActive := c.State == models.ContractStateActive

	c.State = to
	if err := s.contracts.Update(ctx, c); err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, utils.NewConflictError("Unit already has a contract in this state", utils.ErrDuplicateContractState)
		}
		return nil, err
	}

	if wasActive {
		if err := s.units.SetTenant(ctx, c.UnitID, nil); err != nil {
			utils.Logger.Warnf("Failed to clear tenant on unit %s: %v", c.UnitID, err)
		}
		if err := s.partners.SetResidence(ctx, c.TenantID, nil, nil); err != nil {
			utils.Logger.Warnf("Failed to clear residence on partner %s: %v", c.TenantID, err)
		}
	}

	return s.contracts.GetByID(ctx, id)
}

func (s *contractService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.contracts.Delete(ctx, id)
}

/* ---------- internals ---------- */

func (s *contractService) deriveName(ctx context.Context, c *models.Contract, bldg *models.Building, unit *models.Unit) string {
	tenantName := "Tenant"
	if tenant, err := s.partners.GetByID(ctx, c.TenantID); err == nil && tenant != nil {
		tenantName = tenant.Name
	}
	return fmt.Sprintf("%s / %s - %s", tenantName, bldg.Name, unit.DisplayNumber())
}

// ExpireOverdue flips ACTIVE contracts whose end date has passed. Run by
// the daily pass driver before billing so ended contracts never invoice.
func ExpireOverdue(ctx context.Context, contracts repositories.ContractRepository, bldgID uuid.UUID, today time.Time) {
	list, err := contracts.ListByBuildingID(ctx, bldgID)
	if err != nil {
		utils.Logger.Errorf("Failed to list contracts for building %s: %v", bldgID, err)
		return
	}
	for _, c := range list {
		if c.State != models.ContractStateActive || c.EndDate == nil || !c.EndDate.Before(today) {
			continue
		}
		err := contracts.UpdateWithRetry(ctx, c.ID, func(m *models.Contract) error {
			m.State = models.ContractStateExpired
			return nil
		})
		if err != nil {
			utils.Logger.Warnf("Failed to expire contract %s: %v", c.ID, err)
		}
	}
}
