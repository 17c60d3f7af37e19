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

// BillingService is the invoicing daily pass: for every contract due
// today it finds or creates the month's rent invoice, consumes the
// contract's prepayment balance against it, and raises a collection
// task for whatever the balance did not cover.
type BillingService interface {
	// RunDailyPass processes every building against its own local "today"
	// derived from now. Contract failures are isolated: logged, skipped,
	// retried on the next run because the date stamp is withheld.
	RunDailyPass(ctx context.Context, now time.Time)

	// RunForBuilding processes one building for an explicit local day.
	// Backs the manual trigger endpoint.
	RunForBuilding(ctx context.Context, bldgID uuid.UUID, day time.Time) error
}

/* ───────────── implementation ───────────── */

type billingService struct {
	buildings    repositories.BuildingRepository
	contracts    repositories.ContractRepository
	units        repositories.UnitRepository
	invoices     repositories.InvoiceRepository
	activities   repositories.ActivityRepository
	users        repositories.UserRepository
	allocation   AllocationService
	notifier     Notifier

	incomeAccount string
	fallbackTZ    string
}

func NewBillingService(
	buildings repositories.BuildingRepository,
	contracts repositories.ContractRepository,
	units repositories.UnitRepository,
	invoices repositories.InvoiceRepository,
	activities repositories.ActivityRepository,
	users repositories.UserRepository,
	allocation AllocationService,
	notifier Notifier,
	incomeAccount, fallbackTZ string,
) BillingService {
	return &billingService{
		buildings:     buildings,
		contracts:     contracts,
		units:         units,
		invoices:      invoices,
		activities:    activities,
		users:         users,
		allocation:    allocation,
		notifier:      notifier,
		incomeAccount: incomeAccount,
		fallbackTZ:    fallbackTZ,
	}
}

func (s *billingService) RunDailyPass(ctx context.Context, now time.Time) {
	buildings, err := s.buildings.ListAll(ctx)
	if err != nil {
		utils.Logger.Errorf("Billing pass: failed to list buildings: %v", err)
		return
	}
	for _, b := range buildings {
		loc := utils.LocationFor(b.TimeZone, b.Latitude, b.Longitude, s.fallbackTZ)
		day := DateOnly(now.In(loc))
		if err := s.RunForBuilding(ctx, b.ID, day); err != nil {
			utils.Logger.Errorf("Billing pass: building %s failed: %v", b.ID, err)
		}
	}
}

func (s *billingService) RunForBuilding(ctx context.Context, bldgID uuid.UUID, day time.Time) error {
	ExpireOverdue(ctx, s.contracts, bldgID, day)

	due, err := s.contracts.ListDueForBuilding(ctx, bldgID, day)
	if err != nil {
		return err
	}
	utils.Logger.Infof("Billing pass: building %s has %d contracts due on %s",
		bldgID, len(due), day.Format("2006-01-02"))

	for _, c := range due {
		if err := s.processContract(ctx, c, day); err != nil {
			utils.Logger.Errorf("Billing pass: contract %s failed: %v", c.ID, err)
			continue
		}
		if err := s.contracts.StampDueActivityDate(ctx, c.ID, day); err != nil {
			utils.Logger.Errorf("Billing pass: failed to stamp contract %s: %v", c.ID, err)
		}
	}
	return nil
}

/* ---------- internals ---------- */

func (s *billingService) processContract(ctx context.Context, c *models.Contract, day time.Time) error {
	if s.incomeAccount == "" {
		return utils.ErrNoIncomeAccount
	}

	inv, err := s.findOrCreateMonthInvoice(ctx, c, day)
	if err != nil {
		return err
	}

	if inv.State == models.InvoiceStateDraft {
		covered := int64(0)
		inv, covered, err = s.allocation.ApplyToInvoice(ctx, c, inv)
		if err != nil {
			return err
		}
		if covered > 0 {
			utils.Logger.Infof("Contract %s: covered %s of invoice %s from prepayments",
				c.ID, FormatCents(covered, c.Currency), inv.ID)
		}
	}

	if uncovered := inv.OutstandingCents(); uncovered > 0 {
		if err := s.raiseCollectionTask(ctx, c, day, uncovered); err != nil {
			utils.Logger.Warnf("Contract %s: failed to raise collection task: %v", c.ID, err)
		}
	}
	return nil
}

// findOrCreateMonthInvoice reuses the month's existing invoice, draft or
// posted, and otherwise creates a fresh draft with the rent line. The
// insert races safely: the period identity is unique, the loser rereads
// the winner's row.
func (s *billingService) findOrCreateMonthInvoice(ctx context.Context, c *models.Contract, day time.Time) (*models.Invoice, error) {
	first, last := MonthBounds(day)

	inv, err := s.invoices.FindMonthInvoice(ctx, c.TenantID, c.BuildingID, c.UnitID, first, last)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		fresh := s.invoiceVals(ctx, c, day, first)
		if err := s.invoices.CreateIfNotExists(ctx, fresh); err != nil {
			return nil, err
		}
		inv, err = s.invoices.FindMonthInvoice(ctx, c.TenantID, c.BuildingID, c.UnitID, first, last)
		if err != nil {
			return nil, err
		}
		if inv == nil {
			return nil, fmt.Errorf("invoice for contract %s vanished after upsert", c.ID)
		}
	}

	if inv.State != models.InvoiceStateDraft {
		return inv, nil
	}

	lines, err := s.invoices.ListLines(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		rent := &models.InvoiceLine{
			ID:             uuid.New(),
			InvoiceID:      inv.ID,
			Description:    fmt.Sprintf("Rent %s", day.Format("January 2006")),
			Quantity:       1,
			PriceUnitCents: c.MonthlyAmountCents(),
			AccountCode:    s.incomeAccount,
			TaxApplied:     true,
		}
		if err := s.invoices.AddLine(ctx, rent); err != nil {
			return nil, err
		}
		if inv, err = s.invoices.RecomputeTotals(ctx, inv.ID); err != nil {
			return nil, err
		}
	}
	return inv, nil
}

func (s *billingService) invoiceVals(ctx context.Context, c *models.Contract, day, first time.Time) *models.Invoice {
	inv := &models.Invoice{
		ID:          uuid.New(),
		MoveType:    models.MoveTypeOutInvoice,
		State:       models.InvoiceStateDraft,
		TenantID:    c.TenantID,
		CompanyID:   c.CompanyID,
		Currency:    c.Currency,
		InvoiceDate: day,
		PeriodMonth: first,
		BuildingID:  c.BuildingID,
		UnitID:      c.UnitID,
		OwnerID:     c.OwnerID,
	}
	if unit, err := s.units.GetByID(ctx, c.UnitID); err == nil && unit != nil {
		inv.Floor = unit.Floor
		inv.UnitNumber = unit.DisplayNumber()
		if inv.OwnerID == nil {
			inv.OwnerID = unit.EffectiveOwnerID
		}
	}
	return inv
}

func (s *billingService) raiseCollectionTask(ctx context.Context, c *models.Contract, day time.Time, uncovered int64) error {
	deadline := utils.NextBusinessDay(day)

	exists, err := s.activities.ExistsForContractOn(ctx, c.ID, deadline)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	note := fmt.Sprintf("Prepayment balance did not cover the rent for %s. Uncovered amount: %s.",
		day.Format("January 2006"), FormatCents(uncovered, c.Currency))
	activity := &models.Activity{
		ID:         uuid.New(),
		UserID:     c.ResponsibleUserID,
		ContractID: c.ID,
		Deadline:   deadline,
		Summary:    constants.ActivityCollectRent,
		Note:       note,
	}
	if err := s.activities.Create(ctx, activity); err != nil {
		return err
	}

	if user, err := s.users.GetByID(ctx, c.ResponsibleUserID); err == nil && user != nil {
		s.notifier.Notify(user, constants.ActivityCollectRent, note)
	}
	return nil
}
