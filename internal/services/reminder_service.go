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

// ReminderService is the notification-only daily pass: instead of
// consuming prepayments it raises a "Pay Rent" task for every contract
// due today whose prepayment balance does not cover the monthly rent.
type ReminderService interface {
	RunDailyPass(ctx context.Context, now time.Time)
	RunForBuilding(ctx context.Context, bldgID uuid.UUID, day time.Time) error
}

/* ───────────── implementation ───────────── */

type reminderService struct {
	buildings   repositories.BuildingRepository
	contracts   repositories.ContractRepository
	prepayments repositories.PrepaymentRepository
	activities  repositories.ActivityRepository
	users       repositories.UserRepository
	notifier    Notifier

	fallbackTZ string
}

func NewReminderService(
	buildings repositories.BuildingRepository,
	contracts repositories.ContractRepository,
	prepayments repositories.PrepaymentRepository,
	activities repositories.ActivityRepository,
	users repositories.UserRepository,
	notifier Notifier,
	fallbackTZ string,
) ReminderService {
	return &reminderService{
		buildings:   buildings,
		contracts:   contracts,
		prepayments: prepayments,
		activities:  activities,
		users:       users,
		notifier:    notifier,
		fallbackTZ:  fallbackTZ,
	}
}

func (s *reminderService) RunDailyPass(ctx context.Context, now time.Time) {
	buildings, err := s.buildings.ListAll(ctx)
	if err != nil {
		utils.Logger.Errorf("Reminder pass: failed to list buildings: %v", err)
		return
	}
	for _, b := range buildings {
		loc := utils.LocationFor(b.TimeZone, b.Latitude, b.Longitude, s.fallbackTZ)
		day := DateOnly(now.In(loc))
		if err := s.RunForBuilding(ctx, b.ID, day); err != nil {
			utils.Logger.Errorf("Reminder pass: building %s failed: %v", b.ID, err)
		}
	}
}

func (s *reminderService) RunForBuilding(ctx context.Context, bldgID uuid.UUID, day time.Time) error {
	ExpireOverdue(ctx, s.contracts, bldgID, day)

	due, err := s.contracts.ListDueForBuilding(ctx, bldgID, day)
	if err != nil {
		return err
	}
	utils.Logger.Infof("Reminder pass: building %s has %d contracts due on %s",
		bldgID, len(due), day.Format("2006-01-02"))

	for _, c := range due {
		if err := s.remind(ctx, c, day); err != nil {
			utils.Logger.Errorf("Reminder pass: contract %s failed: %v", c.ID, err)
			continue
		}
		if err := s.contracts.StampDueActivityDate(ctx, c.ID, day); err != nil {
			utils.Logger.Errorf("Reminder pass: failed to stamp contract %s: %v", c.ID, err)
		}
	}
	return nil
}

/* ---------- internals ---------- */

// remind compares the contract's prepayment balance against the monthly
// rent. A covering balance means the month is settled: the contract is
// stamped and skipped. Otherwise a "Pay Rent" task is raised for the
// shortfall.
func (s *reminderService) remind(ctx context.Context, c *models.Contract, day time.Time) error {
	due := c.MonthlyAmountCents()
	balance, err := s.prepayments.BalanceCents(ctx, c.ID)
	if err != nil {
		return err
	}
	if balance >= due {
		return nil
	}

	deadline := utils.NextBusinessDay(day)
	exists, err := s.activities.ExistsForContractOn(ctx, c.ID, deadline)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	note := fmt.Sprintf("%s: rent for %s is due. Amount owed: %s.",
		c.Name, day.Format("January 2006"), FormatCents(due-balance, c.Currency))
	activity := &models.Activity{
		ID:         uuid.New(),
		UserID:     c.ResponsibleUserID,
		ContractID: c.ID,
		Deadline:   deadline,
		Summary:    constants.ActivityPayRent,
		Note:       note,
	}
	if err := s.activities.Create(ctx, activity); err != nil {
		return err
	}

	if user, err := s.users.GetByID(ctx, c.ResponsibleUserID); err == nil && user != nil {
		s.notifier.Notify(user, constants.ActivityPayRent, note)
	}
	return nil
}
