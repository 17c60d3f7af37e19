package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a dated TODO task addressed to a user: "Pay Rent" and
// "Collect Rent (Uncovered Amount)" reminders land here.
type Activity struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	ContractID uuid.UUID `json:"contract_id"`
	Deadline   time.Time `json:"deadline"`
	Summary    string    `json:"summary"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
