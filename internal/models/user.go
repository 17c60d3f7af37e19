package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a responsible manager. Rent reminders and collection tasks are
// addressed to the user responsible for the contract.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
