package model

import (
	"time"

	"github.com/google/uuid"
)

// Registration links a user to an event they signed up for.
type Registration struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	EventID      uuid.UUID `json:"event_id"`
	RegisteredAt time.Time `json:"registered_at"`
}
