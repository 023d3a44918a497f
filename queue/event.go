package queue

import (
	"time"

	"github.com/google/uuid"
)

// RegistrationConfirmedQueue is the queue name for confirmed registrations.
const RegistrationConfirmedQueue = "registration.confirmed"

// RegistrationConfirmedEvent is published after a user successfully
// registers for an event. Consumers send confirmation mails and the like.
type RegistrationConfirmedEvent struct {
	RegistrationID uuid.UUID `json:"registration_id"`
	UserID         uuid.UUID `json:"user_id"`
	EventID        uuid.UUID `json:"event_id"`
	EventTitle     string    `json:"event_title"`
	RegisteredAt   time.Time `json:"registered_at"`
}
