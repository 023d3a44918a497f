// file: model/request.go

package model

import "time"

// RegisterRequest defines the payload for creating a new user.
// It includes validation tags to ensure data integrity at the entry point.
type RegisterRequest struct {
	FirstName string    `json:"first_name" validate:"required,min=1,max=50"`
	LastName  string    `json:"last_name" validate:"required,min=1,max=50"`
	BirthDate time.Time `json:"birth_date" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	Password  string    `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for user authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UpdateUserRequest defines the payload for profile updates.
type UpdateUserRequest struct {
	FirstName string    `json:"first_name" validate:"required,min=1,max=50"`
	LastName  string    `json:"last_name" validate:"required,min=1,max=50"`
	BirthDate time.Time `json:"birth_date" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
}

// UpdateUserRoleRequest defines the payload for updating a user's role.
type UpdateUserRoleRequest struct {
	Role Role `json:"role" validate:"required,oneof=admin user"`
}

// EventRequest defines the payload for creating or updating an event.
type EventRequest struct {
	Title           string        `json:"title" validate:"required,min=3,max=100"`
	Description     string        `json:"description" validate:"required,max=2000"`
	StartDate       time.Time     `json:"start_date" validate:"required"`
	EndDate         time.Time     `json:"end_date" validate:"required,gtfield=StartDate"`
	Location        string        `json:"location" validate:"required,max=200"`
	Category        EventCategory `json:"category" validate:"required,oneof=conference workshop webinar meetup party sport other"`
	MaxParticipants int           `json:"max_participants" validate:"required,gt=0"`
}
