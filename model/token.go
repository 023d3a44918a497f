package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken holds the data for a refresh token in the database.
// There is at most one row per user: a new login or rotation supersedes
// any previous session.
type RefreshToken struct {
	UserID    uuid.UUID `json:"user_id"`
	Token     string    `json:"-"` // The opaque value is not exposed in JSON responses.
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenPair is what a successful login or rotation returns to the caller.
// RefreshExpiresAt lets the transport layer set cookie lifetimes.
type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}
