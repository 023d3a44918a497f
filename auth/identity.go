package auth

import (
	"github.com/google/uuid"

	"go-event-api/model"
)

// Identity is the caller's identity for the lifetime of one request,
// derived from a validated access token. Never persisted.
type Identity struct {
	UserID uuid.UUID
	Role   model.Role
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

// CanMutate is the single ownership predicate for every mutating operation
// on owned resources: the caller must be the resource's creator or an admin.
func CanMutate(resourceOwnerID uuid.UUID, caller Identity) bool {
	return caller.IsAdmin() || caller.UserID == resourceOwnerID
}
