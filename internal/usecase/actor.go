// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"rescue/internal/domain/entity"

	"github.com/google/uuid"
)

// Actor is the authenticated caller of a use case.
type Actor struct {
	ID   uuid.UUID
	Role entity.Role
}

// IsAdmin reports whether the actor is an admin.
func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin
}
