// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"rescue/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for account persistence.
var (
	// ErrAccountNotFound is returned when an account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateEmail is returned when an account with the same email already exists.
	ErrDuplicateEmail = errors.New("email already exists")
)

// AccountFilter narrows an account listing. Zero values mean "any".
type AccountFilter struct {
	Role   entity.Role
	Status entity.AccountStatus
}

// AccountRepository defines the interface for account-related database operations.
type AccountRepository interface {
	// Create persists a new account together with its role profile.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves an account with its profile by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves an account with its profile by email (case-insensitive).
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// List returns accounts matching the filter, newest first.
	List(ctx context.Context, filter AccountFilter) ([]*entity.Account, error)

	// Update saves the mutable account fields (name, phone, status, verified) and its profile.
	Update(ctx context.Context, account *entity.Account) error

	// Delete removes the profile row and then the account row. Callers run it inside a transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}
