package usecase

import (
	"context"

	"rescue/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register an account.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
	Address         string
	Role            entity.Role // Defaults to buyer when empty.
	StoreName       string      // Required for sellers.
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput returns the account together with a fresh token pair.
type AuthOutput struct {
	Account      *entity.Account
	AccessToken  string
	RefreshToken string
}

// AuthUsecase covers registration, login and token refresh.
type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*entity.Account, error)
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthOutput, error)
	Me(ctx context.Context, actor Actor) (*entity.Account, error)

	// EnsureAdmin creates the bootstrap admin account unless an account with that email exists.
	EnsureAdmin(ctx context.Context, name, email, password string) error
}
