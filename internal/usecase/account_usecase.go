package usecase

import (
	"context"

	"rescue/internal/domain/entity"
	"rescue/internal/domain/repository"

	"github.com/google/uuid"
)

// AccountUsecase is the admin moderation surface.
type AccountUsecase interface {
	ListUsers(ctx context.Context, filter repository.AccountFilter) ([]*entity.Account, error)
	DeleteUser(ctx context.Context, actor Actor, id uuid.UUID) error
	VerifyUser(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Account, error)
	BlockUser(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Account, error)
}
