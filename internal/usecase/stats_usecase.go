package usecase

import (
	"context"

	"rescue/internal/domain/entity"

	"github.com/google/uuid"
)

// StatsUsecase folds repository snapshots into dashboards.
type StatsUsecase interface {
	PlatformStats(ctx context.Context) (*entity.PlatformStats, error)
	SellerStats(ctx context.Context, sellerID uuid.UUID) (*entity.SellerStats, error)
}
