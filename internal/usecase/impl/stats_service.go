package impl

import (
	"context"
	"log/slog"
	"time"

	"rescue/config"
	"rescue/internal/domain/entity"
	"rescue/internal/domain/repository"
	"rescue/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultUrgentWindow = 24 * time.Hour

// statsService implements the StatsUsecase interface. Nothing is cached; every call folds fresh snapshots.
type statsService struct {
	accountRepo  repository.AccountRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	urgentWindow time.Duration
	logger       *slog.Logger
	now          func() time.Time
}

// StatsServiceParams holds dependencies for StatsService, injected by Fx.
type StatsServiceParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	ProductRepo repository.ProductRepository
	OrderRepo   repository.OrderRepository
	Config      *config.Config
	Logger      *slog.Logger
}

// NewStatsService is the constructor for statsService.
func NewStatsService(params StatsServiceParams) usecase.StatsUsecase {
	window := defaultUrgentWindow
	if params.Config != nil && params.Config.Catalog != nil && params.Config.Catalog.UrgentWindow > 0 {
		window = params.Config.Catalog.UrgentWindow
	}

	return &statsService{
		accountRepo:  params.AccountRepo,
		productRepo:  params.ProductRepo,
		orderRepo:    params.OrderRepo,
		urgentWindow: window,
		logger:       params.Logger,
		now:          time.Now,
	}
}

func (srv *statsService) PlatformStats(ctx context.Context) (*entity.PlatformStats, error) {
	accounts, err := srv.accountRepo.List(ctx, repository.AccountFilter{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}
	products, err := srv.productRepo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}
	orders, err := srv.orderRepo.List(ctx, repository.OrderFilter{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	stats := entity.ComputePlatformStats(accounts, products, orders)

	return &stats, nil
}

func (srv *statsService) SellerStats(ctx context.Context, sellerID uuid.UUID) (*entity.SellerStats, error) {
	products, err := srv.productRepo.List(ctx, repository.ProductFilter{SellerID: &sellerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list seller products")
	}
	orders, err := srv.orderRepo.List(ctx, repository.OrderFilter{SellerID: &sellerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list seller orders")
	}

	stats := entity.ComputeSellerStats(products, orders, srv.now(), srv.urgentWindow)

	return &stats, nil
}
