package main

import (
	"context"
	"log/slog"
	"os"

	"rescue/config"
	"rescue/internal/delivery"
	"rescue/internal/delivery/api"
	"rescue/internal/delivery/api/middleware"
	"rescue/internal/delivery/api/router/handler"
	"rescue/internal/domain/constants"
	"rescue/internal/infra/auth"
	"rescue/internal/infra/cache"
	logs "rescue/internal/infra/log"
	"rescue/internal/infra/persistence/memory"
	"rescue/internal/infra/persistence/postgres"
	"rescue/internal/infra/pubsub"
	"rescue/internal/infra/qrcode"
	"rescue/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	fx.New(
		fx.Supply(cfg),
		injectInfra(),
		injectRepo(cfg.Persistence.Driver),
		injectService(),
		injectUsecase(),
		injectMiddleware(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			impl.RegisterAdminSeed,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		logs.New,
		context.Background,
	)
}

// injectRepo wires the configured persistence driver. Carts always live in memory.
func injectRepo(driver string) fx.Option {
	cart := fx.Provide(memory.NewCartRepository)

	switch driver {
	case constants.PersistenceDriverPostgres:
		return fx.Options(
			cart,
			fx.Provide(
				postgres.New,
				postgres.NewAccountRepository,
				postgres.NewProductRepository,
				postgres.NewOrderRepository,
				postgres.NewDeviceRepository,
				postgres.NewTransactionManager,
			),
		)
	case constants.PersistenceDriverMemory:
		return fx.Options(
			cart,
			fx.Provide(
				memory.NewStore,
				memory.NewAccountRepository,
				memory.NewProductRepository,
				memory.NewOrderRepository,
				memory.NewDeviceRepository,
				memory.NewTransactionManager,
			),
		)
	default:
		return fx.Error(errors.Errorf("unknown persistence driver %q", driver))
	}
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			qrcode.NewQRCodeService,
			pubsub.NewEventPublisher,
			cache.New,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewAccountService,
			impl.NewCatalogService,
			impl.NewCartService,
			impl.NewOrderService,
			impl.NewStatsService,
			impl.NewDeviceService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewUserHandler,
			handler.NewProductHandler,
			handler.NewCartHandler,
			handler.NewOrderHandler,
			handler.NewStatsHandler,
			handler.NewDeviceHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
