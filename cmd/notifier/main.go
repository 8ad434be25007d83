package main

import (
	"context"
	"log/slog"
	"os"

	"rescue/config"
	"rescue/internal/delivery"
	"rescue/internal/delivery/worker"
	"rescue/internal/delivery/worker/handler"
	"rescue/internal/domain/constants"
	logs "rescue/internal/infra/log"
	"rescue/internal/infra/notification"
	"rescue/internal/infra/persistence/memory"
	"rescue/internal/infra/persistence/postgres"
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
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
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

// injectRepo wires the device store. The memory driver only sees devices registered in this process.
func injectRepo(driver string) fx.Option {
	switch driver {
	case constants.PersistenceDriverPostgres:
		return fx.Provide(
			postgres.New,
			postgres.NewDeviceRepository,
		)
	case constants.PersistenceDriverMemory:
		return fx.Provide(
			memory.NewStore,
			memory.NewDeviceRepository,
		)
	default:
		return fx.Error(errors.Errorf("unknown persistence driver %q", driver))
	}
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			notification.New,
			impl.NewNotifyService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				worker.NewServer,
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
