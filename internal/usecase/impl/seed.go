package impl

import (
	"context"

	"rescue/config"
	"rescue/internal/usecase"

	"go.uber.org/fx"
)

// RegisterAdminSeed creates the configured admin account on startup.
func RegisterAdminSeed(lc fx.Lifecycle, auth usecase.AuthUsecase, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return seedAdmin(ctx, auth, cfg)
		},
	})
}

func seedAdmin(ctx context.Context, auth usecase.AuthUsecase, cfg *config.Config) error {
	if cfg.Seed == nil || cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		return nil
	}
	name := cfg.Seed.AdminName
	if name == "" {
		name = "Admin"
	}

	return auth.EnsureAdmin(ctx, name, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword)
}
