package notification

import (
	"context"
	"log/slog"

	"rescue/config"
	"rescue/internal/domain/service"

	"go.uber.org/fx"
)

// Params holds dependencies for the notification service, injected by Fx
type Params struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New returns the FCM-backed service when Firebase credentials are configured, a logging stand-in otherwise.
func New(params Params) (service.NotificationService, error) {
	cfg := params.Config.Firebase
	if cfg == nil || cfg.CredentialsPath == "" {
		params.Logger.Info("Firebase not configured, push notifications are logged only")

		return NewLogNotifier(params.Logger), nil
	}

	return NewFirebaseService(params.Ctx, cfg.ProjectID, cfg.CredentialsPath)
}
