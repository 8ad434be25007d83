package usecase

import (
	"context"

	"rescue/internal/domain/entity"

	"github.com/google/uuid"
)

// DeviceInfo represents device information for registration
type DeviceInfo struct {
	FCMToken string
	DeviceID string
	Platform entity.Platform
}

// DeviceUsecase defines the interface for seller device management
type DeviceUsecase interface {
	// RegisterDevice registers a new device or refreshes the token of an existing one
	RegisterDevice(ctx context.Context, accountID uuid.UUID, deviceInfo *DeviceInfo) (*entity.Device, error)

	// UpdateFCMToken updates the FCM token for a device the account owns
	UpdateFCMToken(ctx context.Context, accountID, deviceID uuid.UUID, fcmToken string) error

	// GetDevices retrieves all active devices for an account
	GetDevices(ctx context.Context, accountID uuid.UUID) ([]*entity.Device, error)

	// DeactivateDevice removes a device the account owns
	DeactivateDevice(ctx context.Context, accountID, deviceID uuid.UUID) error
}
