package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "rescue/internal/delivery/context"
	"rescue/internal/domain/entity"
	domainerrors "rescue/internal/domain/errors"
	"rescue/internal/domain/repository"
	"rescue/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type deviceService struct {
	deviceRepo repository.DeviceRepository
	logger     *slog.Logger
	now        func() time.Time
}

// DeviceServiceParams holds dependencies for DeviceService, injected by Fx.
type DeviceServiceParams struct {
	fx.In

	DeviceRepo repository.DeviceRepository
	Logger     *slog.Logger
}

// NewDeviceService creates a new device service instance
func NewDeviceService(params DeviceServiceParams) usecase.DeviceUsecase {
	return &deviceService{
		deviceRepo: params.DeviceRepo,
		logger:     params.Logger,
		now:        time.Now,
	}
}

func (s *deviceService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

func validateDeviceInfo(info *usecase.DeviceInfo) error {
	if info == nil || strings.TrimSpace(info.FCMToken) == "" || strings.TrimSpace(info.DeviceID) == "" {
		return domainerrors.ErrValidationFailed.WithDetails("fcm_token and device_id are required")
	}
	switch info.Platform {
	case entity.PlatformIOS, entity.PlatformAndroid, entity.PlatformWeb:
		return nil
	default:
		return domainerrors.ErrValidationFailed.WithDetails("platform must be ios, android or web")
	}
}

// RegisterDevice registers a new device or refreshes the token of the account's device with the same device ID
func (s *deviceService) RegisterDevice(ctx context.Context, accountID uuid.UUID, deviceInfo *usecase.DeviceInfo) (*entity.Device, error) {
	if err := validateDeviceInfo(deviceInfo); err != nil {
		return nil, err
	}

	devices, err := s.deviceRepo.FindDevicesByAccount(ctx, accountID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find devices by account")
	}

	for _, device := range devices {
		if device.DeviceID != deviceInfo.DeviceID {
			continue
		}
		if err := s.deviceRepo.UpdateFCMToken(ctx, device.ID, deviceInfo.FCMToken); err != nil {
			return nil, errors.Wrap(err, "failed to update FCM token")
		}

		updated, err := s.deviceRepo.FindDeviceByID(ctx, device.ID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to find device by ID")
		}

		return updated, nil
	}

	now := s.now()
	device := &entity.Device{
		ID:        uuid.New(),
		AccountID: accountID,
		FCMToken:  deviceInfo.FCMToken,
		DeviceID:  deviceInfo.DeviceID,
		Platform:  deviceInfo.Platform,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.deviceRepo.CreateDevice(ctx, device); err != nil {
		if errors.Is(err, repository.ErrDuplicateDevice) {
			return nil, domainerrors.ErrConflict.WithDetails("device already registered")
		}

		return nil, errors.Wrap(err, "failed to create device")
	}

	s.log(ctx).Info("Device registered",
		slog.String("account_id", accountID.String()),
		slog.String("platform", string(device.Platform)),
	)

	return device, nil
}

// UpdateFCMToken updates the FCM token for a device the account owns
func (s *deviceService) UpdateFCMToken(ctx context.Context, accountID, deviceID uuid.UUID, fcmToken string) error {
	if strings.TrimSpace(fcmToken) == "" {
		return domainerrors.ErrValidationFailed.WithDetails("fcm_token is required")
	}
	if _, err := s.ownedDevice(ctx, accountID, deviceID); err != nil {
		return err
	}

	if err := s.deviceRepo.UpdateFCMToken(ctx, deviceID, fcmToken); err != nil {
		return errors.Wrap(err, "failed to update FCM token")
	}

	return nil
}

// GetDevices retrieves all active devices for an account
func (s *deviceService) GetDevices(ctx context.Context, accountID uuid.UUID) ([]*entity.Device, error) {
	devices, err := s.deviceRepo.FindActiveDevicesByAccount(ctx, accountID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find active devices by account")
	}

	return devices, nil
}

// DeactivateDevice removes a device the account owns
func (s *deviceService) DeactivateDevice(ctx context.Context, accountID, deviceID uuid.UUID) error {
	if _, err := s.ownedDevice(ctx, accountID, deviceID); err != nil {
		return err
	}

	if err := s.deviceRepo.DeleteDevice(ctx, deviceID); err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return domainerrors.ErrDeviceNotFound
		}

		return errors.Wrap(err, "failed to delete device")
	}

	return nil
}

func (s *deviceService) ownedDevice(ctx context.Context, accountID, deviceID uuid.UUID) (*entity.Device, error) {
	device, err := s.deviceRepo.FindDeviceByID(ctx, deviceID)
	if errors.Is(err, repository.ErrDeviceNotFound) {
		return nil, domainerrors.ErrDeviceNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find device by ID")
	}
	if device.AccountID != accountID {
		return nil, domainerrors.ErrForbidden
	}

	return device, nil
}
