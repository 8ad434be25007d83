package impl

import (
	"context"
	"testing"

	"rescue/internal/domain/entity"
	"rescue/internal/domain/repository"
	mockRepo "rescue/internal/mocks/repository"
	"rescue/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// deviceServiceFixtures holds all test dependencies for device service tests.
type deviceServiceFixtures struct {
	service    usecase.DeviceUsecase
	deviceRepo *mockRepo.MockDeviceRepository
}

func createTestDeviceService(t *testing.T) deviceServiceFixtures {
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	service := NewDeviceService(DeviceServiceParams{
		DeviceRepo: deviceRepo,
		Logger:     newDiscardLogger(),
	})

	return deviceServiceFixtures{
		service:    service,
		deviceRepo: deviceRepo,
	}
}

func TestDeviceService_RegisterDevice_NewDevice(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	sellerID := uuid.New()
	deviceInfo := &usecase.DeviceInfo{
		FCMToken: "test-fcm-token",
		DeviceID: "device-123",
		Platform: entity.PlatformIOS,
	}

	fx.deviceRepo.EXPECT().
		FindDevicesByAccount(ctx, sellerID).
		Return([]*entity.Device{}, nil)

	fx.deviceRepo.EXPECT().
		CreateDevice(ctx, mock.AnythingOfType("*entity.Device")).
		Return(nil)

	device, err := fx.service.RegisterDevice(ctx, sellerID, deviceInfo)
	require.NoError(t, err)
	assert.Equal(t, sellerID, device.AccountID)
	assert.Equal(t, deviceInfo.FCMToken, device.FCMToken)
	assert.Equal(t, deviceInfo.DeviceID, device.DeviceID)
	assert.Equal(t, deviceInfo.Platform, device.Platform)
	assert.True(t, device.IsActive)
}

func TestDeviceService_RegisterDevice_RefreshesExistingToken(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	sellerID := uuid.New()
	deviceID := uuid.New()
	existing := &entity.Device{
		ID:        deviceID,
		AccountID: sellerID,
		FCMToken:  "old-token",
		DeviceID:  "device-123",
		Platform:  entity.PlatformAndroid,
		IsActive:  true,
	}
	refreshed := &entity.Device{
		ID:        deviceID,
		AccountID: sellerID,
		FCMToken:  "new-fcm-token",
		DeviceID:  "device-123",
		Platform:  entity.PlatformAndroid,
		IsActive:  true,
	}

	fx.deviceRepo.EXPECT().
		FindDevicesByAccount(ctx, sellerID).
		Return([]*entity.Device{existing}, nil)
	fx.deviceRepo.EXPECT().
		UpdateFCMToken(ctx, deviceID, "new-fcm-token").
		Return(nil)
	fx.deviceRepo.EXPECT().
		FindDeviceByID(ctx, deviceID).
		Return(refreshed, nil)

	device, err := fx.service.RegisterDevice(ctx, sellerID, &usecase.DeviceInfo{
		FCMToken: "new-fcm-token",
		DeviceID: "device-123",
		Platform: entity.PlatformAndroid,
	})
	require.NoError(t, err)
	assert.Equal(t, "new-fcm-token", device.FCMToken)
}

func TestDeviceService_RegisterDevice_Validation(t *testing.T) {
	fx := createTestDeviceService(t)

	tests := []struct {
		name string
		info *usecase.DeviceInfo
	}{
		{name: "nil info", info: nil},
		{name: "missing token", info: &usecase.DeviceInfo{DeviceID: "d", Platform: entity.PlatformWeb}},
		{name: "missing device id", info: &usecase.DeviceInfo{FCMToken: "t", Platform: entity.PlatformWeb}},
		{name: "unknown platform", info: &usecase.DeviceInfo{FCMToken: "t", DeviceID: "d", Platform: "symbian"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.service.RegisterDevice(context.Background(), uuid.New(), tt.info)
			requireAppError(t, err, "VALIDATION_FAILED")
		})
	}
}

func TestDeviceService_RegisterDevice_FindError(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	sellerID := uuid.New()

	fx.deviceRepo.EXPECT().
		FindDevicesByAccount(ctx, sellerID).
		Return(nil, errors.New("database error"))

	device, err := fx.service.RegisterDevice(ctx, sellerID, &usecase.DeviceInfo{
		FCMToken: "test-fcm-token",
		DeviceID: "device-123",
		Platform: entity.PlatformIOS,
	})
	require.Error(t, err)
	assert.Nil(t, device)
	assert.Contains(t, err.Error(), "failed to find devices by account")
}

func TestDeviceService_UpdateFCMToken(t *testing.T) {
	sellerID := uuid.New()
	deviceID := uuid.New()

	t.Run("success", func(t *testing.T) {
		fx := createTestDeviceService(t)
		ctx := context.Background()

		fx.deviceRepo.EXPECT().
			FindDeviceByID(ctx, deviceID).
			Return(&entity.Device{ID: deviceID, AccountID: sellerID}, nil)
		fx.deviceRepo.EXPECT().
			UpdateFCMToken(ctx, deviceID, "new-token").
			Return(nil)

		require.NoError(t, fx.service.UpdateFCMToken(ctx, sellerID, deviceID, "new-token"))
	})

	t.Run("not found", func(t *testing.T) {
		fx := createTestDeviceService(t)
		ctx := context.Background()

		fx.deviceRepo.EXPECT().
			FindDeviceByID(ctx, deviceID).
			Return(nil, repository.ErrDeviceNotFound)

		err := fx.service.UpdateFCMToken(ctx, sellerID, deviceID, "new-token")
		requireAppError(t, err, "DEVICE_NOT_FOUND")
	})

	t.Run("other account", func(t *testing.T) {
		fx := createTestDeviceService(t)
		ctx := context.Background()

		fx.deviceRepo.EXPECT().
			FindDeviceByID(ctx, deviceID).
			Return(&entity.Device{ID: deviceID, AccountID: uuid.New()}, nil)

		err := fx.service.UpdateFCMToken(ctx, sellerID, deviceID, "new-token")
		requireAppError(t, err, "FORBIDDEN")
	})
}

func TestDeviceService_GetDevices(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	sellerID := uuid.New()
	expected := []*entity.Device{
		{ID: uuid.New(), AccountID: sellerID, IsActive: true},
		{ID: uuid.New(), AccountID: sellerID, IsActive: true},
	}

	fx.deviceRepo.EXPECT().
		FindActiveDevicesByAccount(ctx, sellerID).
		Return(expected, nil)

	devices, err := fx.service.GetDevices(ctx, sellerID)
	require.NoError(t, err)
	assert.Equal(t, expected, devices)
}

func TestDeviceService_DeactivateDevice(t *testing.T) {
	sellerID := uuid.New()
	deviceID := uuid.New()

	t.Run("success", func(t *testing.T) {
		fx := createTestDeviceService(t)
		ctx := context.Background()

		fx.deviceRepo.EXPECT().
			FindDeviceByID(ctx, deviceID).
			Return(&entity.Device{ID: deviceID, AccountID: sellerID, IsActive: true}, nil)
		fx.deviceRepo.EXPECT().
			DeleteDevice(ctx, deviceID).
			Return(nil)

		require.NoError(t, fx.service.DeactivateDevice(ctx, sellerID, deviceID))
	})

	t.Run("other account", func(t *testing.T) {
		fx := createTestDeviceService(t)
		ctx := context.Background()

		fx.deviceRepo.EXPECT().
			FindDeviceByID(ctx, deviceID).
			Return(&entity.Device{ID: deviceID, AccountID: uuid.New(), IsActive: true}, nil)

		err := fx.service.DeactivateDevice(ctx, sellerID, deviceID)
		requireAppError(t, err, "FORBIDDEN")
	})
}
