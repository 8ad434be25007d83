package impl

import (
	"context"
	"fmt"
	"testing"

	"rescue/internal/domain/constants"
	"rescue/internal/domain/entity"
	"rescue/internal/domain/service"
	mockRepo "rescue/internal/mocks/repository"
	mockService "rescue/internal/mocks/service"
	"rescue/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type notifyFixtures struct {
	service    usecase.OrderNotifyUsecase
	deviceRepo *mockRepo.MockDeviceRepository
	notifier   *mockService.MockNotificationService
}

func createTestNotifyService(t *testing.T) notifyFixtures {
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	notifier := mockService.NewMockNotificationService(t)

	return notifyFixtures{
		service: NewNotifyService(NotifyServiceParams{
			DeviceRepo: deviceRepo,
			Notifier:   notifier,
			Logger:     newDiscardLogger(),
		}),
		deviceRepo: deviceRepo,
		notifier:   notifier,
	}
}

func placedEvent(sellerID uuid.UUID) *service.OrderEvent {
	return &service.OrderEvent{
		EventType:   constants.EventOrderPlaced,
		OrderID:     uuid.NewString(),
		OrderNumber: "ORD-20260101-ABCDEF",
		SellerID:    sellerID.String(),
		Status:      string(entity.OrderStatusPending),
		Total:       12.5,
		ItemCount:   3,
	}
}

func TestNotifyService_SendsToSellerDevicesAndDropsInvalidTokens(t *testing.T) {
	fx := createTestNotifyService(t)
	ctx := context.Background()
	sellerID := uuid.New()
	good := &entity.Device{ID: uuid.New(), AccountID: sellerID, FCMToken: "good", IsActive: true}
	stale := &entity.Device{ID: uuid.New(), AccountID: sellerID, FCMToken: "stale", IsActive: true}

	fx.deviceRepo.EXPECT().
		FindActiveDevicesByAccount(ctx, sellerID).
		Return([]*entity.Device{good, stale}, nil)
	fx.notifier.EXPECT().
		SendToDevices(ctx, []string{"good", "stale"}, mock.MatchedBy(func(msg service.PushMessage) bool {
			return msg.Title == "New order" &&
				msg.Body == "Order ORD-20260101-ABCDEF: 3 item(s), total 12.50" &&
				msg.Data["order_number"] == "ORD-20260101-ABCDEF"
		})).
		Return(&service.BatchResult{SuccessCount: 1, FailureCount: 1, InvalidTokens: []string{"stale"}}, nil)
	fx.deviceRepo.EXPECT().
		DeleteDevice(ctx, stale.ID).
		Return(nil)

	require.NoError(t, fx.service.NotifySeller(ctx, placedEvent(sellerID)))
}

func TestNotifyService_BatchesLargeDeviceLists(t *testing.T) {
	fx := createTestNotifyService(t)
	ctx := context.Background()
	sellerID := uuid.New()

	devices := make([]*entity.Device, service.MaxBatchSize+1)
	for i := range devices {
		devices[i] = &entity.Device{ID: uuid.New(), AccountID: sellerID, FCMToken: fmt.Sprintf("token-%d", i)}
	}

	fx.deviceRepo.EXPECT().FindActiveDevicesByAccount(ctx, sellerID).Return(devices, nil)
	fx.notifier.EXPECT().
		SendToDevices(ctx, mock.MatchedBy(func(tokens []string) bool { return len(tokens) == service.MaxBatchSize }), mock.Anything).
		Return(&service.BatchResult{SuccessCount: service.MaxBatchSize}, nil).Once()
	fx.notifier.EXPECT().
		SendToDevices(ctx, []string{fmt.Sprintf("token-%d", service.MaxBatchSize)}, mock.Anything).
		Return(&service.BatchResult{SuccessCount: 1}, nil).Once()

	require.NoError(t, fx.service.NotifySeller(ctx, placedEvent(sellerID)))
}

func TestNotifyService_Retryability(t *testing.T) {
	ctx := context.Background()
	sellerID := uuid.New()

	t.Run("repository failure is retryable", func(t *testing.T) {
		fx := createTestNotifyService(t)
		fx.deviceRepo.EXPECT().FindActiveDevicesByAccount(ctx, sellerID).Return(nil, errors.New("db down"))

		err := fx.service.NotifySeller(ctx, placedEvent(sellerID))
		require.Error(t, err)
		assert.True(t, usecase.IsRetryable(err))
	})

	t.Run("every batch failing is retryable", func(t *testing.T) {
		fx := createTestNotifyService(t)
		fx.deviceRepo.EXPECT().
			FindActiveDevicesByAccount(ctx, sellerID).
			Return([]*entity.Device{{ID: uuid.New(), FCMToken: "t"}}, nil)
		fx.notifier.EXPECT().SendToDevices(ctx, []string{"t"}, mock.Anything).Return(nil, errors.New("fcm unavailable"))

		err := fx.service.NotifySeller(ctx, placedEvent(sellerID))
		assert.True(t, usecase.IsRetryable(err))
	})

	t.Run("malformed seller id is not retryable", func(t *testing.T) {
		fx := createTestNotifyService(t)
		event := placedEvent(sellerID)
		event.SellerID = "not-a-uuid"

		err := fx.service.NotifySeller(ctx, event)
		require.Error(t, err)
		assert.False(t, usecase.IsRetryable(err))
	})
}

func TestNotifyService_IgnoresUninterestingEvents(t *testing.T) {
	fx := createTestNotifyService(t)
	event := placedEvent(uuid.New())
	event.EventType = constants.EventOrderStatusChanged
	event.Status = string(entity.OrderStatusCompleted)

	require.NoError(t, fx.service.NotifySeller(context.Background(), event))
}

func TestNotifyService_NoDevices(t *testing.T) {
	fx := createTestNotifyService(t)
	ctx := context.Background()
	sellerID := uuid.New()
	event := placedEvent(sellerID)
	event.EventType = constants.EventOrderStatusChanged
	event.Status = string(entity.OrderStatusCancelled)

	fx.deviceRepo.EXPECT().FindActiveDevicesByAccount(ctx, sellerID).Return(nil, nil)

	require.NoError(t, fx.service.NotifySeller(ctx, event))
}
