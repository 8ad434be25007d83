package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "rescue/internal/delivery/context"
	"rescue/internal/domain/constants"
	"rescue/internal/domain/entity"
	"rescue/internal/domain/repository"
	"rescue/internal/domain/service"
	"rescue/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type notifyService struct {
	deviceRepo repository.DeviceRepository
	notifier   service.NotificationService
	logger     *slog.Logger
}

// NotifyServiceParams holds dependencies for NotifyService, injected by Fx.
type NotifyServiceParams struct {
	fx.In

	DeviceRepo repository.DeviceRepository
	Notifier   service.NotificationService
	Logger     *slog.Logger
}

// NewNotifyService creates the seller notification use case.
func NewNotifyService(params NotifyServiceParams) usecase.OrderNotifyUsecase {
	return &notifyService{
		deviceRepo: params.DeviceRepo,
		notifier:   params.Notifier,
		logger:     params.Logger,
	}
}

func (s *notifyService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// NotifySeller pushes the event to every active device of the order's seller.
// Repository failures and batches that all fail are retryable; malformed events are not.
func (s *notifyService) NotifySeller(ctx context.Context, event *service.OrderEvent) error {
	msg, ok := orderPushMessage(event)
	if !ok {
		s.log(ctx).Debug("[Worker] Event needs no notification",
			slog.String("event_type", event.EventType),
			slog.String("status", event.Status),
		)

		return nil
	}

	sellerID, err := uuid.Parse(event.SellerID)
	if err != nil {
		return errors.Wrapf(err, "invalid seller id %q", event.SellerID)
	}

	devices, err := s.deviceRepo.FindActiveDevicesByAccount(ctx, sellerID)
	if err != nil {
		return usecase.NewRetryableError(errors.Wrap(err, "failed to find seller devices"))
	}
	if len(devices) == 0 {
		s.log(ctx).Info("[Worker] Seller has no registered devices",
			slog.String("seller_id", event.SellerID),
			slog.String("order_id", event.OrderID),
		)

		return nil
	}

	deviceByToken := make(map[string]*entity.Device, len(devices))
	tokens := make([]string, 0, len(devices))
	for _, device := range devices {
		if _, dup := deviceByToken[device.FCMToken]; dup {
			continue
		}
		deviceByToken[device.FCMToken] = device
		tokens = append(tokens, device.FCMToken)
	}

	sent, failed, invalid, lastErr := s.sendBatches(ctx, tokens, msg)
	s.removeInvalidDevices(ctx, invalid, deviceByToken)

	s.log(ctx).Info("[Worker] Seller notification completed",
		slog.String("order_id", event.OrderID),
		slog.Int("total_sent", sent),
		slog.Int("total_failed", failed),
		slog.Int("invalid_tokens", len(invalid)),
	)

	if sent == 0 && lastErr != nil {
		return usecase.NewRetryableError(lastErr)
	}

	return nil
}

func orderPushMessage(event *service.OrderEvent) (service.PushMessage, bool) {
	data := map[string]string{
		"order_id":     event.OrderID,
		"order_number": event.OrderNumber,
		"event_type":   event.EventType,
		"status":       event.Status,
	}

	switch {
	case event.EventType == constants.EventOrderPlaced:
		return service.PushMessage{
			Title: "New order",
			Body:  fmt.Sprintf("Order %s: %d item(s), total %.2f", event.OrderNumber, event.ItemCount, event.Total),
			Data:  data,
		}, true
	case event.EventType == constants.EventOrderStatusChanged && event.Status == string(entity.OrderStatusCancelled):
		return service.PushMessage{
			Title: "Order cancelled",
			Body:  fmt.Sprintf("Order %s was cancelled", event.OrderNumber),
			Data:  data,
		}, true
	default:
		return service.PushMessage{}, false
	}
}

func (s *notifyService) sendBatches(ctx context.Context, tokens []string, msg service.PushMessage) (sent, failed int, invalid []string, lastErr error) {
	for start := 0; start < len(tokens); start += service.MaxBatchSize {
		batch := tokens[start:min(start+service.MaxBatchSize, len(tokens))]

		result, err := s.notifier.SendToDevices(ctx, batch, msg)
		if err != nil {
			s.log(ctx).Error("[Worker] Failed to send batch",
				slog.Int("batch_start", start),
				slog.Int("batch_size", len(batch)),
				slog.Any("error", err),
			)
			failed += len(batch)
			lastErr = err

			continue
		}

		sent += result.SuccessCount
		failed += result.FailureCount
		invalid = append(invalid, result.InvalidTokens...)
	}

	return sent, failed, invalid, lastErr
}

func (s *notifyService) removeInvalidDevices(ctx context.Context, invalid []string, deviceByToken map[string]*entity.Device) {
	for _, token := range invalid {
		device, ok := deviceByToken[token]
		if !ok {
			continue
		}
		if err := s.deviceRepo.DeleteDevice(ctx, device.ID); err != nil {
			s.log(ctx).Warn("[Worker] Failed to delete invalid device",
				slog.String("device_id", device.ID.String()),
				slog.Any("error", err),
			)
		}
	}
}
