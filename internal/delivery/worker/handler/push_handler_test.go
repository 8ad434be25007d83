package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	deliverycontext "rescue/internal/delivery/context"
	"rescue/internal/domain/constants"
	"rescue/internal/domain/service"
	"rescue/internal/infra/pubsub"
	mockusecase "rescue/internal/mocks/usecase"
	"rescue/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func newTestPushHandler(t *testing.T) (*PushHandler, *mockusecase.MockOrderNotifyUsecase) {
	t.Helper()
	notifyUC := mockusecase.NewMockOrderNotifyUsecase(t)

	return &PushHandler{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		notifyUC: notifyUC,
	}, notifyUC
}

func pushRequest(t *testing.T, event *service.OrderEvent) *http.Request {
	t.Helper()
	msg, err := pubsub.NewPushMessage(event, "order-events-push", time.Now())
	require.NoError(t, err)
	body, err := json.Marshal(msg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/push", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	return req
}

func placedEvent() *service.OrderEvent {
	return &service.OrderEvent{
		RequestID:   "req-123",
		EventType:   constants.EventOrderPlaced,
		OrderID:     "8b0c3c1e-0f6a-4a53-9a51-0c2b6f7f1f10",
		OrderNumber: "ORD-20260101-ABC123",
		SellerID:    "2f5e9a1c-7d4b-4f0e-8a36-5d1c9e2b7a44",
		Status:      "pending",
		Total:       20,
		ItemCount:   5,
	}
}

func TestPushHandler_HandlePush(t *testing.T) {
	t.Run("delivers the event with its request id", func(t *testing.T) {
		h, notifyUC := newTestPushHandler(t)
		notifyUC.EXPECT().
			NotifySeller(mock.Anything, mock.MatchedBy(func(e *service.OrderEvent) bool {
				return e.OrderID == placedEvent().OrderID && e.ItemCount == 5
			})).
			RunAndReturn(func(ctx context.Context, _ *service.OrderEvent) error {
				assert.Equal(t, "req-123", deliverycontext.GetRequestIDFromContext(ctx))

				return nil
			}).
			Once()

		rec := httptest.NewRecorder()
		c := echo.New().NewContext(pushRequest(t, placedEvent()), rec)

		require.NoError(t, h.HandlePush(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("retryable failure asks for redelivery", func(t *testing.T) {
		h, notifyUC := newTestPushHandler(t)
		notifyUC.EXPECT().NotifySeller(mock.Anything, mock.Anything).
			Return(usecase.NewRetryableError(errors.New("device lookup failed"))).Once()

		rec := httptest.NewRecorder()
		c := echo.New().NewContext(pushRequest(t, placedEvent()), rec)

		require.NoError(t, h.HandlePush(c))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("permanent failure is acknowledged", func(t *testing.T) {
		h, notifyUC := newTestPushHandler(t)
		notifyUC.EXPECT().NotifySeller(mock.Anything, mock.Anything).
			Return(errors.New("invalid seller id")).Once()

		rec := httptest.NewRecorder()
		c := echo.New().NewContext(pushRequest(t, placedEvent()), rec)

		require.NoError(t, h.HandlePush(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("undecodable data is rejected", func(t *testing.T) {
		h, _ := newTestPushHandler(t)
		body := `{"message":{"data":"not-base64!!","messageId":"1"},"subscription":"s"}`
		req := httptest.NewRequest(http.MethodPost, "/push", bytes.NewBufferString(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		require.NoError(t, h.HandlePush(echo.New().NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPushHandler_VerifyPushAuth(t *testing.T) {
	t.Run("missing token is unauthorized", func(t *testing.T) {
		h, _ := newTestPushHandler(t)
		h.verifyPushAuth = true

		rec := httptest.NewRecorder()
		c := echo.New().NewContext(pushRequest(t, placedEvent()), rec)

		require.NoError(t, h.HandlePush(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid google token passes", func(t *testing.T) {
		h, notifyUC := newTestPushHandler(t)
		h.verifyPushAuth = true
		h.validateToken = func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
			assert.Equal(t, "signed-token", token)
			assert.Equal(t, "http://example.com/push", audience)

			return &idtoken.Payload{Issuer: "https://accounts.google.com", Claims: map[string]any{"email_verified": true}}, nil
		}
		notifyUC.EXPECT().NotifySeller(mock.Anything, mock.Anything).Return(nil).Once()

		req := pushRequest(t, placedEvent())
		req.Header.Set("Authorization", "Bearer signed-token")
		rec := httptest.NewRecorder()

		require.NoError(t, h.HandlePush(echo.New().NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("foreign issuer is unauthorized", func(t *testing.T) {
		h, _ := newTestPushHandler(t)
		h.verifyPushAuth = true
		h.validateToken = func(context.Context, string, string) (*idtoken.Payload, error) {
			return &idtoken.Payload{Issuer: "https://evil.example"}, nil
		}

		req := pushRequest(t, placedEvent())
		req.Header.Set("Authorization", "Bearer signed-token")
		rec := httptest.NewRecorder()

		require.NoError(t, h.HandlePush(echo.New().NewContext(req, rec)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
