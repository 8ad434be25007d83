package pubsub

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rescue/config"
	"rescue/internal/domain/constants"
	"rescue/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEvent() *service.OrderEvent {
	return &service.OrderEvent{
		RequestID:   "req-1",
		EventType:   constants.EventOrderPlaced,
		OrderID:     "0b7c6f3e-8f43-4c4b-9a57-0d7c1e0c0a11",
		OrderNumber: "ORD-20260101-ABCDEF",
		SellerID:    "seller-1",
		Status:      "pending",
		Total:       12.5,
		ItemCount:   3,
		OccurredAt:  time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestPushMessage_RoundTrip(t *testing.T) {
	event := testEvent()

	msg, err := NewPushMessage(event, "sub", time.Now())
	require.NoError(t, err)
	assert.Equal(t, constants.EventOrderPlaced, msg.Message.Attributes["event_type"])
	assert.Equal(t, "req-1", msg.Message.Attributes["request_id"])

	decoded, err := msg.DecodeOrderEvent()
	require.NoError(t, err)
	assert.Equal(t, event, decoded)
}

func TestPushMessage_DecodeRejectsGarbage(t *testing.T) {
	msg := &PushMessage{}
	msg.Message.Data = "!!not-base64!!"

	_, err := msg.DecodeOrderEvent()
	assert.Error(t, err)
}

func TestLocalHTTPPublisher_PostsPushEnvelope(t *testing.T) {
	var received PushMessage
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, discardLogger())
	require.NoError(t, publisher.PublishOrderEvent(context.Background(), testEvent()))

	assert.Equal(t, "req-1", requestID)
	decoded, err := received.DecodeOrderEvent()
	require.NoError(t, err)
	assert.Equal(t, "ORD-20260101-ABCDEF", decoded.OrderNumber)
}

func TestLocalHTTPPublisher_FailsOnWorkerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, discardLogger())
	assert.Error(t, publisher.PublishOrderEvent(context.Background(), testEvent()))
}

func TestNewPublisher(t *testing.T) {
	ctx := context.Background()

	noop, err := newPublisher(ctx, nil, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &noopPublisher{}, noop)
	assert.NoError(t, noop.PublishOrderEvent(ctx, testEvent()))

	local, err := newPublisher(ctx, &config.PubSubConfig{Provider: constants.PubSubProviderLocal, LocalEndpoint: "http://localhost:8081/push"}, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &localHTTPPublisher{}, local)

	_, err = newPublisher(ctx, &config.PubSubConfig{Provider: constants.PubSubProviderLocal}, discardLogger())
	assert.Error(t, err)

	_, err = newPublisher(ctx, &config.PubSubConfig{Provider: constants.PubSubProviderGoogle}, discardLogger())
	assert.Error(t, err)

	_, err = newPublisher(ctx, &config.PubSubConfig{Provider: "kafka"}, discardLogger())
	assert.Error(t, err)
}
