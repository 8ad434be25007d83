package pubsub

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"rescue/internal/domain/service"

	"github.com/pkg/errors"
)

// PushMessage mirrors the envelope Google Pub/Sub sends to HTTP push endpoints.
// The local publisher produces the same shape so the worker handles both alike.
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// eventAttributes are set on every published message for filtering and tracing.
func eventAttributes(event *service.OrderEvent) map[string]string {
	attributes := map[string]string{
		"event_type": event.EventType,
		"order_id":   event.OrderID,
		"seller_id":  event.SellerID,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}

// NewPushMessage wraps an order event in a push envelope.
func NewPushMessage(event *service.OrderEvent, subscription string, publishedAt time.Time) (*PushMessage, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	msg := &PushMessage{Subscription: subscription}
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.Attributes = eventAttributes(event)
	msg.Message.MessageID = event.EventType + ":" + event.OrderID
	msg.Message.PublishTime = publishedAt.UTC().Format(time.RFC3339)

	return msg, nil
}

// DecodeOrderEvent extracts the order event carried by a push envelope.
func (m *PushMessage) DecodeOrderEvent() (*service.OrderEvent, error) {
	raw, err := base64.StdEncoding.DecodeString(m.Message.Data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode message data")
	}

	var event service.OrderEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal order event")
	}
	if event.RequestID == "" {
		event.RequestID = m.Message.Attributes["request_id"]
	}

	return &event, nil
}
