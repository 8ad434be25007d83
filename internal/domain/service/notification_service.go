package service

import (
	"context"
)

// PushMessage is the content of a push notification.
type PushMessage struct {
	Title string
	Body  string
	Data  map[string]string
}

// BatchResult summarises a multicast send.
type BatchResult struct {
	SuccessCount  int
	FailureCount  int
	InvalidTokens []string // Tokens the provider reported as unregistered or malformed.
}

// NotificationService defines the interface for push notification services
type NotificationService interface {
	// SendToDevices sends the message to up to MaxBatchSize device tokens
	SendToDevices(ctx context.Context, tokens []string, msg PushMessage) (*BatchResult, error)

	// SendToDevice sends the message to a single device token
	SendToDevice(ctx context.Context, token string, msg PushMessage) error
}

// MaxBatchSize is the largest token list accepted by SendToDevices.
const MaxBatchSize = 500
