// Package notification delivers push notifications to seller devices.
package notification

import (
	"context"
	"log/slog"

	"rescue/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

type firebaseService struct {
	client *messaging.Client
}

// NewFirebaseService initialises the FCM client from a service account file.
func NewFirebaseService(ctx context.Context, projectID, credentialsPath string) (service.NotificationService, error) {
	var appCfg *firebase.Config
	if projectID != "" {
		appCfg = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, appCfg, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	return &firebaseService{client: client}, nil
}

// SendToDevice sends a push notification to a single device token
func (s *firebaseService) SendToDevice(ctx context.Context, token string, msg service.PushMessage) error {
	_, err := s.client.Send(ctx, &messaging.Message{
		Token:        token,
		Notification: &messaging.Notification{Title: msg.Title, Body: msg.Body},
		Data:         msg.Data,
	})
	if err != nil {
		return errors.Wrap(err, "failed to send notification")
	}

	return nil
}

// SendToDevices multicasts to at most service.MaxBatchSize tokens and reports tokens FCM rejected as dead.
func (s *firebaseService) SendToDevices(ctx context.Context, tokens []string, msg service.PushMessage) (*service.BatchResult, error) {
	if len(tokens) == 0 {
		return &service.BatchResult{}, nil
	}
	if len(tokens) > service.MaxBatchSize {
		return nil, errors.Errorf("token count exceeds limit: %d (max %d)", len(tokens), service.MaxBatchSize)
	}

	response, err := s.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Tokens:       tokens,
		Notification: &messaging.Notification{Title: msg.Title, Body: msg.Body},
		Data:         msg.Data,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to send multicast notification")
	}

	result := &service.BatchResult{
		SuccessCount:  response.SuccessCount,
		FailureCount:  response.FailureCount,
		InvalidTokens: make([]string, 0),
	}
	for idx, sendResponse := range response.Responses {
		if sendResponse.Error == nil {
			continue
		}
		if messaging.IsInvalidArgument(sendResponse.Error) || messaging.IsUnregistered(sendResponse.Error) {
			result.InvalidTokens = append(result.InvalidTokens, tokens[idx])
		}
	}

	return result, nil
}

// logNotifier stands in for FCM when Firebase is not configured. Every send succeeds.
type logNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a NotificationService that only logs.
func NewLogNotifier(logger *slog.Logger) service.NotificationService {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) SendToDevice(ctx context.Context, token string, msg service.PushMessage) error {
	n.logger.InfoContext(ctx, "[LogNotifier] push", slog.String("title", msg.Title), slog.Int("tokens", 1))

	return nil
}

func (n *logNotifier) SendToDevices(ctx context.Context, tokens []string, msg service.PushMessage) (*service.BatchResult, error) {
	if len(tokens) > service.MaxBatchSize {
		return nil, errors.Errorf("token count exceeds limit: %d (max %d)", len(tokens), service.MaxBatchSize)
	}
	n.logger.InfoContext(ctx, "[LogNotifier] push", slog.String("title", msg.Title), slog.Int("tokens", len(tokens)))

	return &service.BatchResult{SuccessCount: len(tokens), InvalidTokens: []string{}}, nil
}
