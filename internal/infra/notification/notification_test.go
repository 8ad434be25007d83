package notification

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"rescue/config"
	"rescue/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FallsBackToLogNotifier(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc, err := New(Params{Ctx: context.Background(), Config: &config.Config{}, Logger: logger})
	require.NoError(t, err)
	assert.IsType(t, &logNotifier{}, svc)
}

func TestLogNotifier_SendToDevices(t *testing.T) {
	n := NewLogNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))

	result, err := n.SendToDevices(context.Background(), []string{"a", "b"}, service.PushMessage{Title: "New order"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Empty(t, result.InvalidTokens)

	_, err = n.SendToDevices(context.Background(), make([]string, service.MaxBatchSize+1), service.PushMessage{})
	assert.Error(t, err)
}
