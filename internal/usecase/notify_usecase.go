package usecase

import (
	"context"
	"fmt"

	"rescue/internal/domain/service"

	"github.com/pkg/errors"
)

// OrderNotifyUsecase delivers order events to seller devices. It runs in the notifier worker.
type OrderNotifyUsecase interface {
	NotifySeller(ctx context.Context, event *service.OrderEvent) error
}

// RetryableError marks a failure the message queue should redeliver.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.Err)
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError wraps err as retryable.
func NewRetryableError(err error) error {
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err, or anything it wraps, is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError

	return errors.As(err, &re)
}
