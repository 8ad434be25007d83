package repository

import (
	"context"

	"rescue/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderFilter narrows an order listing. Zero values mean "any".
type OrderFilter struct {
	BuyerID  *uuid.UUID
	SellerID *uuid.UUID
	Status   entity.OrderStatus
}

// OrderRepository defines the interface for order persistence.
type OrderRepository interface {
	// Create persists an order with its items.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order with its items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// List returns orders with items matching the filter, newest first.
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)

	// UpdateStatus changes the order and payment status.
	UpdateStatus(ctx context.Context, order *entity.Order) error
}
