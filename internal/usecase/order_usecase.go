package usecase

import (
	"context"

	"rescue/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderList is a filtered order listing plus per-status counts over the unfiltered set.
type OrderList struct {
	Orders []*entity.Order
	Counts entity.OrderStatusCounts
}

// OrderUsecase covers checkout and the order lifecycle.
type OrderUsecase interface {
	// Checkout turns the buyer's cart into one order per seller.
	Checkout(ctx context.Context, buyerID uuid.UUID, method entity.PaymentMethod) ([]*entity.Order, error)
	GetOrder(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Order, error)
	ListOrders(ctx context.Context, actor Actor, status entity.OrderStatus) (*OrderList, error)
	UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, next entity.OrderStatus) (*entity.Order, error)

	// PickupQR renders the pickup QR code for the buyer of a pending order.
	PickupQR(ctx context.Context, actor Actor, id uuid.UUID) ([]byte, error)

	// CompletePickup completes the order encoded in scanned QR data on behalf of its seller.
	CompletePickup(ctx context.Context, actor Actor, qrData string) (*entity.Order, error)
}
