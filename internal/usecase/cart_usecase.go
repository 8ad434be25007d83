package usecase

import (
	"context"

	"rescue/internal/domain/entity"

	"github.com/google/uuid"
)

// CartUsecase manages the buyer's server-side cart.
type CartUsecase interface {
	GetCart(ctx context.Context, buyerID uuid.UUID) (*entity.Cart, error)
	AddToCart(ctx context.Context, buyerID, productID uuid.UUID, qty int) (*entity.Cart, error)
	UpdateQuantity(ctx context.Context, buyerID, productID uuid.UUID, qty int) (*entity.Cart, error)
	RemoveFromCart(ctx context.Context, buyerID, productID uuid.UUID) (*entity.Cart, error)
	ClearCart(ctx context.Context, buyerID uuid.UUID) error
}
