package repository

import (
	"context"

	"rescue/internal/domain/entity"

	"github.com/google/uuid"
)

// CartRepository holds per-buyer carts. Carts live in process memory and are never written to the database.
type CartRepository interface {
	// Get returns a copy of the buyer's cart, or an empty cart.
	Get(ctx context.Context, buyerID uuid.UUID) (*entity.Cart, error)

	// Mutate runs fn on the buyer's cart while holding that buyer's lock and stores the result
	// only when fn succeeds. It returns a copy of the stored cart.
	Mutate(ctx context.Context, buyerID uuid.UUID, fn func(cart *entity.Cart) error) (*entity.Cart, error)

	// Clear empties the buyer's cart.
	Clear(ctx context.Context, buyerID uuid.UUID) error

	// RemoveProduct drops the product from every cart and returns how many carts were touched.
	RemoveProduct(ctx context.Context, productID uuid.UUID) (int, error)
}
