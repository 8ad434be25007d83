package repository

import (
	"context"

	"rescue/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductFilter narrows a product listing. Zero values mean "any".
type ProductFilter struct {
	SellerID    *uuid.UUID
	ActiveOnly  bool
	InStockOnly bool
	Category    string
	Search      string // Matched against name and store name.
}

// Matches applies the filter to a single product in memory.
func (f ProductFilter) Matches(p *entity.Product) bool {
	if f.SellerID != nil && p.SellerID != *f.SellerID {
		return false
	}
	if f.ActiveOnly && p.Status != entity.ProductStatusActive {
		return false
	}
	if f.InStockOnly && p.Quantity <= 0 {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}

	return p.MatchesSearch(f.Search)
}

// ProductRepository defines the interface for catalog persistence.
type ProductRepository interface {
	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// FindByID retrieves a product by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// List returns the products matching the filter, newest first.
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)

	// FindByIDForUpdate retrieves a product and locks it until the surrounding transaction ends.
	// Stock writes from other transactions wait for the lock.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// Update overwrites the stored product with the given state. Callers that derive the state
	// from an earlier read must hold the row lock from FindByIDForUpdate, or a concurrent
	// DecrementIfAvailable is lost.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product.
	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementIfAvailable subtracts qty from stock only when at least qty units remain.
	// It returns false without changing anything when stock is insufficient,
	// and ErrProductNotFound when the product does not exist.
	DecrementIfAvailable(ctx context.Context, id uuid.UUID, qty int) (bool, error)

	// IncrementStock adds qty back to stock, e.g. when an order is cancelled.
	IncrementStock(ctx context.Context, id uuid.UUID, qty int) error
}
