package service

import (
	"context"

	"rescue/internal/domain/entity"
)

// CatalogCache caches the public marketplace listing (active, in-stock products).
type CatalogCache interface {
	// GetMarketplace returns the cached listing and whether it was present.
	GetMarketplace(ctx context.Context) ([]*entity.Product, bool, error)

	// SetMarketplace replaces the cached listing.
	SetMarketplace(ctx context.Context, products []*entity.Product) error

	// Invalidate drops the cached listing after any catalog or stock change.
	Invalidate(ctx context.Context) error
}
