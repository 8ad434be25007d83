package usecase

import (
	"context"
	"time"

	"rescue/internal/domain/entity"

	"github.com/google/uuid"
)

// AddProductInput defines a new listing. Status defaults to active.
type AddProductInput struct {
	Name          string
	Description   string
	Category      string
	OriginalPrice float64
	RescuePrice   float64
	Quantity      int
	ExpiryDate    time.Time
	Status        entity.ProductStatus
	Image         string
	Location      string
	Latitude      *float64
	Longitude     *float64
}

// MarketplaceQuery filters the public listing. Nearby filtering applies when both
// Latitude and Longitude are set; RadiusKm falls back to the configured default.
type MarketplaceQuery struct {
	Category  string
	Search    string
	Latitude  *float64
	Longitude *float64
	RadiusKm  float64
}

// CatalogUsecase manages products.
type CatalogUsecase interface {
	AddProduct(ctx context.Context, actor Actor, input AddProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, actor Actor, id uuid.UUID, patch entity.ProductPatch) (*entity.Product, error)
	RemoveProduct(ctx context.Context, actor Actor, id uuid.UUID) error
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	ListMarketplace(ctx context.Context, query MarketplaceQuery) ([]*entity.Product, error)
	ListSellerProducts(ctx context.Context, sellerID uuid.UUID) ([]*entity.Product, error)
}
