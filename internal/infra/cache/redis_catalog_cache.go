// Package cache caches the public marketplace listing.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"rescue/internal/domain/entity"
	"rescue/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	marketplaceKey      = "catalog:marketplace"
	marketplaceReadyKey = "catalog:marketplace:ready"
	defaultTTL          = 5 * time.Minute
)

// redisCatalogCache stores the listing as a sorted set scored by creation time,
// so reads come back newest first. A separate marker key distinguishes an empty
// listing from a cache miss.
type redisCatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCatalogCache wraps an existing client. A non-positive ttl uses the default.
func NewRedisCatalogCache(client *redis.Client, ttl time.Duration) service.CatalogCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &redisCatalogCache{client: client, ttl: ttl}
}

type cachedProduct struct {
	ID            uuid.UUID `json:"id"`
	SellerID      uuid.UUID `json:"seller_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	OriginalPrice float64   `json:"original_price"`
	RescuePrice   float64   `json:"rescue_price"`
	Quantity      int       `json:"quantity"`
	ExpiryDate    time.Time `json:"expiry_date"`
	Status        string    `json:"status"`
	Image         string    `json:"image"`
	StoreName     string    `json:"store_name"`
	Location      string    `json:"location"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toCached(p *entity.Product) cachedProduct {
	return cachedProduct{
		ID:            p.ID,
		SellerID:      p.SellerID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		OriginalPrice: p.OriginalPrice,
		RescuePrice:   p.RescuePrice,
		Quantity:      p.Quantity,
		ExpiryDate:    p.ExpiryDate,
		Status:        string(p.Status),
		Image:         p.Image,
		StoreName:     p.StoreName,
		Location:      p.Location,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (c cachedProduct) toEntity() *entity.Product {
	return &entity.Product{
		ID:            c.ID,
		SellerID:      c.SellerID,
		Name:          c.Name,
		Description:   c.Description,
		Category:      c.Category,
		OriginalPrice: c.OriginalPrice,
		RescuePrice:   c.RescuePrice,
		Quantity:      c.Quantity,
		ExpiryDate:    c.ExpiryDate,
		Status:        entity.ProductStatus(c.Status),
		Image:         c.Image,
		StoreName:     c.StoreName,
		Location:      c.Location,
		Latitude:      c.Latitude,
		Longitude:     c.Longitude,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (r *redisCatalogCache) GetMarketplace(ctx context.Context) ([]*entity.Product, bool, error) {
	ready, err := r.client.Exists(ctx, marketplaceReadyKey).Result()
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to check marketplace cache")
	}
	if ready == 0 {
		return nil, false, nil
	}

	members, err := r.client.ZRevRange(ctx, marketplaceKey, 0, -1).Result()
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to read marketplace cache")
	}

	products := make([]*entity.Product, 0, len(members))
	for _, member := range members {
		var cached cachedProduct
		if err := json.Unmarshal([]byte(member), &cached); err != nil {
			return nil, false, errors.Wrap(err, "failed to decode cached product")
		}
		products = append(products, cached.toEntity())
	}

	return products, true, nil
}

func (r *redisCatalogCache) SetMarketplace(ctx context.Context, products []*entity.Product) error {
	members := make([]redis.Z, 0, len(products))
	for _, p := range products {
		data, err := json.Marshal(toCached(p))
		if err != nil {
			return errors.Wrap(err, "failed to encode product")
		}
		members = append(members, redis.Z{Score: float64(p.CreatedAt.UnixNano()), Member: data})
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, marketplaceKey)
		if len(members) > 0 {
			pipe.ZAdd(ctx, marketplaceKey, members...)
			pipe.Expire(ctx, marketplaceKey, r.ttl)
		}
		pipe.Set(ctx, marketplaceReadyKey, "1", r.ttl)

		return nil
	})

	return errors.Wrap(err, "failed to write marketplace cache")
}

func (r *redisCatalogCache) Invalidate(ctx context.Context) error {
	return errors.Wrap(r.client.Del(ctx, marketplaceReadyKey, marketplaceKey).Err(), "failed to invalidate marketplace cache")
}

type noopCatalogCache struct{}

// NewNoopCatalogCache returns a cache that always misses.
func NewNoopCatalogCache() service.CatalogCache {
	return noopCatalogCache{}
}

func (noopCatalogCache) GetMarketplace(context.Context) ([]*entity.Product, bool, error) {
	return nil, false, nil
}

func (noopCatalogCache) SetMarketplace(context.Context, []*entity.Product) error { return nil }

func (noopCatalogCache) Invalidate(context.Context) error { return nil }
