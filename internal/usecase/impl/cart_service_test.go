package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"rescue/internal/domain/entity"
	"rescue/internal/domain/repository"
	"rescue/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCartService(env *memoryEnv) usecase.CartUsecase {
	return NewCartService(CartServiceParams{
		CartRepo:    env.cartRepo,
		ProductRepo: env.productRepo,
		Config:      newTestConfig(),
		Logger:      newDiscardLogger(),
	})
}

func TestCartService_AddToCartClampsToStock(t *testing.T) {
	env := newMemoryEnv()
	svc := createTestCartService(env)
	seller := env.addSeller(t, "Deli")
	buyer := env.addBuyer(t)
	product := env.addProduct(t, seller, "Croissant", 10, 4, 5)
	ctx := context.Background()

	cart, err := svc.AddToCart(ctx, buyer.ID, product.ID, 3)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)

	cart, err = svc.AddToCart(ctx, buyer.ID, product.ID, 4)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 5, cart.Lines[0].Quantity)
	assert.Equal(t, 5, cart.Count())
	assert.InDelta(t, 20.0, cart.Total(), 0.001)

	fresh := env.addProduct(t, seller, "Tart", 6, 3, 2)
	cart, err = svc.AddToCart(ctx, buyer.ID, fresh.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Lines[1].Quantity)
}

func TestCartService_AddToCartRejectsUnavailable(t *testing.T) {
	env := newMemoryEnv()
	svc := createTestCartService(env)
	seller := env.addSeller(t, "Deli")
	buyer := env.addBuyer(t)
	ctx := context.Background()

	soldOut := env.addProduct(t, seller, "Cake", 9, 3, 0)
	_, err := svc.AddToCart(ctx, buyer.ID, soldOut.ID, 1)
	requireAppError(t, err, "PRODUCT_UNAVAILABLE")

	inactive := env.addProduct(t, seller, "Pie", 9, 3, 2)
	inactive.Status = entity.ProductStatusInactive
	require.NoError(t, env.productRepo.Update(ctx, inactive))
	_, err = svc.AddToCart(ctx, buyer.ID, inactive.ID, 1)
	requireAppError(t, err, "PRODUCT_UNAVAILABLE")

	_, err = svc.AddToCart(ctx, buyer.ID, uuid.New(), 1)
	requireAppError(t, err, "PRODUCT_NOT_FOUND")

	_, err = svc.AddToCart(ctx, buyer.ID, inactive.ID, 0)
	requireAppError(t, err, "CART_QUANTITY_INVALID")

	cart, err := svc.GetCart(ctx, buyer.ID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartService_LineLimit(t *testing.T) {
	env := newMemoryEnv()
	svc := createTestCartService(env)
	seller := env.addSeller(t, "Deli")
	buyer := env.addBuyer(t)
	ctx := context.Background()

	var first *entity.Product
	for i := range 3 {
		p := env.addProduct(t, seller, "Item", 5, 2, 10)
		if i == 0 {
			first = p
		}
		_, err := svc.AddToCart(ctx, buyer.ID, p.ID, 1)
		require.NoError(t, err)
	}

	extra := env.addProduct(t, seller, "Extra", 5, 2, 10)
	_, err := svc.AddToCart(ctx, buyer.ID, extra.ID, 1)
	requireAppError(t, err, "CART_LIMIT_EXCEEDED")

	cart, err := svc.AddToCart(ctx, buyer.ID, first.ID, 1)
	require.NoError(t, err)
	assert.Len(t, cart.Lines, 3)
}

func TestCartService_UpdateRemoveClear(t *testing.T) {
	env := newMemoryEnv()
	svc := createTestCartService(env)
	seller := env.addSeller(t, "Deli")
	buyer := env.addBuyer(t)
	product := env.addProduct(t, seller, "Baguette", 4, 1.5, 3)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, buyer.ID, product.ID, 1)
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, buyer.ID, product.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, cart.Lines[0].Quantity, "absolute quantity is not clamped")

	_, err = svc.UpdateQuantity(ctx, buyer.ID, product.ID, 0)
	requireAppError(t, err, "CART_QUANTITY_INVALID")

	_, err = svc.UpdateQuantity(ctx, buyer.ID, uuid.New(), 2)
	requireAppError(t, err, "CART_ITEM_NOT_FOUND")

	cart, err = svc.RemoveFromCart(ctx, buyer.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	_, err = svc.RemoveFromCart(ctx, buyer.ID, product.ID)
	requireAppError(t, err, "CART_ITEM_NOT_FOUND")

	_, err = svc.AddToCart(ctx, buyer.ID, product.ID, 2)
	require.NoError(t, err)
	require.NoError(t, svc.ClearCart(ctx, buyer.ID))

	cart, err = svc.GetCart(ctx, buyer.ID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartService_AddToCartRacingRemovalLeavesNoLine(t *testing.T) {
	env := newMemoryEnv()
	catalog := createTestCatalogService(env, nil)
	seller := env.addSeller(t, "Deli")
	buyer := env.addBuyer(t)
	product := env.addProduct(t, seller, "Focaccia", 6, 2, 3)
	ctx := context.Background()

	// The seller removes the product right after the cart has looked it up.
	removed := make(chan error, 1)
	var once sync.Once
	productRepo := &hookedProductRepository{
		ProductRepository: env.productRepo,
		afterFind: func(uuid.UUID) {
			once.Do(func() {
				go func() {
					removed <- catalog.RemoveProduct(ctx, sellerActor(seller), product.ID)
				}()
				require.Eventually(t, func() bool {
					_, err := env.productRepo.FindByID(ctx, product.ID)

					return errors.Is(err, repository.ErrProductNotFound)
				}, time.Second, time.Millisecond)
			})
		},
	}
	carts := NewCartService(CartServiceParams{
		CartRepo:    env.cartRepo,
		ProductRepo: productRepo,
		Config:      newTestConfig(),
		Logger:      newDiscardLogger(),
	})

	if _, err := carts.AddToCart(ctx, buyer.ID, product.ID, 1); err != nil {
		requireAppError(t, err, "PRODUCT_NOT_FOUND")
	}
	require.NoError(t, <-removed)

	cart, err := env.cartRepo.Get(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}
