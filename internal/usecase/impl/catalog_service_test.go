package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"rescue/internal/domain/constants"
	"rescue/internal/domain/entity"
	"rescue/internal/domain/repository"
	"rescue/internal/domain/service"
	"rescue/internal/infra/cache"
	mockRepo "rescue/internal/mocks/repository"
	mockService "rescue/internal/mocks/service"
	"rescue/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestCatalogService(env *memoryEnv, catalogCache service.CatalogCache) usecase.CatalogUsecase {
	if catalogCache == nil {
		catalogCache = cache.NewNoopCatalogCache()
	}

	return NewCatalogService(CatalogServiceParams{
		TxManager:   env.txManager,
		ProductRepo: env.productRepo,
		AccountRepo: env.accountRepo,
		CartRepo:    env.cartRepo,
		Cache:       catalogCache,
		Config:      newTestConfig(),
		Logger:      newDiscardLogger(),
	})
}

func sellerActor(a *entity.Account) usecase.Actor {
	return usecase.Actor{ID: a.ID, Role: a.Role}
}

func TestCatalogService_AddProduct(t *testing.T) {
	env := newMemoryEnv()
	svc := createTestCatalogService(env, nil)
	seller := env.addSeller(t, "Green Grocer")
	ctx := context.Background()

	product, err := svc.AddProduct(ctx, sellerActor(seller), usecase.AddProductInput{
		Name:          " Apples ",
		Category:      "produce",
		OriginalPrice: 10,
		RescuePrice:   4,
		Quantity:      5,
		ExpiryDate:    time.Now().Add(12 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "Apples", product.Name)
	assert.Equal(t, seller.ID, product.SellerID)
	assert.Equal(t, "Green Grocer", product.StoreName)
	assert.Equal(t, "Green Grocer street 1", product.Location)
	assert.Equal(t, entity.ProductStatusActive, product.Status)

	stored, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, stored.ID)
}

func TestCatalogService_AddProduct_Validation(t *testing.T) {
	env := newMemoryEnv()
	svc := createTestCatalogService(env, nil)
	actor := sellerActor(env.addSeller(t, "Deli"))

	tests := []struct {
		name  string
		input usecase.AddProductInput
		code  string
	}{
		{name: "rescue above original", input: usecase.AddProductInput{Name: "x", OriginalPrice: 4, RescuePrice: 5, Quantity: 1}, code: "INVALID_PRICING"},
		{name: "negative price", input: usecase.AddProductInput{Name: "x", OriginalPrice: 4, RescuePrice: -1, Quantity: 1}, code: "INVALID_PRICING"},
		{name: "negative quantity", input: usecase.AddProductInput{Name: "x", OriginalPrice: 4, RescuePrice: 1, Quantity: -1}, code: "INVALID_QUANTITY"},
		{name: "missing name", input: usecase.AddProductInput{OriginalPrice: 4, RescuePrice: 1, Quantity: 1}, code: "VALIDATION_FAILED"},
		{name: "unknown status", input: usecase.AddProductInput{Name: "x", OriginalPrice: 4, RescuePrice: 1, Status: "sold"}, code: "VALIDATION_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddProduct(context.Background(), actor, tt.input)
			requireAppError(t, err, tt.code)
		})
	}
}

func TestCatalogService_UpdateProduct(t *testing.T) {
	env := newMemoryEnv()
	svc := createTestCatalogService(env, nil)
	seller := env.addSeller(t, "Deli")
	product := env.addProduct(t, seller, "Bagels", 10, 4, 5)
	ctx := context.Background()

	t.Run("merged pricing is revalidated", func(t *testing.T) {
		_, err := svc.UpdateProduct(ctx, sellerActor(seller), product.ID, entity.ProductPatch{RescuePrice: ptr(12.0)})
		requireAppError(t, err, "INVALID_PRICING")
		assert.Equal(t, 5, env.stock(t, product.ID))
	})

	t.Run("repository alone does not enforce pricing", func(t *testing.T) {
		raw, err := env.productRepo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		raw.Apply(entity.ProductPatch{RescuePrice: ptr(12.0)})
		require.NoError(t, env.productRepo.Update(ctx, raw))
		raw.Apply(entity.ProductPatch{RescuePrice: ptr(4.0)})
		require.NoError(t, env.productRepo.Update(ctx, raw))
	})

	t.Run("owner updates", func(t *testing.T) {
		updated, err := svc.UpdateProduct(ctx, sellerActor(seller), product.ID, entity.ProductPatch{
			Quantity: ptr(8),
			Name:     ptr("Sesame bagels"),
		})
		require.NoError(t, err)
		assert.Equal(t, 8, updated.Quantity)
		assert.Equal(t, "Sesame bagels", updated.Name)
		assert.InDelta(t, 4.0, updated.RescuePrice, 0.001)
	})

	t.Run("other seller is forbidden", func(t *testing.T) {
		other := env.addSeller(t, "Rival")
		_, err := svc.UpdateProduct(ctx, sellerActor(other), product.ID, entity.ProductPatch{Quantity: ptr(1)})
		requireAppError(t, err, "FORBIDDEN")
	})

	t.Run("admin may update any product", func(t *testing.T) {
		admin := usecase.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
		status := entity.ProductStatusInactive
		updated, err := svc.UpdateProduct(ctx, admin, product.ID, entity.ProductPatch{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, entity.ProductStatusInactive, updated.Status)
	})
}

func TestCatalogService_UpdateProductKeepsConcurrentlySoldStock(t *testing.T) {
	fx := createTestOrderService(t)
	seller := fx.env.addSeller(t, "Deli")
	buyer := fx.env.addBuyer(t)
	product := fx.env.addProduct(t, seller, "Croissants", 6, 2, 5)
	ctx := context.Background()

	_, err := fx.carts.AddToCart(ctx, buyer.ID, product.ID, 5)
	require.NoError(t, err)
	fx.expectEvent(constants.EventOrderPlaced).Once()

	// The checkout commits after the edit request started and before it writes.
	var once sync.Once
	checkout := func() {
		once.Do(func() {
			_, err := fx.orders.Checkout(ctx, buyer.ID, entity.PaymentMethodCard)
			require.NoError(t, err)
			require.Equal(t, 0, fx.env.stock(t, product.ID))
		})
	}

	txManager := &hookedTxManager{TransactionManager: fx.env.txManager, beforeExecute: checkout}
	productRepo := &hookedProductRepository{
		ProductRepository: fx.env.productRepo,
		afterFind:         func(uuid.UUID) { checkout() },
	}
	svc := NewCatalogService(CatalogServiceParams{
		TxManager:   txManager,
		ProductRepo: productRepo,
		AccountRepo: fx.env.accountRepo,
		CartRepo:    fx.env.cartRepo,
		Cache:       cache.NewNoopCatalogCache(),
		Config:      newTestConfig(),
		Logger:      newDiscardLogger(),
	})

	updated, err := svc.UpdateProduct(ctx, sellerActor(seller), product.ID, entity.ProductPatch{Name: ptr("Butter croissants")})
	require.NoError(t, err)
	assert.Equal(t, "Butter croissants", updated.Name)
	assert.Equal(t, 0, updated.Quantity)
	assert.Equal(t, 0, fx.env.stock(t, product.ID))

	t.Run("explicit restock still sets the quantity", func(t *testing.T) {
		restocked, err := svc.UpdateProduct(ctx, sellerActor(seller), product.ID, entity.ProductPatch{Quantity: ptr(4)})
		require.NoError(t, err)
		assert.Equal(t, 4, restocked.Quantity)
		assert.Equal(t, 4, fx.env.stock(t, product.ID))
	})
}

func TestCatalogService_RemoveProductCascadesCarts(t *testing.T) {
	env := newMemoryEnv()
	svc := createTestCatalogService(env, nil)
	seller := env.addSeller(t, "Deli")
	product := env.addProduct(t, seller, "Soup", 8, 3, 4)
	kept := env.addProduct(t, seller, "Bread", 5, 2, 4)
	buyer := env.addBuyer(t)
	ctx := context.Background()

	_, err := env.cartRepo.Mutate(ctx, buyer.ID, func(cart *entity.Cart) error {
		cart.Add(product, 2)
		cart.Add(kept, 1)

		return nil
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveProduct(ctx, sellerActor(seller), product.ID))

	_, err = svc.GetProduct(ctx, product.ID)
	requireAppError(t, err, "PRODUCT_NOT_FOUND")

	cart, err := env.cartRepo.Get(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, kept.ID, cart.Lines[0].Product.ID)
}

func TestCatalogService_ListMarketplace(t *testing.T) {
	env := newMemoryEnv()
	svc := createTestCatalogService(env, nil)
	seller := env.addSeller(t, "Harbour Fish")
	ctx := context.Background()

	near := env.addProduct(t, seller, "Salmon", 20, 8, 3)
	near.Category = "fish"
	near.Latitude, near.Longitude = ptr(38.7223), ptr(-9.1393)
	require.NoError(t, env.productRepo.Update(ctx, near))

	far := env.addProduct(t, seller, "Cod", 15, 6, 2)
	far.Category = "fish"
	far.Latitude, far.Longitude = ptr(41.1579), ptr(-8.6291)
	require.NoError(t, env.productRepo.Update(ctx, far))

	bread := env.addProduct(t, seller, "Bread", 3, 1, 10)

	soldOut := env.addProduct(t, seller, "Cake", 9, 3, 0)
	inactive := env.addProduct(t, seller, "Pie", 9, 3, 2)
	inactive.Status = entity.ProductStatusInactive
	require.NoError(t, env.productRepo.Update(ctx, inactive))

	ids := func(products []*entity.Product) []uuid.UUID {
		out := make([]uuid.UUID, 0, len(products))
		for _, p := range products {
			out = append(out, p.ID)
		}

		return out
	}

	all, err := svc.ListMarketplace(ctx, usecase.MarketplaceQuery{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{near.ID, far.ID, bread.ID}, ids(all))
	assert.NotContains(t, ids(all), soldOut.ID)

	fish, err := svc.ListMarketplace(ctx, usecase.MarketplaceQuery{Category: "fish"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{near.ID, far.ID}, ids(fish))

	byStore, err := svc.ListMarketplace(ctx, usecase.MarketplaceQuery{Search: "harbour"})
	require.NoError(t, err)
	assert.Len(t, byStore, 3)

	nearby, err := svc.ListMarketplace(ctx, usecase.MarketplaceQuery{
		Latitude:  ptr(38.7169),
		Longitude: ptr(-9.1399),
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{near.ID}, ids(nearby))

	wide, err := svc.ListMarketplace(ctx, usecase.MarketplaceQuery{
		Latitude:  ptr(38.7169),
		Longitude: ptr(-9.1399),
		RadiusKm:  400,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{near.ID, far.ID}, ids(wide))
}

func TestCatalogService_ListMarketplace_UsesCache(t *testing.T) {
	env := newMemoryEnv()
	seller := env.addSeller(t, "Deli")
	cached := []*entity.Product{{ID: uuid.New(), Name: "Cached", Status: entity.ProductStatusActive, Quantity: 1}}
	ctx := context.Background()

	t.Run("hit skips the repository", func(t *testing.T) {
		catalogCache := mockService.NewMockCatalogCache(t)
		catalogCache.EXPECT().GetMarketplace(ctx).Return(cached, true, nil).Once()

		products, err := createTestCatalogService(env, catalogCache).ListMarketplace(ctx, usecase.MarketplaceQuery{})
		require.NoError(t, err)
		assert.Equal(t, cached, products)
	})

	t.Run("miss fills the cache", func(t *testing.T) {
		product := env.addProduct(t, seller, "Fresh", 4, 2, 1)
		catalogCache := mockService.NewMockCatalogCache(t)
		catalogCache.EXPECT().GetMarketplace(ctx).Return(nil, false, nil).Once()
		catalogCache.EXPECT().
			SetMarketplace(ctx, mock.MatchedBy(func(products []*entity.Product) bool {
				return len(products) == 1 && products[0].ID == product.ID
			})).
			Return(nil).Once()

		products, err := createTestCatalogService(env, catalogCache).ListMarketplace(ctx, usecase.MarketplaceQuery{})
		require.NoError(t, err)
		assert.Len(t, products, 1)
	})

	t.Run("cache errors fall back to the repository", func(t *testing.T) {
		catalogCache := mockService.NewMockCatalogCache(t)
		catalogCache.EXPECT().GetMarketplace(ctx).Return(nil, false, errors.New("redis down")).Once()
		catalogCache.EXPECT().SetMarketplace(ctx, mock.Anything).Return(errors.New("redis down")).Once()

		products, err := createTestCatalogService(env, catalogCache).ListMarketplace(ctx, usecase.MarketplaceQuery{})
		require.NoError(t, err)
		assert.Len(t, products, 1)
	})

	t.Run("writes invalidate", func(t *testing.T) {
		catalogCache := mockService.NewMockCatalogCache(t)
		catalogCache.EXPECT().Invalidate(ctx).Return(nil).Once()

		_, err := createTestCatalogService(env, catalogCache).AddProduct(ctx, sellerActor(seller), usecase.AddProductInput{
			Name: "Muffins", OriginalPrice: 3, RescuePrice: 1, Quantity: 6,
		})
		require.NoError(t, err)
	})
}

func TestCatalogService_ListMarketplace_RepositoryError(t *testing.T) {
	env := newMemoryEnv()
	productRepo := mockRepo.NewMockProductRepository(t)
	productRepo.EXPECT().
		List(mock.Anything, repository.ProductFilter{ActiveOnly: true, InStockOnly: true}).
		Return(nil, errors.New("connection reset"))

	svc := NewCatalogService(CatalogServiceParams{
		TxManager:   env.txManager,
		ProductRepo: productRepo,
		AccountRepo: env.accountRepo,
		CartRepo:    env.cartRepo,
		Cache:       cache.NewNoopCatalogCache(),
		Config:      newTestConfig(),
		Logger:      newDiscardLogger(),
	})

	_, err := svc.ListMarketplace(context.Background(), usecase.MarketplaceQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list marketplace")
}

func TestCatalogService_ListSellerProducts(t *testing.T) {
	env := newMemoryEnv()
	svc := createTestCatalogService(env, nil)
	seller := env.addSeller(t, "Deli")
	other := env.addSeller(t, "Other")
	own := env.addProduct(t, seller, "Wraps", 6, 2, 0)
	env.addProduct(t, other, "Rolls", 6, 2, 3)

	products, err := svc.ListSellerProducts(context.Background(), seller.ID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, own.ID, products[0].ID)
}
