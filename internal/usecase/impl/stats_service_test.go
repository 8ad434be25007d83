package impl

import (
	"context"
	"testing"
	"time"

	"rescue/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_PlatformStats(t *testing.T) {
	env := newMemoryEnv()
	ctx := context.Background()

	admin := entity.NewAdmin("Admin", "admin@test.com")
	require.NoError(t, env.accountRepo.Create(ctx, admin))
	seller := env.addSeller(t, "Deli")
	verified := env.addSeller(t, "Bakery")
	verified.Verify()
	require.NoError(t, env.accountRepo.Update(ctx, verified))
	buyer := env.addBuyer(t)

	env.addProduct(t, seller, "A", 10, 4, 2)   // 60% off
	env.addProduct(t, verified, "B", 10, 8, 1) // 20% off
	free := env.addProduct(t, seller, "C", 0, 0, 1)
	free.Status = entity.ProductStatusInactive
	require.NoError(t, env.productRepo.Update(ctx, free))

	now := time.Now()
	paid := entity.NewOrder(buyer.ID, seller.ID, []entity.CartLine{
		{Product: entity.Product{ID: uuid.New(), Name: "A", RescuePrice: 4}, Quantity: 2},
	}, entity.PaymentMethodCard, now)
	cancelled := entity.NewOrder(buyer.ID, verified.ID, []entity.CartLine{
		{Product: entity.Product{ID: uuid.New(), Name: "B", RescuePrice: 8}, Quantity: 1},
	}, entity.PaymentMethodCard, now)
	cancelled.TransitionTo(entity.OrderStatusCancelled, now)
	require.NoError(t, env.orderRepo.Create(ctx, paid))
	require.NoError(t, env.orderRepo.Create(ctx, cancelled))

	svc := NewStatsService(StatsServiceParams{
		AccountRepo: env.accountRepo,
		ProductRepo: env.productRepo,
		OrderRepo:   env.orderRepo,
		Config:      newTestConfig(),
		Logger:      newDiscardLogger(),
	})

	stats, err := svc.PlatformStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalUsers)
	assert.Equal(t, stats.TotalBuyers+stats.TotalSellers, stats.TotalUsers)
	assert.Equal(t, 1, stats.VerifiedSellers)
	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 2, stats.ActiveProducts)
	assert.InDelta(t, 40.0, stats.AverageDiscountPercent, 0.001)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.InDelta(t, 8.0, stats.TotalRevenue, 0.001)
	// The cancelled order's unit went back on the shelf.
	assert.Equal(t, 2, stats.FoodRescued)
}

func TestStatsService_SellerStats(t *testing.T) {
	env := newMemoryEnv()
	ctx := context.Background()
	seller := env.addSeller(t, "Deli")
	buyer := env.addBuyer(t)

	urgent := env.addProduct(t, seller, "Milk", 3, 1, 4)
	urgent.ExpiryDate = time.Now().Add(3 * time.Hour)
	require.NoError(t, env.productRepo.Update(ctx, urgent))
	env.addProduct(t, seller, "Cheese", 12, 5, 2)
	expired := env.addProduct(t, seller, "Yoghurt", 2, 1, 3)
	expired.ExpiryDate = time.Now().Add(-time.Hour)
	require.NoError(t, env.productRepo.Update(ctx, expired))

	order := entity.NewOrder(buyer.ID, seller.ID, []entity.CartLine{
		{Product: entity.Product{ID: urgent.ID, Name: "Milk", RescuePrice: 1}, Quantity: 3},
	}, entity.PaymentMethodCash, time.Now())
	require.NoError(t, env.orderRepo.Create(ctx, order))

	svc := NewStatsService(StatsServiceParams{
		AccountRepo: env.accountRepo,
		ProductRepo: env.productRepo,
		OrderRepo:   env.orderRepo,
		Config:      newTestConfig(),
		Logger:      newDiscardLogger(),
	})

	stats, err := svc.SellerStats(ctx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 3, stats.ActiveProducts)
	assert.Equal(t, 1, stats.UrgentProducts)
	assert.InDelta(t, 17.0, stats.InventoryValue, 0.001)
	assert.InDelta(t, 3.0, stats.Revenue, 0.001)
	assert.Equal(t, entity.OrderStatusCounts{All: 1, Pending: 1}, stats.Orders)
}
