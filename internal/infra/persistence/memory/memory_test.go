package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"rescue/internal/domain/entity"
	"rescue/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(sellerID uuid.UUID, qty int) *entity.Product {
	return &entity.Product{
		ID:            uuid.New(),
		SellerID:      sellerID,
		Name:          "Sourdough loaf",
		Category:      "bakery",
		OriginalPrice: 6,
		RescuePrice:   2.5,
		Quantity:      qty,
		ExpiryDate:    time.Now().Add(12 * time.Hour),
		Status:        entity.ProductStatusActive,
		StoreName:     "Corner Bakery",
	}
}

func TestAccountRepository_CreateRejectsDuplicateEmailIgnoringCase(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(NewStore())

	require.NoError(t, repo.Create(ctx, entity.NewBuyer("Ann", "ann@example.com", "", "Main St")))

	err := repo.Create(ctx, entity.NewBuyer("Ann", "ANN@example.com", "", "Main St"))
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	found, err := repo.FindByEmail(ctx, "Ann@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ann", found.Name)
}

func TestAccountRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(NewStore())
	seller := entity.NewSeller("Bob", "bob@example.com", "", "Bob's", "Dock 4")
	require.NoError(t, repo.Create(ctx, seller))

	found, err := repo.FindByID(ctx, seller.ID)
	require.NoError(t, err)
	found.Seller.ShopName = "mutated"

	again, err := repo.FindByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob's", again.Seller.ShopName)
}

func TestAccountRepository_ListFiltersNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(NewStore())

	first := entity.NewBuyer("First", "first@example.com", "", "")
	second := entity.NewSeller("Second", "second@example.com", "", "Shop", "")
	third := entity.NewBuyer("Third", "third@example.com", "", "")
	for _, a := range []*entity.Account{first, second, third} {
		require.NoError(t, repo.Create(ctx, a))
	}

	all, err := repo.List(ctx, repository.AccountFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, third.ID, all[0].ID)
	assert.Equal(t, first.ID, all[2].ID)

	buyers, err := repo.List(ctx, repository.AccountFilter{Role: entity.RoleBuyer})
	require.NoError(t, err)
	assert.Len(t, buyers, 2)
}

func TestProductRepository_DecrementIfAvailable(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(NewStore())
	product := newTestProduct(uuid.New(), 3)
	require.NoError(t, repo.Create(ctx, product))

	ok, err := repo.DecrementIfAvailable(ctx, product.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DecrementIfAvailable(ctx, product.ID, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Quantity)

	_, err = repo.DecrementIfAvailable(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestProductRepository_ConcurrentDecrementNeverOversells(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(NewStore())
	product := newTestProduct(uuid.New(), 10)
	require.NoError(t, repo.Create(ctx, product))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		sold int
	)
	for range 25 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.DecrementIfAvailable(ctx, product.ID, 1)
			if err == nil && ok {
				mu.Lock()
				sold++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	stored, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, sold)
	assert.Equal(t, 0, stored.Quantity)
}

func TestProductRepository_ListAppliesFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(NewStore())
	sellerID := uuid.New()

	inStock := newTestProduct(sellerID, 2)
	soldOut := newTestProduct(sellerID, 0)
	inactive := newTestProduct(uuid.New(), 4)
	inactive.Status = entity.ProductStatusInactive
	for _, p := range []*entity.Product{inStock, soldOut, inactive} {
		require.NoError(t, repo.Create(ctx, p))
	}

	listed, err := repo.List(ctx, repository.ProductFilter{ActiveOnly: true, InStockOnly: true})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, inStock.ID, listed[0].ID)

	bySeller, err := repo.List(ctx, repository.ProductFilter{SellerID: &sellerID})
	require.NoError(t, err)
	assert.Len(t, bySeller, 2)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	products := NewProductRepository(store)
	product := newTestProduct(uuid.New(), 5)
	require.NoError(t, products.Create(ctx, product))

	boom := errors.New("boom")
	err := NewTransactionManager(store).Execute(ctx, func(f repository.RepositoryFactory) error {
		ok, err := f.NewProductRepository().DecrementIfAvailable(ctx, product.ID, 5)
		require.NoError(t, err)
		require.True(t, ok)

		order := entity.NewOrder(uuid.New(), product.SellerID, []entity.CartLine{{Product: *product, Quantity: 5}}, entity.PaymentMethodCard, time.Now())
		require.NoError(t, f.NewOrderRepository().Create(ctx, order))

		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Quantity)

	orders, err := NewOrderRepository(store).List(ctx, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestTransactionManager_RollsBackOnPanic(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	products := NewProductRepository(store)
	product := newTestProduct(uuid.New(), 5)
	require.NoError(t, products.Create(ctx, product))

	assert.Panics(t, func() {
		_ = NewTransactionManager(store).Execute(ctx, func(f repository.RepositoryFactory) error {
			_, _ = f.NewProductRepository().DecrementIfAvailable(ctx, product.ID, 3)
			panic("boom")
		})
	})

	stored, err := products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Quantity)
}

func TestTransactionManager_Commits(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	account := entity.NewBuyer("Ann", "ann@example.com", "", "")

	err := NewTransactionManager(store).Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.NewAccountRepository().Create(ctx, account)
	})
	require.NoError(t, err)

	_, err = NewAccountRepository(store).FindByID(ctx, account.ID)
	assert.NoError(t, err)
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(NewStore())
	product := newTestProduct(uuid.New(), 1)
	order := entity.NewOrder(uuid.New(), product.SellerID, []entity.CartLine{{Product: *product, Quantity: 1}}, entity.PaymentMethodCash, time.Now())
	require.NoError(t, repo.Create(ctx, order))

	require.True(t, order.TransitionTo(entity.OrderStatusCompleted, time.Now()))
	require.NoError(t, repo.UpdateStatus(ctx, order))

	stored, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, stored.Status)
	assert.Equal(t, entity.PaymentStatusPaid, stored.PaymentStatus)
	assert.Len(t, stored.Items, 1)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, &entity.Order{ID: uuid.New()}), repository.ErrOrderNotFound)
}

func TestDeviceRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewDeviceRepository(NewStore())
	accountID := uuid.New()

	device := &entity.Device{AccountID: accountID, FCMToken: "tok-1", DeviceID: "phone", Platform: entity.PlatformAndroid, IsActive: true}
	require.NoError(t, repo.CreateDevice(ctx, device))
	assert.NotEqual(t, uuid.Nil, device.ID)

	dup := &entity.Device{AccountID: accountID, FCMToken: "tok-2", DeviceID: "phone", Platform: entity.PlatformAndroid, IsActive: true}
	assert.ErrorIs(t, repo.CreateDevice(ctx, dup), repository.ErrDuplicateDevice)

	require.NoError(t, repo.UpdateFCMToken(ctx, device.ID, "tok-3"))
	active, err := repo.FindActiveDevicesByAccount(ctx, accountID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "tok-3", active[0].FCMToken)

	require.NoError(t, repo.DeleteDevice(ctx, device.ID))
	assert.ErrorIs(t, repo.DeleteDevice(ctx, device.ID), repository.ErrDeviceNotFound)
}

func TestCartRepository_MutateKeepsCartOnError(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository()
	buyerID := uuid.New()
	product := newTestProduct(uuid.New(), 5)

	cart, err := repo.Mutate(ctx, buyerID, func(c *entity.Cart) error {
		c.Add(product, 2)

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Count())

	_, err = repo.Mutate(ctx, buyerID, func(c *entity.Cart) error {
		c.Clear()

		return errors.New("rejected")
	})
	require.Error(t, err)

	stored, err := repo.Get(ctx, buyerID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Count())
}

func TestCartRepository_RemoveProductAcrossCarts(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository()
	product := newTestProduct(uuid.New(), 5)
	other := newTestProduct(uuid.New(), 5)

	for _, buyerID := range []uuid.UUID{uuid.New(), uuid.New()} {
		_, err := repo.Mutate(ctx, buyerID, func(c *entity.Cart) error {
			c.Add(product, 1)
			c.Add(other, 1)

			return nil
		})
		require.NoError(t, err)
	}

	touched, err := repo.RemoveProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, touched)

	touched, err = repo.RemoveProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Zero(t, touched)
}

func TestCartRepository_GetReturnsEmptyCart(t *testing.T) {
	cart, err := NewCartRepository().Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartRepository_LocksArePerBuyer(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository()
	busy, other := uuid.New(), uuid.New()

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := repo.Mutate(ctx, busy, func(*entity.Cart) error {
			close(entered)
			<-release

			return nil
		})
		done <- err
	}()
	<-entered

	otherDone := make(chan struct{})
	go func() {
		defer close(otherDone)
		_, _ = repo.Mutate(ctx, other, func(c *entity.Cart) error {
			c.Add(newTestProduct(uuid.New(), 3), 1)

			return nil
		})
		_, _ = repo.Get(ctx, other)
	}()

	busyRead := make(chan struct{})
	go func() {
		defer close(busyRead)
		_, _ = repo.Get(ctx, busy)
	}()

	select {
	case <-otherDone:
	case <-time.After(time.Second):
		t.Fatal("another buyer's cart waited for the busy cart")
	}

	t.Run("same buyer still serialises", func(t *testing.T) {
		select {
		case <-busyRead:
			t.Fatal("read of the busy cart did not wait for the mutation")
		case <-time.After(20 * time.Millisecond):
		}
	})

	close(release)
	require.NoError(t, <-done)
	<-busyRead
}
