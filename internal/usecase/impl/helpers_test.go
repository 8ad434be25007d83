package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"rescue/config"
	"rescue/internal/domain/entity"
	domainerrors "rescue/internal/domain/errors"
	"rescue/internal/domain/repository"
	"rescue/internal/infra/persistence/memory"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth:    &config.AuthConfig{BcryptCost: 4},
		Cart:    &config.CartConfig{MaxLines: 3},
		Catalog: &config.CatalogConfig{NearbyDefaultRadiusKm: 5, UrgentWindow: 24 * time.Hour},
	}
}

// memoryEnv wires every repository onto one in-memory store.
type memoryEnv struct {
	store       *memory.Store
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	deviceRepo  repository.DeviceRepository
	cartRepo    repository.CartRepository
}

func newMemoryEnv() *memoryEnv {
	store := memory.NewStore()

	return &memoryEnv{
		store:       store,
		txManager:   memory.NewTransactionManager(store),
		accountRepo: memory.NewAccountRepository(store),
		productRepo: memory.NewProductRepository(store),
		orderRepo:   memory.NewOrderRepository(store),
		deviceRepo:  memory.NewDeviceRepository(store),
		cartRepo:    memory.NewCartRepository(),
	}
}

func (e *memoryEnv) addSeller(t *testing.T, shop string) *entity.Account {
	t.Helper()
	seller := entity.NewSeller(shop+" owner", uuid.NewString()+"@seller.test", "", shop, shop+" street 1")
	require.NoError(t, e.accountRepo.Create(context.Background(), seller))

	return seller
}

func (e *memoryEnv) addBuyer(t *testing.T) *entity.Account {
	t.Helper()
	buyer := entity.NewBuyer("Buyer", uuid.NewString()+"@buyer.test", "", "Main street 2")
	require.NoError(t, e.accountRepo.Create(context.Background(), buyer))

	return buyer
}

func (e *memoryEnv) addProduct(t *testing.T, seller *entity.Account, name string, original, rescue float64, qty int) *entity.Product {
	t.Helper()
	product := &entity.Product{
		ID:            uuid.New(),
		SellerID:      seller.ID,
		Name:          name,
		Category:      "bakery",
		OriginalPrice: original,
		RescuePrice:   rescue,
		Quantity:      qty,
		ExpiryDate:    time.Now().Add(48 * time.Hour),
		Status:        entity.ProductStatusActive,
		StoreName:     seller.StoreName(),
	}
	require.NoError(t, e.productRepo.Create(context.Background(), product))

	return product
}

func (e *memoryEnv) stock(t *testing.T, id uuid.UUID) int {
	t.Helper()
	product, err := e.productRepo.FindByID(context.Background(), id)
	require.NoError(t, err)

	return product.Quantity
}

// requireAppError asserts that err carries a domain error with the given business code.
func requireAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr), "expected an AppError, got %v", err)
	require.Equal(t, code, appErr.ErrorCode())
}

func ptr[T any](v T) *T {
	return &v
}

// hookedProductRepository runs afterFind once FindByID has returned from the store.
type hookedProductRepository struct {
	repository.ProductRepository
	afterFind func(id uuid.UUID)
}

func (r *hookedProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := r.ProductRepository.FindByID(ctx, id)
	if r.afterFind != nil {
		r.afterFind(id)
	}

	return product, err
}

// hookedTxManager runs beforeExecute ahead of every transaction it delegates.
type hookedTxManager struct {
	repository.TransactionManager
	beforeExecute func()
}

func (m *hookedTxManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if m.beforeExecute != nil {
		m.beforeExecute()
	}

	return m.TransactionManager.Execute(ctx, fn)
}
