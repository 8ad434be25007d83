package impl

import (
	"context"
	"log/slog"

	"rescue/config"
	deliverycontext "rescue/internal/delivery/context"
	"rescue/internal/domain/entity"
	domainerrors "rescue/internal/domain/errors"
	"rescue/internal/domain/repository"
	"rescue/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultMaxCartLines = 50

// cartService implements the CartUsecase interface.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	maxLines    int
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
	Config      *config.Config
	Logger      *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	maxLines := defaultMaxCartLines
	if params.Config != nil && params.Config.Cart != nil && params.Config.Cart.MaxLines > 0 {
		maxLines = params.Config.Cart.MaxLines
	}

	return &cartService{
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		maxLines:    maxLines,
		logger:      params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *cartService) GetCart(ctx context.Context, buyerID uuid.UUID) (*entity.Cart, error) {
	cart, err := srv.cartRepo.Get(ctx, buyerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get cart")
	}

	return cart, nil
}

// AddToCart adds qty units, clamped to the product's current stock.
// The product is read under the buyer's cart lock, so a concurrent removal either
// fails this call or sweeps the new line right after it.
func (srv *cartService) AddToCart(ctx context.Context, buyerID, productID uuid.UUID, qty int) (*entity.Cart, error) {
	if qty < 1 {
		return nil, domainerrors.ErrCartQuantityInvalid
	}

	var added int
	cart, err := srv.cartRepo.Mutate(ctx, buyerID, func(cart *entity.Cart) error {
		product, err := srv.productRepo.FindByID(ctx, productID)
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to find product")
		}
		if !product.IsAvailable() {
			return domainerrors.ErrProductUnavailable
		}

		if len(cart.Lines) >= srv.maxLines && !containsProduct(cart, productID) {
			return domainerrors.ErrCartLimitExceeded
		}
		added = cart.Add(product, qty)

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Cart line updated",
		slog.String("buyer_id", buyerID.String()),
		slog.Int("quantity", added),
		slog.String("product_id", productID.String()),
	)

	return cart, nil
}

// UpdateQuantity sets an absolute quantity. Stock is checked again at checkout.
func (srv *cartService) UpdateQuantity(ctx context.Context, buyerID, productID uuid.UUID, qty int) (*entity.Cart, error) {
	if qty < 1 {
		return nil, domainerrors.ErrCartQuantityInvalid
	}

	return srv.cartRepo.Mutate(ctx, buyerID, func(cart *entity.Cart) error {
		if !cart.SetQuantity(productID, qty) {
			return domainerrors.ErrCartItemNotFound
		}

		return nil
	})
}

func (srv *cartService) RemoveFromCart(ctx context.Context, buyerID, productID uuid.UUID) (*entity.Cart, error) {
	return srv.cartRepo.Mutate(ctx, buyerID, func(cart *entity.Cart) error {
		if !cart.Remove(productID) {
			return domainerrors.ErrCartItemNotFound
		}

		return nil
	})
}

func (srv *cartService) ClearCart(ctx context.Context, buyerID uuid.UUID) error {
	if err := srv.cartRepo.Clear(ctx, buyerID); err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	return nil
}

func containsProduct(cart *entity.Cart, productID uuid.UUID) bool {
	for _, line := range cart.Lines {
		if line.Product.ID == productID {
			return true
		}
	}

	return false
}
