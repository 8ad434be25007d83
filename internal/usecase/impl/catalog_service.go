package impl

import (
	"context"
	"log/slog"
	"strings"

	"rescue/config"
	deliverycontext "rescue/internal/delivery/context"
	"rescue/internal/domain/entity"
	domainerrors "rescue/internal/domain/errors"
	"rescue/internal/domain/repository"
	"rescue/internal/domain/service"
	"rescue/internal/usecase"
	"rescue/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultNearbyRadiusKm = 10

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager       repository.TransactionManager
	productRepo     repository.ProductRepository
	accountRepo     repository.AccountRepository
	cartRepo        repository.CartRepository
	cache           service.CatalogCache
	defaultRadiusKm float64
	logger          *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProductRepo repository.ProductRepository
	AccountRepo repository.AccountRepository
	CartRepo    repository.CartRepository
	Cache       service.CatalogCache
	Config      *config.Config
	Logger      *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	radius := float64(defaultNearbyRadiusKm)
	if params.Config != nil && params.Config.Catalog != nil && params.Config.Catalog.NearbyDefaultRadiusKm > 0 {
		radius = params.Config.Catalog.NearbyDefaultRadiusKm
	}

	return &catalogService{
		txManager:       params.TxManager,
		productRepo:     params.ProductRepo,
		accountRepo:     params.AccountRepo,
		cartRepo:        params.CartRepo,
		cache:           params.Cache,
		defaultRadiusKm: radius,
		logger:          params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func validateProduct(p *entity.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return domainerrors.ErrValidationFailed.WithDetails("name is required")
	}
	if p.Quantity < 0 {
		return domainerrors.ErrInvalidQuantity
	}
	if !p.HasValidPricing() {
		return domainerrors.ErrInvalidPricing
	}
	if !p.Status.IsValid() {
		return domainerrors.ErrValidationFailed.WithDetails("status must be active or inactive")
	}

	return nil
}

// AddProduct lists a new product for the calling seller.
func (srv *catalogService) AddProduct(ctx context.Context, actor usecase.Actor, input usecase.AddProductInput) (*entity.Product, error) {
	seller, err := srv.accountRepo.FindByID(ctx, actor.ID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, domainerrors.ErrAccountNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find seller")
	}

	status := input.Status
	if status == "" {
		status = entity.ProductStatusActive
	}

	product := &entity.Product{
		ID:            uuid.New(),
		SellerID:      seller.ID,
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		Category:      input.Category,
		OriginalPrice: input.OriginalPrice,
		RescuePrice:   input.RescuePrice,
		Quantity:      input.Quantity,
		ExpiryDate:    input.ExpiryDate,
		Status:        status,
		Image:         input.Image,
		StoreName:     seller.StoreName(),
		Location:      input.Location,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
	}
	if product.Location == "" {
		product.Location = seller.Address()
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}
	srv.invalidate(ctx)

	srv.log(ctx).Info("Product added",
		slog.String("product_id", product.ID.String()),
		slog.String("seller_id", seller.ID.String()),
	)

	return product, nil
}

// UpdateProduct merges the patch and revalidates the merged product.
// The row stays locked from read to write so a checkout cannot decrement stock in between.
func (srv *catalogService) UpdateProduct(ctx context.Context, actor usecase.Actor, id uuid.UUID, patch entity.ProductPatch) (*entity.Product, error) {
	var updated *entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		products := repoFactory.NewProductRepository()

		product, err := products.FindByIDForUpdate(ctx, id)
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to lock product")
		}
		if err := authorizeProductChange(actor, product); err != nil {
			return err
		}

		product.Apply(patch)
		if err := validateProduct(product); err != nil {
			return err
		}

		if err := products.Update(ctx, product); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to update product")
		}
		updated = product

		return nil
	})
	if err != nil {
		return nil, err
	}
	srv.invalidate(ctx)

	return updated, nil
}

// RemoveProduct deletes the product and drops it from every cart.
func (srv *catalogService) RemoveProduct(ctx context.Context, actor usecase.Actor, id uuid.UUID) error {
	if _, err := srv.ownedProduct(ctx, actor, id); err != nil {
		return err
	}

	if err := srv.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to delete product")
	}

	touched, err := srv.cartRepo.RemoveProduct(ctx, id)
	if err != nil {
		return errors.Wrap(err, "failed to remove product from carts")
	}
	srv.invalidate(ctx)

	srv.log(ctx).Info("Product removed",
		slog.String("product_id", id.String()),
		slog.Int("carts_touched", touched),
	)

	return nil
}

// ownedProduct loads a product the actor may modify: its seller or any admin.
func (srv *catalogService) ownedProduct(ctx context.Context, actor usecase.Actor, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeProductChange(actor, product); err != nil {
		return nil, err
	}

	return product, nil
}

func authorizeProductChange(actor usecase.Actor, product *entity.Product) error {
	if product.SellerID != actor.ID && !actor.IsAdmin() {
		return domainerrors.ErrForbidden.WithDetails("only the owning seller or an admin may modify this product")
	}

	return nil
}

func (srv *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// ListMarketplace returns active, in-stock products narrowed by the query.
func (srv *catalogService) ListMarketplace(ctx context.Context, query usecase.MarketplaceQuery) ([]*entity.Product, error) {
	listing, err := srv.marketplace(ctx)
	if err != nil {
		return nil, err
	}

	filter := repository.ProductFilter{Category: query.Category, Search: query.Search}

	var radius *util.RadiusFilter
	if query.Latitude != nil && query.Longitude != nil {
		km := query.RadiusKm
		if km <= 0 {
			km = srv.defaultRadiusKm
		}
		f := util.NewRadiusFilter(*query.Latitude, *query.Longitude, km)
		radius = &f
	}

	products := make([]*entity.Product, 0, len(listing))
	for _, p := range listing {
		if !filter.Matches(p) {
			continue
		}
		if radius != nil {
			lat, lng, ok := p.Coordinates()
			if !ok || !radius.Contains(lat, lng) {
				continue
			}
		}
		products = append(products, p)
	}

	return products, nil
}

// marketplace reads the unfiltered listing through the cache. Cache failures fall back to the repository.
func (srv *catalogService) marketplace(ctx context.Context) ([]*entity.Product, error) {
	cached, ok, err := srv.cache.GetMarketplace(ctx)
	if err != nil {
		srv.log(ctx).Warn("Marketplace cache read failed", slog.Any("error", err))
	}
	if ok {
		return cached, nil
	}

	products, err := srv.productRepo.List(ctx, repository.ProductFilter{ActiveOnly: true, InStockOnly: true})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list marketplace")
	}
	if err := srv.cache.SetMarketplace(ctx, products); err != nil {
		srv.log(ctx).Warn("Marketplace cache write failed", slog.Any("error", err))
	}

	return products, nil
}

func (srv *catalogService) ListSellerProducts(ctx context.Context, sellerID uuid.UUID) ([]*entity.Product, error) {
	products, err := srv.productRepo.List(ctx, repository.ProductFilter{SellerID: &sellerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list seller products")
	}

	return products, nil
}

func (srv *catalogService) invalidate(ctx context.Context) {
	if err := srv.cache.Invalidate(ctx); err != nil {
		srv.log(ctx).Warn("Marketplace cache invalidation failed", slog.Any("error", err))
	}
}
