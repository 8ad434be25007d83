package postgres

import (
	"context"
	"strings"

	"rescue/internal/domain/entity"
	domainerrors "rescue/internal/domain/errors"
	"rescue/internal/domain/repository"
	"rescue/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// productRepository implements the repository.ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// Create persists a new product.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrAccountNotFound.WrapMessage("invalid seller reference")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidQuantity
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// FindByID retrieves a product by ID.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// FindByIDForUpdate retrieves a product with SELECT ... FOR UPDATE. It only locks inside a transaction.
func (repo *productRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("id = ?", id).
		First(&productM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to lock product")
	}

	return toProductDomain(&productM), nil
}

// List returns the products matching the filter, newest first.
func (repo *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	query := repo.db.WithContext(ctx).Model(&model.ProductModel{})
	if filter.SellerID != nil {
		query = query.Where("seller_id = ?", *filter.SellerID)
	}
	if filter.ActiveOnly {
		query = query.Where("status = ?", string(entity.ProductStatusActive))
	}
	if filter.InStockOnly {
		query = query.Where("quantity > 0")
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(store_name) LIKE ?)", like, like)
	}

	var productModels []*model.ProductModel
	if err := query.Order("created_at DESC").Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// Update overwrites every mutable column of the product.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":           product.Name,
			"description":    product.Description,
			"category":       product.Category,
			"original_price": product.OriginalPrice,
			"rescue_price":   product.RescuePrice,
			"quantity":       product.Quantity,
			"expiry_date":    product.ExpiryDate,
			"status":         string(product.Status),
			"image":          product.Image,
			"store_name":     product.StoreName,
			"location":       product.Location,
			"latitude":       product.Latitude,
			"longitude":      product.Longitude,
		})
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrInvalidQuantity
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// Delete removes a product.
func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ProductModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// DecrementIfAvailable performs the stock check and the decrement in one conditional UPDATE,
// so concurrent checkouts can never drive stock below zero.
func (repo *productRepository) DecrementIfAvailable(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ? AND quantity >= ?", id, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to decrement stock")
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.ProductModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check product existence")
	}
	if count == 0 {
		return false, repository.ErrProductNotFound
	}

	return false, nil
}

// IncrementStock adds qty units back to the product.
func (repo *productRepository) IncrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", qty))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to restore stock")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toProductDomain converts a GORM ProductModel to a domain Product.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:            data.ID,
		SellerID:      data.SellerID,
		Name:          data.Name,
		Description:   data.Description,
		Category:      data.Category,
		OriginalPrice: data.OriginalPrice,
		RescuePrice:   data.RescuePrice,
		Quantity:      data.Quantity,
		ExpiryDate:    data.ExpiryDate,
		Status:        entity.ProductStatus(data.Status),
		Image:         data.Image,
		StoreName:     data.StoreName,
		Location:      data.Location,
		Latitude:      data.Latitude,
		Longitude:     data.Longitude,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromProductDomain converts a domain Product to a GORM ProductModel.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:            data.ID,
		SellerID:      data.SellerID,
		Name:          data.Name,
		Description:   data.Description,
		Category:      data.Category,
		OriginalPrice: data.OriginalPrice,
		RescuePrice:   data.RescuePrice,
		Quantity:      data.Quantity,
		ExpiryDate:    data.ExpiryDate,
		Status:        string(data.Status),
		Image:         data.Image,
		StoreName:     data.StoreName,
		Location:      data.Location,
		Latitude:      data.Latitude,
		Longitude:     data.Longitude,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
