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
)

// accountRepository implements the repository.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Create inserts the account row and its role profile. Callers that need both rows to commit
// together run it through the transaction manager.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	if err := account.CheckVariant(); err != nil {
		return err
	}

	accountM := fromAccountDomain(account)
	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateEmail
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("missing required account information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// FindByID retrieves an account with its profile by ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel

	if err := repo.withProfiles(ctx).Where("id = ?", id).First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return toAccountDomain(&accountM), nil
}

// FindByEmail retrieves an account with its profile by email, ignoring case.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel

	if err := repo.withProfiles(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

// List returns the accounts matching the filter, newest first.
func (repo *accountRepository) List(ctx context.Context, filter repository.AccountFilter) ([]*entity.Account, error) {
	query := repo.withProfiles(ctx)
	if filter.Role != "" {
		query = query.Where("role = ?", string(filter.Role))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var accountModels []*model.AccountModel
	if err := query.Order("created_at DESC").Find(&accountModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	accounts := make([]*entity.Account, 0, len(accountModels))
	for _, accountM := range accountModels {
		accounts = append(accounts, toAccountDomain(accountM))
	}

	return accounts, nil
}

// Update saves the mutable account columns and the attached profile.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", account.ID).
		Updates(map[string]any{
			"name":     account.Name,
			"phone":    account.Phone,
			"status":   string(account.Status),
			"verified": account.Verified,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	switch {
	case account.Buyer != nil:
		err := repo.db.WithContext(ctx).
			Model(&model.BuyerProfileModel{}).
			Where("account_id = ?", account.ID).
			Updates(map[string]any{
				"full_name":     account.Buyer.FullName,
				"address":       account.Buyer.Address,
				"date_of_birth": account.Buyer.DateOfBirth,
			}).Error
		if err != nil {
			return domainerrors.ErrAccountUpdateFailed.WrapMessage(err.Error())
		}
	case account.Seller != nil:
		err := repo.db.WithContext(ctx).
			Model(&model.SellerProfileModel{}).
			Where("account_id = ?", account.ID).
			Updates(map[string]any{
				"shop_name":    account.Seller.ShopName,
				"shop_address": account.Seller.ShopAddress,
			}).Error
		if err != nil {
			return domainerrors.ErrAccountUpdateFailed.WrapMessage(err.Error())
		}
	}

	return nil
}

// Delete removes the profile row and then the account row.
func (repo *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := repo.db.WithContext(ctx)

	if err := db.Where("account_id = ?", id).Delete(&model.BuyerProfileModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete buyer profile")
	}
	if err := db.Where("account_id = ?", id).Delete(&model.SellerProfileModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete seller profile")
	}

	result := db.Where("id = ?", id).Delete(&model.AccountModel{})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrConflict.WrapMessage("account is still referenced")
		}

		return errors.Wrap(result.Error, "failed to delete account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

func (repo *accountRepository) withProfiles(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).Preload("Buyer").Preload("Seller")
}

// --- Mapper Functions ---

// toAccountDomain converts a GORM AccountModel with its profiles to a domain Account.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	account := &entity.Account{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Phone:        data.Phone,
		Role:         entity.Role(data.Role),
		Status:       entity.AccountStatus(data.Status),
		Verified:     data.Verified,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}

	if data.Buyer != nil {
		account.Buyer = &entity.BuyerProfile{
			AccountID:   data.Buyer.AccountID,
			FullName:    data.Buyer.FullName,
			Address:     data.Buyer.Address,
			DateOfBirth: data.Buyer.DateOfBirth,
		}
	}
	if data.Seller != nil {
		account.Seller = &entity.SellerProfile{
			AccountID:   data.Seller.AccountID,
			ShopName:    data.Seller.ShopName,
			ShopAddress: data.Seller.ShopAddress,
		}
	}

	return account
}

// fromAccountDomain converts a domain Account to a GORM AccountModel including its profile.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	accountM := &model.AccountModel{
		ID:           data.ID,
		Name:         data.Name,
		Email:        strings.ToLower(strings.TrimSpace(data.Email)),
		PasswordHash: data.PasswordHash,
		Phone:        data.Phone,
		Role:         string(data.Role),
		Status:       string(data.Status),
		Verified:     data.Verified,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}

	if data.Buyer != nil {
		accountM.Buyer = &model.BuyerProfileModel{
			AccountID:   data.ID,
			FullName:    data.Buyer.FullName,
			Address:     data.Buyer.Address,
			DateOfBirth: data.Buyer.DateOfBirth,
		}
	}
	if data.Seller != nil {
		accountM.Seller = &model.SellerProfileModel{
			AccountID:   data.ID,
			ShopName:    data.Seller.ShopName,
			ShopAddress: data.Seller.ShopAddress,
		}
	}

	return accountM
}
