package postgres

import (
	"context"

	"rescue/internal/domain/entity"
	domainerrors "rescue/internal/domain/errors"
	"rescue/internal/domain/repository"
	"rescue/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// deviceRepository stores the phones and tablets sellers register to be pushed
// new-order notifications. Rows live in seller_devices and are soft-deleted.
type deviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository returns the seller push device store backed by PostgreSQL.
func NewDeviceRepository(db *gorm.DB) repository.DeviceRepository {
	return &deviceRepository{db: db}
}

// CreateDevice registers a seller's device. The (account, device id) pair is unique,
// and the account must still exist.
func (repo *deviceRepository) CreateDevice(ctx context.Context, device *entity.Device) error {
	deviceM := fromDeviceDomain(device)

	err := repo.db.WithContext(ctx).Create(deviceM).Error
	switch {
	case err == nil:
	case isUniqueConstraintViolation(err):
		return repository.ErrDuplicateDevice
	case isForeignKeyConstraintViolation(err):
		return domainerrors.ErrAccountNotFound.WrapMessage("device registered for an unknown seller")
	case isNotNullConstraintViolation(err):
		return domainerrors.ErrValidationFailed.WrapMessage("device is missing its push token or platform")
	default:
		return domainerrors.NewDatabaseExecuteError(err, "failed to register seller device")
	}

	device.ID = deviceM.ID
	device.CreatedAt = deviceM.CreatedAt
	device.UpdatedAt = deviceM.UpdatedAt

	return nil
}

func (repo *deviceRepository) FindDeviceByID(ctx context.Context, id uuid.UUID) (*entity.Device, error) {
	var deviceM model.SellerDeviceModel

	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&deviceM).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrDeviceNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find seller device")
	}

	return toDeviceDomain(&deviceM), nil
}

// FindDevicesByAccount lists every device the seller registered, newest first,
// including the ones that were switched off.
func (repo *deviceRepository) FindDevicesByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Device, error) {
	return repo.listSellerDevices(ctx, accountID, false)
}

// FindActiveDevicesByAccount lists the devices a new-order push should be fanned out to.
func (repo *deviceRepository) FindActiveDevicesByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Device, error) {
	return repo.listSellerDevices(ctx, accountID, true)
}

func (repo *deviceRepository) listSellerDevices(ctx context.Context, accountID uuid.UUID, activeOnly bool) ([]*entity.Device, error) {
	query := repo.db.WithContext(ctx).Where("account_id = ?", accountID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var rows []*model.SellerDeviceModel
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to list devices of seller %s", accountID)
	}

	devices := make([]*entity.Device, 0, len(rows))
	for _, row := range rows {
		devices = append(devices, toDeviceDomain(row))
	}

	return devices, nil
}

// UpdateFCMToken rotates the push token after the messaging client refreshed it.
func (repo *deviceRepository) UpdateFCMToken(ctx context.Context, deviceID uuid.UUID, fcmToken string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.SellerDeviceModel{}).
		Where("id = ?", deviceID).
		Update("fcm_token", fcmToken)

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateDevice
		}

		return errors.Wrap(result.Error, "failed to rotate push token")
	}
	if result.RowsAffected == 0 {
		return repository.ErrDeviceNotFound
	}

	return nil
}

// DeleteDevice soft-deletes the device so the seller stops receiving pushes on it.
func (repo *deviceRepository) DeleteDevice(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.SellerDeviceModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to remove seller device")
	}
	if result.RowsAffected == 0 {
		return repository.ErrDeviceNotFound
	}

	return nil
}

func toDeviceDomain(row *model.SellerDeviceModel) *entity.Device {
	if row == nil {
		return nil
	}

	return &entity.Device{
		ID:        row.ID,
		AccountID: row.AccountID,
		FCMToken:  row.FCMToken,
		DeviceID:  row.DeviceID,
		Platform:  entity.Platform(row.Platform),
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func fromDeviceDomain(device *entity.Device) *model.SellerDeviceModel {
	if device == nil {
		return nil
	}

	return &model.SellerDeviceModel{
		ID:        device.ID,
		AccountID: device.AccountID,
		FCMToken:  device.FCMToken,
		DeviceID:  device.DeviceID,
		Platform:  string(device.Platform),
		IsActive:  device.IsActive,
		CreatedAt: device.CreatedAt,
		UpdatedAt: device.UpdatedAt,
	}
}
