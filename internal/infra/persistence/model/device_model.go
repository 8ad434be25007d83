package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SellerDeviceModel is the GORM-specific struct for the 'seller_devices' table.
// It represents a seller's device registered for new-order push notifications.
type SellerDeviceModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`
	FCMToken  string    `gorm:"type:varchar(255);not null"`
	DeviceID  string    `gorm:"type:varchar(255);not null"`
	Platform  string    `gorm:"type:varchar(50);not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (SellerDeviceModel) TableName() string {
	return "seller_devices"
}
