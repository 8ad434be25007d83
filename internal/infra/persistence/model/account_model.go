package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// It is an exported type so it can be used by the GORM Gen tool from other packages.
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Phone        string    `gorm:"type:varchar(50)"`
	Role         string    `gorm:"type:varchar(20);not null;index"`
	Status       string    `gorm:"type:varchar(20);not null;default:active"`
	Verified     bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Buyer  *BuyerProfileModel  `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	Seller *SellerProfileModel `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// BuyerProfileModel mirrors the 'buyers' table. AccountID references accounts.id (UUID).
type BuyerProfileModel struct {
	AccountID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName    string    `gorm:"type:varchar(100)"`
	Address     string    `gorm:"type:text"`
	DateOfBirth *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (BuyerProfileModel) TableName() string {
	return "buyers"
}

// SellerProfileModel mirrors the 'sellers' table. AccountID references accounts.id (UUID).
type SellerProfileModel struct {
	AccountID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShopName    string    `gorm:"type:varchar(100);not null"`
	ShopAddress string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (SellerProfileModel) TableName() string {
	return "sellers"
}
