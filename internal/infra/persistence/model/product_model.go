package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table. The quantity check constraint keeps stock non-negative.
type ProductModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	SellerID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name          string    `gorm:"type:varchar(200);not null"`
	Description   string    `gorm:"type:text"`
	Category      string    `gorm:"type:varchar(50);index"`
	OriginalPrice float64   `gorm:"type:numeric(12,2);not null"`
	RescuePrice   float64   `gorm:"type:numeric(12,2);not null"`
	Quantity      int       `gorm:"not null;default:0;check:quantity >= 0"`
	ExpiryDate    time.Time `gorm:"not null;index"`
	Status        string    `gorm:"type:varchar(20);not null;default:active;index"`
	Image         string    `gorm:"type:text"`
	StoreName     string    `gorm:"type:varchar(100)"`
	Location      string    `gorm:"type:text"`
	Latitude      *float64
	Longitude     *float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
