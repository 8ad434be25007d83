package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderNumber   string    `gorm:"type:varchar(32);uniqueIndex;not null"`
	BuyerID       uuid.UUID `gorm:"type:uuid;not null;index"`
	SellerID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Total         float64   `gorm:"type:numeric(12,2);not null"`
	PaymentMethod string    `gorm:"type:varchar(20);not null"`
	PaymentStatus string    `gorm:"type:varchar(20);not null"`
	Status        string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. ProductID is kept without a foreign key
// so order history survives product deletion.
type OrderItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	ProductName string    `gorm:"type:varchar(200);not null"`
	Quantity    int       `gorm:"not null"`
	Price       float64   `gorm:"type:numeric(12,2);not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
