package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the GORM-specific struct for the 'orders' table.
type OrderModel struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	AddressID uuid.UUID        `gorm:"type:uuid;not null"`
	Address   *AddressModel    `gorm:"foreignKey:AddressID"`
	Total     decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	Status    string           `gorm:"type:varchar(20);not null;default:pending"`
	Items     []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the GORM-specific struct for the 'order_items' table.
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Product   *ProductModel   `gorm:"foreignKey:ProductID"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	// Position is the line's place within its order.
	Position  int `gorm:"not null;default:0"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
