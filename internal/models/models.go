package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName  string    `gorm:"not null"                 json:"full_name"`
	Email     string    `gorm:"uniqueIndex;not null"     json:"email"`
	CreatedAt time.Time `gorm:"not null"                 json:"created_at"`
}

type Category struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;not null"     json:"name"`
}

type Product struct {
	ID         int64           `gorm:"primaryKey;autoIncrement"      json:"id"`
	CategoryID int64           `gorm:"index;not null"                json:"category_id"`
	Name       string          `gorm:"not null"                      json:"name"`
	SKU        string          `gorm:"column:sku;uniqueIndex;not null" json:"sku"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null"   json:"price"`
	InStock    int             `gorm:"not null"                      json:"in_stock"`
	CreatedAt  time.Time       `gorm:"not null"                      json:"created_at"`
}

type Order struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"index;not null"           json:"user_id"`
	OrderDate time.Time `gorm:"not null"                 json:"order_date"`
	Status    string    `gorm:"not null"                 json:"status"`
}

// (order_id, product_id) is unique: one line item per product within an order.
type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"                                    json:"id"`
	OrderID   int64           `gorm:"uniqueIndex:uq_order_items_order_product;not null"           json:"order_id"`
	ProductID int64           `gorm:"uniqueIndex:uq_order_items_order_product;not null"           json:"product_id"`
	Quantity  int             `gorm:"not null;check:quantity>0"                                   json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"                                 json:"unit_price"`
}
