package transport

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/orderdesk/order-api/internal/models"
)

type CreateUserRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type CreateProductRequest struct {
	CategoryID int64           `json:"category_id"`
	Name       string          `json:"name"`
	SKU        string          `json:"sku"`
	Price      decimal.Decimal `json:"price"`
	InStock    int             `json:"in_stock"`
}

type CreateOrderItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type CreateOrderRequest struct {
	UserID int64             `json:"user_id"`
	Status string            `json:"status"`
	Items  []CreateOrderItem `json:"items"`
}

type OrderItemDetail struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
}

type OrderDetail struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"user_id"`
	OrderDate time.Time         `json:"order_date"`
	Status    string            `json:"status"`
	Items     []OrderItemDetail `json:"items"`
}

type UserList struct {
	Items  []models.User `json:"items"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
	Total  int64         `json:"total"`
}

type CategoryList struct {
	Items []models.Category `json:"items"`
}

type ProductList struct {
	Items  []models.Product `json:"items"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
	Total  int64            `json:"total"`
}

type OrderList struct {
	Items  []models.Order `json:"items"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
	Total  int64          `json:"total"`
}

type DailySalesPoint struct {
	SaleDay    string          `json:"sale_day"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

type AnalyticsResponse struct {
	Items []DailySalesPoint `json:"items"`
}

type SearchResponse struct {
	Total int64            `json:"total"`
	Items []models.Product `json:"items"`
}
