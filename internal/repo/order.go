package repo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/orderdesk/order-api/internal/models"
)

var (
	// ErrInsufficientStock aborts the order transaction when a product
	// cannot cover the requested quantity.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrNonPositiveQuantity aborts the order transaction on a line item
	// with quantity <= 0.
	ErrNonPositiveQuantity = errors.New("quantity must be greater than zero")
)

// ProductsNotFoundError reports every missing product id of a request,
// sorted ascending.
type ProductsNotFoundError struct {
	IDs []int64
}

func (e *ProductsNotFoundError) Error() string {
	parts := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return "products not found: " + strings.Join(parts, ", ")
}

type OrderItemInput struct {
	ProductID int64
	Quantity  int
}

type OrderRepo struct {
	DB *gorm.DB
}

// CreateOrder commits an order and its line items as one transaction.
// Inside the transaction it resolves every product in a single batched
// lookup, then per item decrements stock with a guarded UPDATE
// (in_stock >= quantity in the predicate) and snapshots the product price
// onto the line item. Any failure rolls the whole unit back: no order row,
// no item rows, no stock change.
func (r *OrderRepo) CreateOrder(ctx context.Context, userID int64, status string, items []OrderItemInput) (int64, error) {
	var orderID int64

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make([]int64, len(items))
		for i := range items {
			ids[i] = items[i].ProductID
		}

		products, err := productsByID(tx, ids)
		if err != nil {
			return err
		}
		if len(products) != len(ids) {
			var missing []int64
			for _, id := range ids {
				if _, ok := products[id]; !ok {
					missing = append(missing, id)
				}
			}
			sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
			return &ProductsNotFoundError{IDs: missing}
		}

		order := models.Order{
			UserID:    userID,
			Status:    status,
			OrderDate: time.Now().UTC(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range items {
			if item.Quantity <= 0 {
				return fmt.Errorf("%w (product %d)", ErrNonPositiveQuantity, item.ProductID)
			}

			res := tx.Model(&models.Product{}).
				Where("id = ? AND in_stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("in_stock", gorm.Expr("in_stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w for product %d", ErrInsufficientStock, item.ProductID)
			}

			orderItem := models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: products[item.ProductID].Price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	return orderID, nil
}

func (r *OrderRepo) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	order := models.Order{}
	if err := r.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListItems returns an order's line items ordered by item id so repeated
// reads of an unchanged order are deterministic.
func (r *OrderRepo) ListItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

type OrderFilter struct {
	UserID    *int64
	StartDate *time.Time
	EndDate   *time.Time
}

func (r *OrderRepo) ListOrders(ctx context.Context, f OrderFilter, limit, offset int) (int64, []models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{})
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.StartDate != nil {
		q = q.Where("order_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("order_date <= ?", *f.EndDate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Order
	if err := q.Order("order_date DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}
