package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orderdesk/order-api/internal/models"
	"github.com/orderdesk/order-api/internal/repo"
	"github.com/orderdesk/order-api/internal/transport"
)

type OrderService struct {
	Orders   *repo.OrderRepo
	Accounts *repo.AccountRepo
	Catalog  *repo.CatalogRepo
}

// CreateOrder runs the validation pipeline in its fixed order: structural
// checks first, then the user and product referential checks, and only
// then the per-item business rules (quantity, stock) inside the commit
// transaction. The first failure wins and nothing is mutated on any
// failure path.
func (s *OrderService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (int64, error) {
	if len(req.Items) == 0 {
		return 0, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}

	seen := make(map[int64]struct{}, len(req.Items))
	for _, item := range req.Items {
		if _, ok := seen[item.ProductID]; ok {
			return 0, fmt.Errorf("%w: duplicate product_id in items", ErrValidation)
		}
		seen[item.ProductID] = struct{}{}
	}

	status := req.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	if !models.ValidOrderStatus(status) {
		return 0, fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}

	if _, err := s.Accounts.GetUser(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return 0, err
	}

	items := make([]repo.OrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = repo.OrderItemInput{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	orderID, err := s.Orders.CreateOrder(ctx, req.UserID, status, items)
	if err != nil {
		var missing *repo.ProductsNotFoundError
		switch {
		case errors.As(err, &missing):
			return 0, fmt.Errorf("%w: %s", ErrNotFound, missing.Error())
		case errors.Is(err, repo.ErrNonPositiveQuantity), errors.Is(err, repo.ErrInsufficientStock):
			return 0, fmt.Errorf("%w: %s", ErrValidation, err.Error())
		case isDuplicate(err):
			return 0, fmt.Errorf("%w: %s", ErrConflict, err.Error())
		}
		return 0, err
	}

	return orderID, nil
}

// GetOrderDetail reconstructs the enriched view of one order: the order
// row, its items ordered by item id, and one batched product lookup to
// attach current name and SKU. Unit price stays the snapshot taken at
// commit time.
func (s *OrderService) GetOrderDetail(ctx context.Context, orderID int64) (*transport.OrderDetail, error) {
	order, err := s.Orders.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order not found", ErrNotFound)
		}
		return nil, err
	}

	items, err := s.Orders.ListItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(items))
	for i := range items {
		ids[i] = items[i].ProductID
	}
	products, err := s.Catalog.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	detail := &transport.OrderDetail{
		ID:        order.ID,
		UserID:    order.UserID,
		OrderDate: order.OrderDate,
		Status:    order.Status,
		Items:     make([]transport.OrderItemDetail, len(items)),
	}
	for i, item := range items {
		product := products[item.ProductID]
		detail.Items[i] = transport.OrderItemDetail{
			ID:          item.ID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			ProductName: product.Name,
			ProductSKU:  product.SKU,
		}
	}

	return detail, nil
}

func (s *OrderService) ListOrders(ctx context.Context, f repo.OrderFilter, limit, offset int) (int64, []models.Order, error) {
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return 0, nil, fmt.Errorf("%w: start_date cannot be after end_date", ErrValidation)
	}
	return s.Orders.ListOrders(ctx, f, limit, offset)
}
