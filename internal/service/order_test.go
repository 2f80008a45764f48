package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/order-api/internal/models"
	"github.com/orderdesk/order-api/internal/repo"
	"github.com/orderdesk/order-api/internal/transport"
)

func TestCreateOrderSuccess(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := seedUser(t, svc.DB, "alice@example.com")
	category := seedCategory(t, svc.DB, "Electronics")
	p1 := seedProduct(t, svc.DB, category.ID, "SKU00000001", "19.99", 10)
	p2 := seedProduct(t, svc.DB, category.ID, "SKU00000002", "5.50", 3)

	orderID, err := svc.Orders.CreateOrder(ctx, transport.CreateOrderRequest{
		UserID: user.ID,
		Items: []transport.CreateOrderItem{
			{ProductID: p1.ID, Quantity: 2},
			{ProductID: p2.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, orderID)

	require.Equal(t, 8, productStock(t, svc.DB, p1.ID))
	require.Equal(t, 0, productStock(t, svc.DB, p2.ID))

	detail, err := svc.Orders.GetOrderDetail(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, orderID, detail.ID)
	require.Equal(t, user.ID, detail.UserID)
	require.Equal(t, models.OrderStatusPending, detail.Status)
	require.Len(t, detail.Items, 2)

	require.Equal(t, p1.ID, detail.Items[0].ProductID)
	require.Equal(t, 2, detail.Items[0].Quantity)
	require.Equal(t, "19.99", detail.Items[0].UnitPrice.StringFixed(2))
	require.Equal(t, p1.Name, detail.Items[0].ProductName)
	require.Equal(t, "SKU00000001", detail.Items[0].ProductSKU)

	require.Equal(t, p2.ID, detail.Items[1].ProductID)
	require.Equal(t, "5.50", detail.Items[1].UnitPrice.StringFixed(2))
}

func TestCreateOrderSnapshotsUnitPrice(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := seedUser(t, svc.DB, "bob@example.com")
	category := seedCategory(t, svc.DB, "Books")
	product := seedProduct(t, svc.DB, category.ID, "SKU00000003", "42.00", 5)

	orderID, err := svc.Orders.CreateOrder(ctx, transport.CreateOrderRequest{
		UserID: user.ID,
		Items:  []transport.CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// a later price change must not touch the committed line item
	require.NoError(t, svc.DB.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("price", decimal.RequireFromString("99.99")).Error)

	detail, err := svc.Orders.GetOrderDetail(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, "42.00", detail.Items[0].UnitPrice.StringFixed(2))
}

func TestCreateOrderEmptyItems(t *testing.T) {
	svc := newTestServices(t)

	user := seedUser(t, svc.DB, "carla@example.com")

	_, err := svc.Orders.CreateOrder(context.Background(), transport.CreateOrderRequest{
		UserID: user.ID,
	})
	require.ErrorIs(t, err, ErrValidation)

	var count int64
	require.NoError(t, svc.DB.Model(&models.Order{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCreateOrderDuplicateProduct(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := seedUser(t, svc.DB, "denis@example.com")
	category := seedCategory(t, svc.DB, "Toys & Games")
	product := seedProduct(t, svc.DB, category.ID, "SKU00000004", "10.00", 7)

	_, err := svc.Orders.CreateOrder(ctx, transport.CreateOrderRequest{
		UserID: user.ID,
		Items: []transport.CreateOrderItem{
			{ProductID: product.ID, Quantity: 1},
			{ProductID: product.ID, Quantity: 2},
		},
	})
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), "duplicate product_id")

	require.Equal(t, 7, productStock(t, svc.DB, product.ID))
}

func TestCreateOrderUnknownUser(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	category := seedCategory(t, svc.DB, "Garden")
	product := seedProduct(t, svc.DB, category.ID, "SKU00000005", "15.00", 4)

	_, err := svc.Orders.CreateOrder(ctx, transport.CreateOrderRequest{
		UserID: 12345,
		Items:  []transport.CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, svc.DB.Model(&models.Order{}).Count(&count).Error)
	require.Zero(t, count)
	require.Equal(t, 4, productStock(t, svc.DB, product.ID))
}

func TestCreateOrderMissingProductsListedSorted(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := seedUser(t, svc.DB, "elena@example.com")
	category := seedCategory(t, svc.DB, "Music")
	product := seedProduct(t, svc.DB, category.ID, "SKU00000006", "8.00", 9)

	_, err := svc.Orders.CreateOrder(ctx, transport.CreateOrderRequest{
		UserID: user.ID,
		Items: []transport.CreateOrderItem{
			{ProductID: 902, Quantity: 1},
			{ProductID: product.ID, Quantity: 1},
			{ProductID: 901, Quantity: 1},
		},
	})
	require.ErrorIs(t, err, ErrNotFound)
	require.Contains(t, err.Error(), "products not found: 901, 902")

	var count int64
	require.NoError(t, svc.DB.Model(&models.Order{}).Count(&count).Error)
	require.Zero(t, count)
	require.Equal(t, 9, productStock(t, svc.DB, product.ID))
}

func TestCreateOrderInsufficientStockRollsBackEverything(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := seedUser(t, svc.DB, "felix@example.com")
	category := seedCategory(t, svc.DB, "Tools")
	p1 := seedProduct(t, svc.DB, category.ID, "SKU00000007", "3.00", 100)
	p2 := seedProduct(t, svc.DB, category.ID, "SKU00000008", "4.00", 1)

	_, err := svc.Orders.CreateOrder(ctx, transport.CreateOrderRequest{
		UserID: user.ID,
		Items: []transport.CreateOrderItem{
			{ProductID: p1.ID, Quantity: 5}, // individually fine
			{ProductID: p2.ID, Quantity: 2}, // exceeds stock
		},
	})
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), "insufficient stock")

	// the earlier valid decrement must have been rolled back too
	require.Equal(t, 100, productStock(t, svc.DB, p1.ID))
	require.Equal(t, 1, productStock(t, svc.DB, p2.ID))

	var orders, items int64
	require.NoError(t, svc.DB.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, svc.DB.Model(&models.OrderItem{}).Count(&items).Error)
	require.Zero(t, orders)
	require.Zero(t, items)
}

func TestCreateOrderNonPositiveQuantity(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := seedUser(t, svc.DB, "greta@example.com")
	category := seedCategory(t, svc.DB, "Office")
	product := seedProduct(t, svc.DB, category.ID, "SKU00000009", "2.50", 6)

	_, err := svc.Orders.CreateOrder(ctx, transport.CreateOrderRequest{
		UserID: user.ID,
		Items:  []transport.CreateOrderItem{{ProductID: product.ID, Quantity: 0}},
	})
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), "quantity")
	require.Equal(t, 6, productStock(t, svc.DB, product.ID))
}

func TestCreateOrderInvalidStatus(t *testing.T) {
	svc := newTestServices(t)

	user := seedUser(t, svc.DB, "hugo@example.com")
	category := seedCategory(t, svc.DB, "Art")
	product := seedProduct(t, svc.DB, category.ID, "SKU00000010", "1.00", 1)

	_, err := svc.Orders.CreateOrder(context.Background(), transport.CreateOrderRequest{
		UserID: user.ID,
		Status: "archived",
		Items:  []transport.CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreateOrderExplicitStatus(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := seedUser(t, svc.DB, "ivana@example.com")
	category := seedCategory(t, svc.DB, "Shoes")
	product := seedProduct(t, svc.DB, category.ID, "SKU00000011", "60.00", 2)

	orderID, err := svc.Orders.CreateOrder(ctx, transport.CreateOrderRequest{
		UserID: user.ID,
		Status: models.OrderStatusPaid,
		Items:  []transport.CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	detail, err := svc.Orders.GetOrderDetail(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusPaid, detail.Status)
}

func TestCreateOrderSequentialStockExhaustion(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := seedUser(t, svc.DB, "jonas@example.com")
	category := seedCategory(t, svc.DB, "Appliances")
	product := seedProduct(t, svc.DB, category.ID, "SKU00000012", "120.00", 5)

	orderID, err := svc.Orders.CreateOrder(ctx, transport.CreateOrderRequest{
		UserID: user.ID,
		Items:  []transport.CreateOrderItem{{ProductID: product.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	require.Equal(t, 2, productStock(t, svc.DB, product.ID))

	detail, err := svc.Orders.GetOrderDetail(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	require.Equal(t, 3, detail.Items[0].Quantity)
	require.Equal(t, "120.00", detail.Items[0].UnitPrice.StringFixed(2))

	_, err = svc.Orders.CreateOrder(ctx, transport.CreateOrderRequest{
		UserID: user.ID,
		Items:  []transport.CreateOrderItem{{ProductID: product.ID, Quantity: 3}},
	})
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), "insufficient stock")
	require.Equal(t, 2, productStock(t, svc.DB, product.ID))
}

func TestConcurrentOrdersForLastUnit(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := seedUser(t, svc.DB, "katya@example.com")
	category := seedCategory(t, svc.DB, "Video Games")
	product := seedProduct(t, svc.DB, category.ID, "SKU00000013", "49.99", 1)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Orders.CreateOrder(ctx, transport.CreateOrderRequest{
				UserID: user.ID,
				Items:  []transport.CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, failed int
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, ErrValidation)
			require.Contains(t, err.Error(), "insufficient stock")
			failed++
		}
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, 1, failed)
	require.Equal(t, 0, productStock(t, svc.DB, product.ID))
}

func TestGetOrderDetailNotFound(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.Orders.GetOrderDetail(context.Background(), 777)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetOrderDetailDeterministicItemOrder(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	user := seedUser(t, svc.DB, "leon@example.com")
	category := seedCategory(t, svc.DB, "Crafts")
	p1 := seedProduct(t, svc.DB, category.ID, "SKU00000014", "1.00", 10)
	p2 := seedProduct(t, svc.DB, category.ID, "SKU00000015", "2.00", 10)
	p3 := seedProduct(t, svc.DB, category.ID, "SKU00000016", "3.00", 10)

	orderID, err := svc.Orders.CreateOrder(ctx, transport.CreateOrderRequest{
		UserID: user.ID,
		Items: []transport.CreateOrderItem{
			{ProductID: p2.ID, Quantity: 1},
			{ProductID: p3.ID, Quantity: 1},
			{ProductID: p1.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	first, err := svc.Orders.GetOrderDetail(ctx, orderID)
	require.NoError(t, err)
	second, err := svc.Orders.GetOrderDetail(ctx, orderID)
	require.NoError(t, err)

	require.Equal(t, first.Items, second.Items)
	for i := 1; i < len(first.Items); i++ {
		require.Less(t, first.Items[i-1].ID, first.Items[i].ID)
	}
}

func TestListOrdersFilterByUser(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	u1 := seedUser(t, svc.DB, "marta@example.com")
	u2 := seedUser(t, svc.DB, "nikola@example.com")
	category := seedCategory(t, svc.DB, "Grocery")
	product := seedProduct(t, svc.DB, category.ID, "SKU00000017", "9.99", 50)

	for _, userID := range []int64{u1.ID, u1.ID, u2.ID} {
		_, err := svc.Orders.CreateOrder(ctx, transport.CreateOrderRequest{
			UserID: userID,
			Items:  []transport.CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	total, items, err := svc.Orders.ListOrders(ctx, repo.OrderFilter{UserID: &u1.ID}, 25, 0)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	for _, order := range items {
		require.Equal(t, u1.ID, order.UserID)
	}
}
