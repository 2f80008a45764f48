package httpserver

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/orderdesk/order-api/internal/events"
	"github.com/orderdesk/order-api/internal/logging"
	"github.com/orderdesk/order-api/internal/repo"
	"github.com/orderdesk/order-api/internal/service"
	"github.com/orderdesk/order-api/internal/transport"
	"github.com/orderdesk/order-api/internal/util"
)

type OrderHandler struct {
	Svc      *service.OrderService
	Producer *events.Producer
}

func parseTimeParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_orders")

	limit, offset := util.ParseLimitOffset(c.QueryParam("limit"), c.QueryParam("offset"))

	var filter repo.OrderFilter
	if v := c.QueryParam("user_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			l.Warn("list_orders_failed", "status", 400, "reason", "user_id is not an integer", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "user_id is not an integer")
		}
		filter.UserID = &id
	}

	var err error
	if filter.StartDate, err = parseTimeParam(c.QueryParam("start_date")); err != nil {
		l.Warn("list_orders_failed", "status", 400, "reason", "invalid start_date", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid start_date")
	}
	if filter.EndDate, err = parseTimeParam(c.QueryParam("end_date")); err != nil {
		l.Warn("list_orders_failed", "status", 400, "reason", "invalid end_date", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid end_date")
	}

	total, items, err := h.Svc.ListOrders(ctx, filter, limit, offset)
	if err != nil {
		return serviceError(l, "list_orders", err)
	}

	return c.JSON(http.StatusOK, transport.OrderList{
		Items:  items,
		Limit:  limit,
		Offset: offset,
		Total:  total,
	})
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		l.Warn("get_order_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	detail, err := h.Svc.GetOrderDetail(ctx, id)
	if err != nil {
		return serviceError(l, "get_order", err)
	}

	return c.JSON(http.StatusOK, detail)
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	orderID, err := h.Svc.CreateOrder(ctx, req)
	if err != nil {
		return serviceError(l, "create_order", err)
	}

	detail, err := h.Svc.GetOrderDetail(ctx, orderID)
	if err != nil {
		l.Error("create_order_failed", "status", 500, "reason", "cannot load created order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load created order")
	}

	if h.Producer != nil {
		publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := h.Producer.PublishOrderCreated(publishCtx, detail); err != nil {
			l.Error("publish_order_created_failed", "order_id", detail.ID, "error", err)
		}
	}

	l.Info("create_order_success", "order_id", detail.ID)
	return c.JSON(http.StatusCreated, detail)
}
