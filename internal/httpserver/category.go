package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orderdesk/order-api/internal/logging"
	"github.com/orderdesk/order-api/internal/service"
	"github.com/orderdesk/order-api/internal/transport"
)

type CategoryHandler struct {
	Svc *service.CatalogService
}

func (h *CategoryHandler) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.list_categories")

	items, err := h.Svc.ListCategories(ctx)
	if err != nil {
		return serviceError(l, "list_categories", err)
	}

	return c.JSON(http.StatusOK, transport.CategoryList{Items: items})
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create_category")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_category_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	category, err := h.Svc.CreateCategory(ctx, req)
	if err != nil {
		return serviceError(l, "create_category", err)
	}

	l.Info("create_category_success", "category_id", category.ID)
	return c.JSON(http.StatusCreated, category)
}
