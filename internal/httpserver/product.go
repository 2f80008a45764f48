package httpserver

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/orderdesk/order-api/internal/es"
	"github.com/orderdesk/order-api/internal/logging"
	"github.com/orderdesk/order-api/internal/repo"
	"github.com/orderdesk/order-api/internal/service"
	"github.com/orderdesk/order-api/internal/transport"
	"github.com/orderdesk/order-api/internal/util"
)

type ProductHandler struct {
	Svc   *service.CatalogService
	ES    *elasticsearch.Client
	Index string
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list_products")

	limit, offset := util.ParseLimitOffset(c.QueryParam("limit"), c.QueryParam("offset"))

	var filter repo.ProductFilter
	if v := c.QueryParam("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			l.Warn("list_products_failed", "status", 400, "reason", "category_id is not an integer", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "category_id is not an integer")
		}
		filter.CategoryID = &id
	}
	filter.Query = c.QueryParam("q")
	if v := c.QueryParam("min_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			l.Warn("list_products_failed", "status", 400, "reason", "min_price is not a decimal", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "min_price is not a decimal")
		}
		filter.MinPrice = &d
	}
	if v := c.QueryParam("max_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			l.Warn("list_products_failed", "status", 400, "reason", "max_price is not a decimal", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "max_price is not a decimal")
		}
		filter.MaxPrice = &d
	}

	total, items, err := h.Svc.ListProducts(ctx, filter, limit, offset)
	if err != nil {
		return serviceError(l, "list_products", err)
	}

	return c.JSON(http.StatusOK, transport.ProductList{
		Items:  items,
		Limit:  limit,
		Offset: offset,
		Total:  total,
	})
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return serviceError(l, "get_product", err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return serviceError(l, "create_product", err)
	}

	if h.ES != nil {
		indexCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := es.IndexProduct(indexCtx, h.ES, h.Index, product); err != nil {
			l.Error("index_product_failed", "product_id", product.ID, "error", err)
		}
	}

	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, product)
}
