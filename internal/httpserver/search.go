package httpserver

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/orderdesk/order-api/internal/es"
	"github.com/orderdesk/order-api/internal/logging"
	"github.com/orderdesk/order-api/internal/transport"
	"github.com/orderdesk/order-api/internal/util"
)

type SearchHandler struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHandler) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search_products")

	if h.ES == nil {
		l.Warn("search_products_failed", "status", 503, "reason", "search not configured")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search not configured")
	}

	q := c.QueryParam("q")
	if q == "" {
		l.Warn("search_products_failed", "status", 400, "reason", "q required")
		return echo.NewHTTPError(http.StatusBadRequest, "q required")
	}

	limit, offset := util.ParseLimitOffset(c.QueryParam("limit"), c.QueryParam("offset"))

	total, items, err := es.SearchProducts(ctx, h.ES, h.Index, q, offset, limit)
	if err != nil {
		l.Error("search_products_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, transport.SearchResponse{Total: total, Items: items})
}
