package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orderdesk/order-api/internal/logging"
	"github.com/orderdesk/order-api/internal/service"
	"github.com/orderdesk/order-api/internal/transport"
)

type AnalyticsHandler struct {
	Svc *service.AnalyticsService
}

func (h *AnalyticsHandler) DailySales(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "analytics.daily_sales")

	startDate, err := parseTimeParam(c.QueryParam("start_date"))
	if err != nil {
		l.Warn("daily_sales_failed", "status", 400, "reason", "invalid start_date", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid start_date")
	}
	endDate, err := parseTimeParam(c.QueryParam("end_date"))
	if err != nil {
		l.Warn("daily_sales_failed", "status", 400, "reason", "invalid end_date", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid end_date")
	}

	points, err := h.Svc.DailySales(ctx, startDate, endDate)
	if err != nil {
		return serviceError(l, "daily_sales", err)
	}

	return c.JSON(http.StatusOK, transport.AnalyticsResponse{Items: points})
}
