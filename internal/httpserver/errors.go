package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/orderdesk/order-api/internal/service"
)

// serviceError maps the service error taxonomy onto HTTP codes. Conflicts
// surface as 400 like the rest of the caller-fault family; only unknown
// errors become 500.
func serviceError(l *slog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn(op+"_failed", "status", 400, "reason", "validation", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, errDetail(err))
	case errors.Is(err, service.ErrConflict):
		l.Warn(op+"_failed", "status", 400, "reason", "conflict", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, errDetail(err))
	case errors.Is(err, service.ErrNotFound):
		l.Warn(op+"_failed", "status", 404, "reason", "not found", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, errDetail(err))
	default:
		l.Error(op+"_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func errDetail(err error) string {
	msg := err.Error()
	for _, prefix := range []string{"validation: ", "conflict: ", "not found: "} {
		msg = strings.TrimPrefix(msg, prefix)
	}
	return msg
}
