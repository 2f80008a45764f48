package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/orderdesk/order-api/internal/logging"
	"github.com/orderdesk/order-api/internal/service"
	"github.com/orderdesk/order-api/internal/transport"
	"github.com/orderdesk/order-api/internal/util"
)

type UserHandler struct {
	Svc *service.AccountService
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.list_users")

	limit, offset := util.ParseLimitOffset(c.QueryParam("limit"), c.QueryParam("offset"))

	total, items, err := h.Svc.ListUsers(ctx, limit, offset)
	if err != nil {
		return serviceError(l, "list_users", err)
	}

	return c.JSON(http.StatusOK, transport.UserList{
		Items:  items,
		Limit:  limit,
		Offset: offset,
		Total:  total,
	})
}

func (h *UserHandler) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get_user")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		l.Warn("get_user_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	user, err := h.Svc.GetUser(ctx, id)
	if err != nil {
		return serviceError(l, "get_user", err)
	}

	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.create_user")

	var req transport.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_user_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.CreateUser(ctx, req)
	if err != nil {
		return serviceError(l, "create_user", err)
	}

	l.Info("create_user_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, user)
}
