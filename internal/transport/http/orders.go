package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hariskhan14/bazario/internal/auth"
	"github.com/hariskhan14/bazario/internal/cart"
	"github.com/hariskhan14/bazario/internal/checkout"
	"github.com/hariskhan14/bazario/internal/logging"
	"github.com/hariskhan14/bazario/internal/models"
	"github.com/hariskhan14/bazario/internal/service/orders"
	"github.com/hariskhan14/bazario/internal/util"
	"github.com/hariskhan14/bazario/internal/whatsapp"
)

type OrderHandler struct {
	Svc            *orders.Service
	WhatsAppNumber string
}

type CheckoutRequest struct {
	checkout.Input
	Items []cart.Line `json:"items"`
}

type CheckoutResponse struct {
	OrderNumber  string        `json:"order_number"`
	Order        *models.Order `json:"order"`
	WhatsAppLink string        `json:"whatsapp_link,omitempty"`
}

func (h *OrderHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.checkout")

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.Checkout(ctx, auth.CurrentSession(c), req.Input, req.Items)
	if err != nil {
		mapped := orderError(l, "checkout_error", err)
		if he, ok := mapped.(*echo.HTTPError); ok && he.Code == http.StatusInternalServerError {
			he.Message = "failed to create order, please try again"
		}
		return mapped
	}

	resp := CheckoutResponse{
		OrderNumber: order.OrderNumber,
		Order:       order,
	}
	if h.WhatsAppNumber != "" {
		resp.WhatsAppLink = whatsapp.ConfirmationLink(h.WhatsAppNumber, order)
	}

	l.Info("checkout_success", "order_number", order.OrderNumber)
	return c.JSON(http.StatusCreated, resp)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.get_order")

	order, err := h.Svc.OrderByNumber(ctx, auth.CurrentSession(c), c.Param("number"))
	if err != nil {
		return orderError(l, "get_order_error", err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.list_orders")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	list, total, err := h.Svc.ListOrders(ctx, auth.CurrentSession(c), offset, limit)
	if err != nil {
		return orderError(l, "list_orders_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": list, "total": total, "page": page, "size": limit})
}

func (h *OrderHandler) ListAllOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.list_all_orders")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	list, total, err := h.Svc.ListAllOrders(ctx, auth.CurrentSession(c), offset, limit)
	if err != nil {
		return orderError(l, "list_all_orders_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": list, "total": total, "page": page, "size": limit})
}

func (h *OrderHandler) GetOrderAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.get_order_admin")

	order, err := h.Svc.OrderByNumber(ctx, auth.CurrentSession(c), c.Param("number"))
	if err != nil {
		return orderError(l, "get_order_admin_error", err)
	}
	return c.JSON(http.StatusOK, order)
}

type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.update_status")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateStatus(ctx, auth.CurrentSession(c), uint(id), req.Status); err != nil {
		return orderError(l, "update_status_error", err)
	}

	order := echo.Map{"id": id, "status": req.Status}
	return c.JSON(http.StatusOK, order)
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus models.PaymentStatus `json:"payment_status"`
}

func (h *OrderHandler) UpdatePaymentStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.update_payment_status")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req UpdatePaymentStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdatePaymentStatus(ctx, auth.CurrentSession(c), uint(id), req.PaymentStatus); err != nil {
		return orderError(l, "update_payment_status_error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"id": id, "payment_status": req.PaymentStatus})
}

// orderError maps the service's sentinel errors onto HTTP codes without
// leaking storage detail.
func orderError(l *slog.Logger, event string, err error) error {
	switch {
	case errors.Is(err, orders.ErrUnauthorized):
		l.Warn(event, "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "must be logged in to checkout")
	case errors.Is(err, orders.ErrForbidden):
		l.Warn(event, "status", 403, "error", err)
		return echo.NewHTTPError(http.StatusForbidden, "admin role required")
	case errors.Is(err, orders.ErrEmptyCart):
		l.Warn(event, "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "cart is empty")
	case errors.Is(err, orders.ErrValidation):
		l.Warn(event, "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid checkout data")
	case errors.Is(err, orders.ErrNotFound):
		l.Warn(event, "status", 404, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	case errors.Is(err, orders.ErrInsufficientStock):
		l.Warn(event, "status", 409, "error", err)
		return echo.NewHTTPError(http.StatusConflict, "insufficient stock")
	default:
		l.Error(event, "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
