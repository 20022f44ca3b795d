package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"storefront/internal/events"
	"storefront/internal/logging"
	"storefront/internal/service"
)

type OrderHTTP struct {
	Svc      *service.OrderService
	Producer *events.Producer
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	userID, err := getUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "Access denied")
	}

	var req service.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateOrder(ctx, req, userID)
	if err != nil {
		return httpError(err, "cannot create order")
	}

	publish(c, h.Producer, "order_events", order.ID.String(), map[string]any{
		"type":   "order_created",
		"amount": order.Amount,
	})

	l.Info("create_order_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	userID, err := getUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "Access denied")
	}

	orders, err := h.Svc.ListOrders(ctx, userID)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list orders")
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.cancel")

	userID, err := getUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "Access denied")
	}

	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		l.Warn("cancel_order_error", "status", 404, "reason", "orderId not a uuid")
		return echo.NewHTTPError(http.StatusNotFound, "Order not found")
	}

	if err := h.Svc.CancelOrder(ctx, orderID, userID); err != nil {
		return httpError(err, "cannot cancel order")
	}

	publish(c, h.Producer, "order_events", orderID.String(), map[string]any{
		"type": "order_cancelled",
	})

	return c.JSON(http.StatusOK, "Order cancelled successfully")
}
