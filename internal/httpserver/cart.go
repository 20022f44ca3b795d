package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"storefront/internal/logging"
	"storefront/internal/service"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := getUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "Access denied")
	}

	items, err := h.Svc.PruneAndGet(ctx, userID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching cart")
	}

	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, err := getUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "Access denied")
	}

	var req struct {
		ProductID uuid.UUID `json:"productId"`
		Quantity  int       `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	items, err := h.Svc.Add(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		return httpError(err, "Error adding to cart")
	}

	return c.JSON(http.StatusCreated, echo.Map{"items": items})
}

// UpdateCart is the bulk-replace entry point: it trusts the posted item set
// verbatim, unlike AddToCart and UpdateQuantity.
func (h *CartHTTP) UpdateCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	userID, err := getUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "Access denied")
	}

	var req struct {
		Items []service.ReplaceLine `json:"items"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	items, err := h.Svc.Replace(ctx, userID, req.Items)
	if err != nil {
		return httpError(err, "Error updating cart")
	}

	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_quantity")

	userID, err := getUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "Access denied")
	}

	// Quantity binds through a pointer so an absent field is told apart
	// from an explicit zero, which removes the line.
	var req struct {
		ProductID uuid.UUID `json:"productId"`
		Quantity  *int      `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_quantity_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Quantity == nil {
		l.Warn("update_quantity_error", "status", 400, "reason", "quantity missing")
		return echo.NewHTTPError(http.StatusBadRequest, "Product ID and quantity are required")
	}

	items, err := h.Svc.SetQuantity(ctx, userID, req.ProductID, *req.Quantity)
	if err != nil {
		return httpError(err, "Error updating cart quantity")
	}

	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	userID, err := getUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "Access denied")
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		l.Warn("remove_from_cart_error", "status", 404, "reason", "productId not a uuid")
		return echo.NewHTTPError(http.StatusNotFound, "Product not found in cart")
	}

	items, err := h.Svc.Remove(ctx, userID, productID)
	if err != nil {
		return httpError(err, "Error removing from cart")
	}

	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	userID, err := getUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "Access denied")
	}

	items, err := h.Svc.Clear(ctx, userID)
	if err != nil {
		l.Error("clear_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error clearing cart")
	}

	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
