package httpserver

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"storefront/internal/events"
	"storefront/internal/logging"
	"storefront/internal/search"
	"storefront/internal/service"
)

type ProductHTTP struct {
	Svc      *service.CatalogService
	Index    *search.Index
	Producer *events.Producer
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	items, err := h.Svc.GetProducts(ctx)
	if err != nil {
		l.Error("get_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_product_error", "status", 404, "reason", "id not a uuid")
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return httpError(err, "cannot get product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req service.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	created, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return httpError(err, "cannot create product")
	}

	publish(c, h.Producer, "product_events", created.ID.String(), map[string]any{
		"type": "product_created",
		"name": created.Name,
	})

	l.Info("create_product_success", "product_id", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (h *ProductHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("product_update_error", "status", 400, "reason", "id not a uuid")
		return echo.NewHTTPError(http.StatusBadRequest, "id not a uuid")
	}

	var req service.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_update_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.PatchProduct(ctx, req, id)
	if err != nil {
		return httpError(err, "cannot update product")
	}

	publish(c, h.Producer, "product_events", prod.ID.String(), map[string]any{
		"type": "product_updated",
		"name": prod.Name,
	})

	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("product_delete_error", "status", 404, "reason", "id not a uuid")
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return httpError(err, "cannot delete product")
	}

	publish(c, h.Producer, "product_events", id.String(), map[string]any{
		"type": "product_deleted",
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted"})
}

func (h *ProductHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query required")
	}

	from, _ := strconv.Atoi(c.QueryParam("from"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	if size <= 0 {
		size = 20
	}

	total, products, err := h.Index.Search(ctx, q, from, size)
	if err != nil {
		if err == search.ErrUnavailable {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "search unavailable")
		}
		l.Error("search_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
