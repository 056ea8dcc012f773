package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hariskhan14/bazario/internal/auth"
	"github.com/hariskhan14/bazario/internal/logging"
	"github.com/hariskhan14/bazario/internal/service/catalog"
	"github.com/hariskhan14/bazario/internal/util"
)

type CatalogHandler struct {
	Svc *catalog.Service
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_products")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	summaries, total, err := h.Svc.ListProducts(ctx, offset, limit)
	if err != nil {
		return catalogError(l, "list_products_error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": summaries,
		"meta": echo.Map{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_product")

	product, err := h.Svc.ProductBySlug(ctx, c.Param("slug"))
	if err != nil {
		return catalogError(l, "get_product_error", err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_product")

	var req catalog.CreateProductInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.CreateProduct(ctx, auth.CurrentSession(c), req)
	if err != nil {
		return catalogError(l, "create_product_error", err)
	}

	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *CatalogHandler) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.patch_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req catalog.PatchProductInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.PatchProduct(ctx, auth.CurrentSession(c), uint(id), req)
	if err != nil {
		return catalogError(l, "patch_product_error", err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.DeleteProduct(ctx, auth.CurrentSession(c), uint(id)); err != nil {
		return catalogError(l, "delete_product_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHandler) AddVariant(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.add_variant")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req catalog.VariantInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	variant, err := h.Svc.AddVariant(ctx, auth.CurrentSession(c), uint(id), req)
	if err != nil {
		return catalogError(l, "add_variant_error", err)
	}
	return c.JSON(http.StatusCreated, variant)
}

func (h *CatalogHandler) PatchVariant(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.patch_variant")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req catalog.PatchVariantInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	variant, err := h.Svc.PatchVariant(ctx, auth.CurrentSession(c), uint(id), req)
	if err != nil {
		return catalogError(l, "patch_variant_error", err)
	}
	return c.JSON(http.StatusOK, variant)
}

func catalogError(l *slog.Logger, event string, err error) error {
	switch {
	case errors.Is(err, catalog.ErrForbidden):
		l.Warn(event, "status", 403, "error", err)
		return echo.NewHTTPError(http.StatusForbidden, "admin role required")
	case errors.Is(err, catalog.ErrValidation):
		l.Warn(event, "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product data")
	case errors.Is(err, catalog.ErrNotFound):
		l.Warn(event, "status", 404, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	default:
		l.Error(event, "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
