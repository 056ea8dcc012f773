package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hariskhan14/bazario/internal/auth"
)

type Deps struct {
	Orders  *OrderHandler
	Catalog *CatalogHandler
	Search  *SearchHandler
	Auth    *auth.Verifier
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	v1.GET("/products", d.Catalog.ListProducts)
	v1.GET("/products/:slug", d.Catalog.GetProduct)
	if d.Search != nil && d.Search.ES != nil {
		v1.GET("/search", d.Search.Search)
	}

	user := v1.Group("", d.Auth.RequireLogin)

	user.POST("/checkout", d.Orders.Checkout)
	user.GET("/orders", d.Orders.ListOrders)
	user.GET("/orders/:number", d.Orders.GetOrder)

	admin := v1.Group("/admin", d.Auth.AdminOnly)

	admin.POST("/products", d.Catalog.CreateProduct)
	admin.PATCH("/products/:id", d.Catalog.PatchProduct)
	admin.DELETE("/products/:id", d.Catalog.DeleteProduct)
	admin.POST("/products/:id/variants", d.Catalog.AddVariant)
	admin.PATCH("/variants/:id", d.Catalog.PatchVariant)
	admin.GET("/orders", d.Orders.ListAllOrders)
	admin.GET("/orders/:number", d.Orders.GetOrderAdmin)
	admin.PATCH("/orders/:id/status", d.Orders.UpdateStatus)
	admin.PATCH("/orders/:id/payment-status", d.Orders.UpdatePaymentStatus)
}
