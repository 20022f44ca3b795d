package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mwauth "storefront/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	ProductHandler *ProductHTTP
	CartHandler    *CartHTTP
	OrderHandler   *OrderHTTP
	JWTSecret      []byte
}

// Register wires the route table. Paths and their auth gates mirror the
// deployed contract exactly, including two known gaps kept for
// compatibility: POST /products and GET /auth/users take no token.
func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := mwauth.New(d.JWTSecret)

	auth := e.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.GET("/users", d.AuthHandler.ListUsers)

	products := e.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/search", d.ProductHandler.SearchProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct)
	products.PUT("/:id", d.ProductHandler.UpdateProduct, authMW.RequireAdmin)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, authMW.RequireAdmin)

	cart := e.Group("/cart", authMW.RequireAuth)
	cart.GET("/getCart", d.CartHandler.GetCart)
	cart.POST("/add", d.CartHandler.AddToCart)
	cart.POST("/update", d.CartHandler.UpdateCart)
	cart.PUT("/update-quantity", d.CartHandler.UpdateQuantity)
	cart.DELETE("/remove/:productId", d.CartHandler.RemoveFromCart)
	cart.DELETE("/clear", d.CartHandler.ClearCart)

	orders := e.Group("/orders", authMW.RequireAuth)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("", d.OrderHandler.GetOrders)
	orders.PUT("/:orderId/cancel", d.OrderHandler.CancelOrder)
}
