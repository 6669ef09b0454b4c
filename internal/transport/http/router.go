package httpserver

import (
	"github.com/Skotchmaster/pos_system/internal/handlers"
	"github.com/Skotchmaster/pos_system/internal/middleware/auth"
	"github.com/labstack/echo/v4"
)

type Deps struct {
	AuthHandler      *handlers.AuthHandler
	ProductHandler   *handlers.ProductHandler
	CategoryHandler  *handlers.CategoryHandler
	UserHandler      *handlers.UserHandler
	ShiftHandler     *handlers.ShiftHandler
	OrderHandler     *handlers.OrderHandler
	DashboardHandler *handlers.DashboardHandler
	Tokens           *auth.TokenService
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/refresh", d.AuthHandler.Refresh)
	v1.POST("/logout", d.AuthHandler.LogOut)

	products := v1.Group("/products", d.Tokens.RequireLogin)
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/search", d.ProductHandler.Search)
	products.GET("/barcode/:barcode", d.ProductHandler.GetByBarcode)
	products.GET("/:id", d.ProductHandler.GetProduct)

	categories := v1.Group("/categories", d.Tokens.RequireLogin)
	categories.GET("", d.CategoryHandler.GetAll)
	categories.GET("/:id", d.CategoryHandler.Get)

	shifts := v1.Group("/shifts", d.Tokens.RequireLogin)
	shifts.GET("/current", d.ShiftHandler.GetCurrent)
	shifts.POST("/open", d.ShiftHandler.Open)
	shifts.POST("/close", d.ShiftHandler.Close)

	orders := v1.Group("/orders", d.Tokens.RequireLogin)
	orders.POST("", d.OrderHandler.Create)
	orders.GET("", d.OrderHandler.GetAll)
	orders.GET("/:id", d.OrderHandler.GetByID)

	v1.GET("/dashboard/stats", d.DashboardHandler.GetStats, d.Tokens.RequireLogin)

	admin := v1.Group("/admin", d.Tokens.RequireAdmin)

	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)

	admin.POST("/categories", d.CategoryHandler.Create)
	admin.PUT("/categories/:id", d.CategoryHandler.Update)
	admin.DELETE("/categories/:id", d.CategoryHandler.Delete)

	admin.GET("/users", d.UserHandler.GetAll)
	admin.GET("/users/:id", d.UserHandler.Get)
	admin.POST("/users", d.UserHandler.Create)
	admin.PUT("/users/:id", d.UserHandler.Update)
	admin.DELETE("/users/:id", d.UserHandler.Disable)
}
