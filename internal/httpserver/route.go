package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	UserHandler      *UserHandler
	CategoryHandler  *CategoryHandler
	ProductHandler   *ProductHandler
	OrderHandler     *OrderHandler
	AnalyticsHandler *AnalyticsHandler
	SearchHandler    *SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	users := e.Group("/users")
	users.GET("", d.UserHandler.ListUsers)
	users.GET("/:id", d.UserHandler.GetUser)
	users.POST("", d.UserHandler.CreateUser)

	categories := e.Group("/categories")
	categories.GET("", d.CategoryHandler.ListCategories)
	categories.POST("", d.CategoryHandler.CreateCategory)

	products := e.Group("/products")
	products.GET("", d.ProductHandler.ListProducts)
	products.GET("/search", d.SearchHandler.SearchProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct)

	orders := e.Group("/orders")
	orders.GET("", d.OrderHandler.ListOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.POST("", d.OrderHandler.CreateOrder)

	e.GET("/analytics/daily-sales", d.AnalyticsHandler.DailySales)
}
