package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/telemart/telemart-backend/internal/admin"
	"github.com/telemart/telemart-backend/internal/cart"
	"github.com/telemart/telemart-backend/internal/httpx"
	"github.com/telemart/telemart-backend/internal/order"
	"github.com/telemart/telemart-backend/internal/product"
	"github.com/telemart/telemart-backend/internal/store"
	"github.com/telemart/telemart-backend/internal/user"
)

type deps struct {
	users    user.Repository
	products product.Repository
	carts    *cart.Service
	orders   *order.Service
	admins   *admin.Service
	verify   admin.Verifier
	store    *store.Store
}

func newRouter(d deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(), httpx.CORS(), httpx.PersistAfterWrite(d.store))

	api := r.Group("/api")

	api.POST("/users/register", registerUserHandler(d.users))
	api.GET("/users/:telegram_id", getUserHandler(d.users))

	api.GET("/products", listProductsHandler(d.products))
	api.GET("/products/:product_id", getProductHandler(d.products))

	api.POST("/cart/add", addToCartHandler(d.carts))
	api.GET("/cart/:telegram_id", viewCartHandler(d.carts))
	api.POST("/cart/remove", removeFromCartHandler(d.carts))
	api.POST("/cart/clear", clearCartHandler(d.carts))

	api.POST("/orders/create", createOrderHandler(d.orders))
	api.GET("/orders/user/:telegram_id", listUserOrdersHandler(d.orders))
	api.GET("/orders/:order_id", getOrderHandler(d.orders))
	api.PUT("/orders/:order_id/status", updateOrderStatusHandler(d.orders))
	api.POST("/orders/:order_id/cancel", cancelOrderHandler(d.orders))

	api.POST("/admin/restock", adminRestockHandler(d.admins, d.verify))
	api.GET("/admin/inventory", adminInventoryHandler(d.admins, d.verify))
	api.GET("/admin/database-status", adminDatabaseStatusHandler(d.store, d.verify))

	api.GET("/health", healthHandler())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})
	return r
}
