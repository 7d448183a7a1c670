package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/telemart/telemart-backend/internal/admin"
	"github.com/telemart/telemart-backend/internal/cart"
	"github.com/telemart/telemart-backend/internal/config"
	"github.com/telemart/telemart-backend/internal/order"
	"github.com/telemart/telemart-backend/internal/product"
	"github.com/telemart/telemart-backend/internal/store"
	"github.com/telemart/telemart-backend/internal/user"
)

func main() {
	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	products := product.NewMemRepo()
	users := user.NewMemRepo()
	orders := order.NewMemRepo()

	st := store.New(cfg.DataFile, products, users, orders)
	if err := st.Load(context.Background()); err != nil {
		log.Fatalf("[store] snapshot load failed: %v", err)
	}
	product.Seed(context.Background(), products)

	deps := deps{
		users:    users,
		products: products,
		carts:    cart.NewService(users, products),
		orders:   order.NewService(orders, users, products),
		admins:   admin.NewService(products),
		verify:   admin.NewVerifier(cfg.AdminToken, cfg.AdminTokenHash),
		store:    st,
	}
	r := newRouter(deps)

	log.Printf("shop-server listening on %s", cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
