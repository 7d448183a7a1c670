package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/telemart/telemart-backend/internal/admin"
	"github.com/telemart/telemart-backend/internal/cart"
	"github.com/telemart/telemart-backend/internal/order"
	"github.com/telemart/telemart-backend/internal/product"
	"github.com/telemart/telemart-backend/internal/store"
	"github.com/telemart/telemart-backend/internal/user"
)

// renderError maps domain sentinel errors onto the HTTP taxonomy:
// unknown id -> 404, bad credential -> 401, business-rule rejections
// and bad input -> 400, anything else -> 500 with message passthrough.
func renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrNotFound),
		errors.Is(err, product.ErrNotFound),
		errors.Is(err, order.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, admin.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, product.ErrInsufficientStock),
		errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrNotCancellable),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, admin.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// ===== users =====

// registerUserHandler creates the user on first sight and returns the
// stored record unchanged on every later call (idempotent).
func registerUserHandler(users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid json")
			return
		}
		if req.TelegramID == "" {
			badRequest(c, "telegram_id is required")
			return
		}
		u, err := users.GetByID(c.Request.Context(), req.TelegramID)
		if errors.Is(err, user.ErrNotFound) {
			nu := &user.User{
				TelegramID: req.TelegramID,
				Username:   defaultIfEmpty(req.Username, "Unknown"),
				FirstName:  defaultIfEmpty(req.FirstName, "User"),
				CreatedAt:  time.Now().UTC(),
			}
			if cerr := users.Create(c.Request.Context(), nu); cerr != nil && !errors.Is(cerr, user.ErrAlreadyExist) {
				renderError(c, cerr)
				return
			}
			u, err = users.GetByID(c.Request.Context(), req.TelegramID)
		}
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "user": u})
	}
}

func getUserHandler(users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := users.GetByID(c.Request.Context(), c.Param("telegram_id"))
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// ===== products =====

func listProductsHandler(products product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := products.List(c.Request.Context())
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, product.ListResponse{Products: list, Count: len(list)})
	}
}

func getProductHandler(products product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := products.GetByID(c.Request.Context(), c.Param("product_id"))
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// ===== cart =====

func addToCartHandler(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cart.AddRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid json")
			return
		}
		if req.TelegramID == "" || req.ProductID == "" || req.Quantity == 0 {
			badRequest(c, "missing required fields")
			return
		}
		items, err := carts.Add(c.Request.Context(), req.TelegramID, req.ProductID, req.Quantity)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "cart": items})
	}
}

func viewCartHandler(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := carts.View(c.Request.Context(), c.Param("telegram_id"))
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

func removeFromCartHandler(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cart.RemoveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid json")
			return
		}
		if req.TelegramID == "" || req.ProductID == "" {
			badRequest(c, "missing required fields")
			return
		}
		items, err := carts.Remove(c.Request.Context(), req.TelegramID, req.ProductID)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "cart": items})
	}
}

func clearCartHandler(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cart.ClearRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid json")
			return
		}
		if req.TelegramID == "" {
			badRequest(c, "telegram_id is required")
			return
		}
		if err := carts.Clear(c.Request.Context(), req.TelegramID); err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "cart cleared"})
	}
}

// ===== orders =====

func createOrderHandler(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid json")
			return
		}
		if req.TelegramID == "" || req.DeliveryAddress == "" {
			badRequest(c, "missing required fields")
			return
		}
		o, err := orders.Create(c.Request.Context(), req.TelegramID, req.DeliveryAddress, req.PaymentMethod)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "order": o})
	}
}

func listUserOrdersHandler(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.ListByUser(c.Request.Context(), c.Param("telegram_id"))
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": list})
	}
}

func getOrderHandler(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := orders.Get(c.Request.Context(), c.Param("order_id"))
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func updateOrderStatusHandler(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid json")
			return
		}
		o, err := orders.SetStatus(c.Request.Context(), c.Param("order_id"), req.Status)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "order": o})
	}
}

func cancelOrderHandler(orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := orders.Cancel(c.Request.Context(), c.Param("order_id"))
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "order": o})
	}
}

// ===== admin =====

func adminRestockHandler(admins *admin.Service, verify admin.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req admin.RestockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid json")
			return
		}
		if err := verify.Verify(req.AdminToken); err != nil {
			renderError(c, err)
			return
		}
		if req.ProductID == "" {
			badRequest(c, "product_id is required")
			return
		}
		res, err := admins.Restock(c.Request.Context(), req.ProductID, req.Quantity)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "restock": res})
	}
}

func adminInventoryHandler(admins *admin.Service, verify admin.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := verify.Verify(c.Query("admin_token")); err != nil {
			renderError(c, err)
			return
		}
		list, err := admins.Inventory(c.Request.Context())
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "products": list, "count": len(list)})
	}
}

func adminDatabaseStatusHandler(st *store.Store, verify admin.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := verify.Verify(c.Query("admin_token")); err != nil {
			renderError(c, err)
			return
		}
		status, err := st.Status(c.Request.Context())
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "database": status})
	}
}

// ===== health =====

func healthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	}
}

func defaultIfEmpty(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
