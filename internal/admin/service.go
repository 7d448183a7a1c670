package admin

import (
	"context"
	"errors"
	"log"

	"github.com/telemart/telemart-backend/internal/product"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

// RestockRequest payload for a stock top-up.
// swagger:model RestockRequest
type RestockRequest struct {
	AdminToken string `json:"admin_token"`
	ProductID  string `json:"product_id" example:"PROD001"`
	Quantity   int    `json:"quantity"   example:"10"`
}

// RestockResult reports the stock movement.
type RestockResult struct {
	ProductID     string `json:"product_id"`
	Added         int    `json:"added"`
	PreviousStock int    `json:"previous_stock"`
	NewStock      int    `json:"new_stock"`
}

type Service struct {
	products product.Repository
}

func NewService(products product.Repository) *Service {
	return &Service{products: products}
}

// Restock adds quantity units to the product's stock.
func (s *Service) Restock(ctx context.Context, productID string, quantity int) (*RestockResult, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	newStock, err := s.products.AdjustStock(ctx, productID, quantity)
	if err != nil {
		return nil, err
	}
	log.Printf("[admin] restock %s +%d -> %d", productID, quantity, newStock)
	return &RestockResult{
		ProductID:     productID,
		Added:         quantity,
		PreviousStock: newStock - quantity,
		NewStock:      newStock,
	}, nil
}

// Inventory returns the whole catalog with current stock levels.
func (s *Service) Inventory(ctx context.Context) ([]product.Product, error) {
	return s.products.List(ctx)
}
