// Package cart implements the cart engine: line-item mutations against a
// user's cart with price snapshots taken from the catalog at add time.
package cart

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/telemart/telemart-backend/internal/product"
	"github.com/telemart/telemart-backend/internal/user"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

// Summary is the cart view payload: items plus the running total fixed
// to two decimals.
type Summary struct {
	Cart      []user.CartItem `json:"cart"`
	Total     string          `json:"total"`
	ItemCount int             `json:"item_count"`
}

type Service struct {
	users    user.Repository
	products product.Repository
}

func NewService(users user.Repository, products product.Repository) *Service {
	return &Service{users: users, products: products}
}

// Add puts quantity units of the product into the user's cart. A line
// for the same product accumulates quantity and keeps its original
// price snapshot; a new line snapshots the current catalog price.
func (s *Service) Add(ctx context.Context, telegramID, productID string, quantity int) ([]user.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	u, err := s.users.GetByID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.Stock < quantity {
		return nil, product.ErrInsufficientStock
	}

	cart := u.Cart
	found := false
	for i := range cart {
		if cart[i].ProductID == productID {
			cart[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart = append(cart, user.CartItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  quantity,
		})
	}
	if err := s.users.UpdateCart(ctx, telegramID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// View returns the cart with its total (sum of price snapshots times
// quantities) and line count.
func (s *Service) View(ctx context.Context, telegramID string) (*Summary, error) {
	u, err := s.users.GetByID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	return &Summary{
		Cart:      u.Cart,
		Total:     Total(u.Cart).StringFixed(2),
		ItemCount: len(u.Cart),
	}, nil
}

// Remove drops the line for productID if present. Removing an absent
// product is not an error.
func (s *Service) Remove(ctx context.Context, telegramID, productID string) ([]user.CartItem, error) {
	u, err := s.users.GetByID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	cart := u.Cart[:0]
	for _, it := range u.Cart {
		if it.ProductID != productID {
			cart = append(cart, it)
		}
	}
	if err := s.users.UpdateCart(ctx, telegramID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart unconditionally.
func (s *Service) Clear(ctx context.Context, telegramID string) error {
	if _, err := s.users.GetByID(ctx, telegramID); err != nil {
		return err
	}
	return s.users.UpdateCart(ctx, telegramID, nil)
}

// Total sums price snapshot times quantity across the given items.
func Total(items []user.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
