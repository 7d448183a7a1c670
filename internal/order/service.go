package order

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/telemart/telemart-backend/internal/cart"
	"github.com/telemart/telemart-backend/internal/product"
	"github.com/telemart/telemart-backend/internal/user"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrInvalidStatus  = errors.New("invalid status")
	ErrNotCancellable = errors.New("order can no longer be cancelled")
)

// Service is the order engine: it materializes carts into orders and
// owns the status lifecycle, including the stock movements on checkout
// and cancellation.
type Service struct {
	orders   Repository
	users    user.Repository
	products product.Repository
}

func NewService(orders Repository, users user.Repository, products product.Repository) *Service {
	return &Service{orders: orders, users: users, products: products}
}

// Create checks out the user's cart: snapshots items and total,
// decrements stock, clears the cart and records the order as PENDING.
// Stock was checked when items entered the cart; if another order beat
// this one to the remaining units, the failed decrement is rolled back
// and the checkout fails instead of driving stock negative.
func (s *Service) Create(ctx context.Context, telegramID, deliveryAddress, paymentMethod string) (*Order, error) {
	u, err := s.users.GetByID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if len(u.Cart) == 0 {
		return nil, ErrEmptyCart
	}
	if paymentMethod == "" {
		paymentMethod = "NOT_SPECIFIED"
	}

	for i, it := range u.Cart {
		if _, err := s.products.AdjustStock(ctx, it.ProductID, -it.Quantity); err != nil {
			for _, done := range u.Cart[:i] {
				if _, rerr := s.products.AdjustStock(ctx, done.ProductID, done.Quantity); rerr != nil {
					log.Printf("[order] rollback restock %s failed: %v", done.ProductID, rerr)
				}
			}
			return nil, err
		}
	}

	now := time.Now().UTC()
	o := &Order{
		OrderID:         uuid.NewString(),
		TelegramID:      telegramID,
		User:            u.Username,
		Items:           u.Cart,
		Total:           cart.Total(u.Cart).StringFixed(2),
		Status:          StatusPending,
		DeliveryAddress: deliveryAddress,
		PaymentMethod:   paymentMethod,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	if err := s.users.UpdateCart(ctx, telegramID, nil); err != nil {
		return nil, err
	}
	if err := s.users.AppendOrder(ctx, telegramID, o.OrderID); err != nil {
		return nil, err
	}
	return o, nil
}

// SetStatus overwrites the order's status. Membership in the status
// enum is the only guard; legality of the transition is not checked,
// cancellation goes through Cancel which is stricter.
func (s *Service) SetStatus(ctx context.Context, orderID string, status string) (*Order, error) {
	st := Status(status)
	if !st.Valid() {
		return nil, ErrInvalidStatus
	}
	if err := s.orders.UpdateStatus(ctx, orderID, st); err != nil {
		return nil, err
	}
	return s.orders.GetByID(ctx, orderID)
}

// Cancel moves a non-terminal order to CANCELLED and returns its items
// to stock. DELIVERED and CANCELLED orders cannot be cancelled.
func (s *Service) Cancel(ctx context.Context, orderID string) (*Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status.Terminal() {
		return nil, ErrNotCancellable
	}
	for _, it := range o.Items {
		if _, err := s.products.AdjustStock(ctx, it.ProductID, it.Quantity); err != nil {
			log.Printf("[order] restock %s on cancel failed: %v", it.ProductID, err)
		}
	}
	if err := s.orders.UpdateStatus(ctx, orderID, StatusCancelled); err != nil {
		return nil, err
	}
	return s.orders.GetByID(ctx, orderID)
}

// Get returns a single order by id.
func (s *Service) Get(ctx context.Context, orderID string) (*Order, error) {
	return s.orders.GetByID(ctx, orderID)
}

// ListByUser resolves the user's order references in creation order.
func (s *Service) ListByUser(ctx context.Context, telegramID string) ([]Order, error) {
	u, err := s.users.GetByID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	out := make([]Order, 0, len(u.Orders))
	for _, id := range u.Orders {
		o, err := s.orders.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, nil
}
