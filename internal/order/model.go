package order

import (
	"time"

	"github.com/telemart/telemart-backend/internal/user"
)

// Status is the order lifecycle state. The success path is
// PENDING -> CONFIRMED -> PROCESSING -> SHIPPED -> DELIVERED;
// CANCELLED is reachable from any non-terminal state.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// Valid reports whether s is a member of the status enum.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s ends the lifecycle.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Order is materialized from a cart at checkout. Items and total are a
// frozen snapshot; only Status and UpdatedAt change afterwards.
type Order struct {
	OrderID         string          `json:"order_id"`
	TelegramID      string          `json:"telegram_id"`
	User            string          `json:"user"`
	Items           []user.CartItem `json:"items"`
	Total           string          `json:"total"` // fixed to 2 decimals
	Status          Status          `json:"status"`
	DeliveryAddress string          `json:"delivery_address"`
	PaymentMethod   string          `json:"payment_method"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
