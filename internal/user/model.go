package user

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one line in a user's cart. Price is the snapshot taken
// when the product was first added; later catalog changes don't touch it.
type CartItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// User is a registered Telegram shopper. Orders holds order ids, the
// orders themselves live in the order repository.
type User struct {
	TelegramID string     `json:"telegram_id"`
	Username   string     `json:"username"`
	FirstName  string     `json:"first_name"`
	CreatedAt  time.Time  `json:"created_at"`
	Cart       []CartItem `json:"cart"`
	Orders     []string   `json:"orders"`
}

// RegisterRequest payload for user registration.
// swagger:model RegisterRequest
type RegisterRequest struct {
	TelegramID string `json:"telegram_id" example:"123456789"`
	Username   string `json:"username"    example:"johndoe"`
	FirstName  string `json:"first_name"  example:"John"`
}
