package cart

// AddRequest payload for adding units of a product.
// swagger:model CartAddRequest
type AddRequest struct {
	TelegramID string `json:"telegram_id" example:"123456789"`
	ProductID  string `json:"product_id"  example:"PROD003"`
	Quantity   int    `json:"quantity"    example:"2"`
}

// RemoveRequest payload for dropping a product's line.
// swagger:model CartRemoveRequest
type RemoveRequest struct {
	TelegramID string `json:"telegram_id"`
	ProductID  string `json:"product_id"`
}

// ClearRequest payload for emptying the cart.
// swagger:model CartClearRequest
type ClearRequest struct {
	TelegramID string `json:"telegram_id"`
}
