package order

// CreateOrderRequest payload for checkout.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	TelegramID      string `json:"telegram_id"      example:"123456789"`
	DeliveryAddress string `json:"delivery_address" example:"221B Baker Street"`
	PaymentMethod   string `json:"payment_method"   example:"CARD"`
}

// UpdateStatusRequest payload for a status change.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" example:"SHIPPED"`
}
