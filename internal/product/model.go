package product

import "github.com/shopspring/decimal"

// Product is a catalog entry. Price is decimal to avoid rounding errors
// (marshalled as a JSON string, NUMERIC -> string on the wire).
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
}

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: not found
	Error string `json:"error"`
}

// ListResponse is the catalog listing payload.
// swagger:model
type ListResponse struct {
	Products []Product `json:"products"`
	Count    int       `json:"count"`
}
