package models

import "github.com/shopspring/decimal"

// OrderEntry is one submitted line of a create-order request. Price is the
// caller-supplied line amount that accrues to the order total as-is.
type OrderEntry struct {
	ProdID   string          `json:"prod_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type CreateOrderRequest struct {
	Order []OrderEntry `json:"order"`
}

type UpdateOrderRequest struct {
	ProdID   string `json:"prod_id"`
	Quantity int    `json:"quantity"`
}

type DeleteOrderRequest struct {
	ProdID string `json:"prod_id"`
}
