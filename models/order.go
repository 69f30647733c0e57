package models

import "github.com/shopspring/decimal"

type Order struct {
	OrderID string          `json:"order_id"`
	Total   decimal.Decimal `json:"total"`
}

// OrderLine ties one product to one order. The price is captured when the
// line is written, it is not a live reference to Product.Price.
type OrderLine struct {
	OrderID  string          `json:"order_id"`
	ProdID   string          `json:"prod_id"`
	CustID   string          `json:"cust_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderItemView is a product record merged with its order line, as returned
// by GET /api/order/{cust_id}. ID carries the line's prod_id so the same
// product on two orders stays distinguishable by (id, order_id). Product
// fields are pointers: a line whose product was removed from the catalog
// still renders, with those fields absent.
type OrderItemView struct {
	ID          string           `json:"id"`
	ProdID      *string          `json:"prod_id,omitempty"`
	Name        *string          `json:"name,omitempty"`
	Image       *string          `json:"image,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Quantity    int              `json:"quantity"`
	OrderID     string           `json:"order_id"`
}
