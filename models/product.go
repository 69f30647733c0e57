package models

import "github.com/shopspring/decimal"

type Product struct {
	ProdID      string          `json:"prod_id"`
	Name        string          `json:"name"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}
