package models

type Customer struct {
	CustID string `json:"cust_id"`
}
