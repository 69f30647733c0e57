package validators

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopapi/models"
)

func TestValidateCreateOrder(t *testing.T) {
	entry := func(prodID string, qty int, price string) models.OrderEntry {
		p, err := decimal.NewFromString(price)
		require.NoError(t, err)
		return models.OrderEntry{ProdID: prodID, Quantity: qty, Price: p}
	}

	tests := []struct {
		name    string
		req     models.CreateOrderRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  models.CreateOrderRequest{Order: []models.OrderEntry{entry("P1", 2, "10")}},
		},
		{
			name:    "empty order",
			req:     models.CreateOrderRequest{},
			wantErr: "Missing Order. Try Again",
		},
		{
			name:    "missing prod_id",
			req:     models.CreateOrderRequest{Order: []models.OrderEntry{entry("", 2, "10")}},
			wantErr: "Missing Product Id. Try Again",
		},
		{
			name:    "zero quantity",
			req:     models.CreateOrderRequest{Order: []models.OrderEntry{entry("P1", 0, "10")}},
			wantErr: "quantity must be a positive integer",
		},
		{
			name:    "negative price",
			req:     models.CreateOrderRequest{Order: []models.OrderEntry{entry("P1", 2, "-1")}},
			wantErr: "price must not be negative",
		},
		{
			name: "zero price is allowed",
			req:  models.CreateOrderRequest{Order: []models.OrderEntry{entry("P1", 2, "0")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreateOrder(&tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateUpdateOrder(t *testing.T) {
	assert.NoError(t, ValidateUpdateOrder(&models.UpdateOrderRequest{ProdID: "P1", Quantity: 3}))

	err := ValidateUpdateOrder(&models.UpdateOrderRequest{Quantity: 3})
	require.Error(t, err)
	var missing *MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "Product Id", missing.Field)

	assert.Error(t, ValidateUpdateOrder(&models.UpdateOrderRequest{ProdID: "P1", Quantity: 0}))
	assert.Error(t, ValidateUpdateOrder(&models.UpdateOrderRequest{ProdID: "P1", Quantity: -2}))
}

func TestValidateDeleteOrder(t *testing.T) {
	assert.NoError(t, ValidateDeleteOrder(&models.DeleteOrderRequest{ProdID: "P1"}))

	err := ValidateDeleteOrder(&models.DeleteOrderRequest{})
	require.Error(t, err)
	assert.Equal(t, "Missing Product Id. Try Again", err.Error())
}
