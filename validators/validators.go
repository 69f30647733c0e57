package validators

import (
	"fmt"

	"shopapi/models"
)

// MissingFieldError reports a required request key that was not supplied.
// Its message format matches the token endpoint's historical wording.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Missing %s. Try Again", e.Field)
}

func ValidateCreateOrder(req *models.CreateOrderRequest) error {
	if len(req.Order) == 0 {
		return &MissingFieldError{Field: "Order"}
	}
	for i, entry := range req.Order {
		if entry.ProdID == "" {
			return &MissingFieldError{Field: "Product Id"}
		}
		if entry.Quantity <= 0 {
			return fmt.Errorf("order[%d]: quantity must be a positive integer", i)
		}
		if entry.Price.IsNegative() {
			return fmt.Errorf("order[%d]: price must not be negative", i)
		}
	}
	return nil
}

func ValidateUpdateOrder(req *models.UpdateOrderRequest) error {
	if req.ProdID == "" {
		return &MissingFieldError{Field: "Product Id"}
	}
	if req.Quantity <= 0 {
		return fmt.Errorf("quantity must be a positive integer")
	}
	return nil
}

func ValidateDeleteOrder(req *models.DeleteOrderRequest) error {
	if req.ProdID == "" {
		return &MissingFieldError{Field: "Product Id"}
	}
	return nil
}
