package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopapi/models"
)

// Store is the persistence surface the order service needs. WithTx runs fn
// inside one transaction; every store call made with the context it passes
// joins that transaction, and any error rolls the whole unit back.
type Store interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	GetProduct(ctx context.Context, prodID string) (models.Product, error)
	GetProductForUpdate(ctx context.Context, prodID string) (models.Product, error)
	AdjustProductQuantity(ctx context.Context, prodID string, delta int) error

	GetCustomer(ctx context.Context, custID string) (models.Customer, error)
	CreateCustomer(ctx context.Context, custID string) error

	CreateOrder(ctx context.Context, order models.Order) error
	GetOrderForUpdate(ctx context.Context, orderID string) (models.Order, error)
	AdjustOrderTotal(ctx context.Context, orderID string, delta decimal.Decimal) error

	GetOrderLine(ctx context.Context, orderID, prodID string) (models.OrderLine, error)
	ListCustomerLines(ctx context.Context, custID string) ([]models.OrderLine, error)
	InsertOrderLine(ctx context.Context, line models.OrderLine) error
	UpdateOrderLine(ctx context.Context, orderID, prodID string, quantity int, price decimal.Decimal) error
	DeleteOrderLine(ctx context.Context, orderID, prodID string) error
}

// OrderService keeps the order ledger and product stock consistent. It is
// the only writer of orders, order lines and stock counts.
type OrderService struct {
	store Store
}

func NewOrderService(store Store) *OrderService {
	return &OrderService{store: store}
}

// CreateOrder opens an order for the customer, creating the customer on
// first contact, and writes one line per submitted entry.
//
// The submitted price is trusted and recorded as-is, and the order total
// accrues that price value once per line, independent of quantity. Stock is
// reduced by the submitted quantity with no sufficiency check. Both are
// long-standing billing behaviors; do not change them here without a
// stakeholder decision.
func (s *OrderService) CreateOrder(ctx context.Context, custID string, entries []models.OrderEntry) (string, error) {
	orderID := uuid.NewString()

	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.store.GetCustomer(ctx, custID); err != nil {
			if !errors.Is(err, models.ErrCustomerNotFound) {
				return err
			}
			if err := s.store.CreateCustomer(ctx, custID); err != nil {
				return err
			}
		}

		if err := s.store.CreateOrder(ctx, models.Order{OrderID: orderID, Total: decimal.Zero}); err != nil {
			return err
		}

		for _, entry := range entries {
			line := models.OrderLine{
				OrderID:  orderID,
				ProdID:   entry.ProdID,
				CustID:   custID,
				Quantity: entry.Quantity,
				Price:    entry.Price,
			}
			if err := s.store.InsertOrderLine(ctx, line); err != nil {
				return err
			}
			if err := s.store.AdjustOrderTotal(ctx, orderID, line.Price); err != nil {
				return err
			}
			if err := s.store.AdjustProductQuantity(ctx, entry.ProdID, -entry.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return orderID, nil
}

// CustomerOrders returns every line the customer holds, each merged with its
// product record. Lines whose product has left the catalog are kept, with
// the product fields absent.
func (s *OrderService) CustomerOrders(ctx context.Context, custID string) ([]models.OrderItemView, error) {
	lines, err := s.store.ListCustomerLines(ctx, custID)
	if err != nil {
		return nil, err
	}

	views := make([]models.OrderItemView, 0, len(lines))
	for _, line := range lines {
		view := models.OrderItemView{
			ID:       line.ProdID,
			Quantity: line.Quantity,
			OrderID:  line.OrderID,
		}
		product, err := s.store.GetProduct(ctx, line.ProdID)
		if err == nil {
			view.ProdID = &product.ProdID
			view.Name = &product.Name
			view.Image = &product.Image
			view.Description = &product.Description
			price := product.Price
			view.Price = &price
		} else if !errors.Is(err, models.ErrProductNotFound) {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// UpdateOrderLine sets a line to a new quantity. The line price is
// recomputed from the product's current unit price (unlike create, which
// records the caller's figure), stock absorbs the quantity difference and
// the order total moves by the recomputed line price.
func (s *OrderService) UpdateOrderLine(ctx context.Context, orderID, prodID string, newQuantity int) error {
	return s.store.WithTx(ctx, func(ctx context.Context) error {
		line, err := s.store.GetOrderLine(ctx, orderID, prodID)
		if err != nil {
			return err
		}
		if _, err := s.store.GetOrderForUpdate(ctx, orderID); err != nil {
			return err
		}
		product, err := s.store.GetProductForUpdate(ctx, prodID)
		if err != nil {
			return err
		}

		newPrice := product.Price.Mul(decimal.NewFromInt(int64(newQuantity)))
		diff := line.Quantity - newQuantity
		if diff < 0 {
			diff = -diff
		}

		switch {
		case line.Quantity < newQuantity:
			if err := s.store.AdjustProductQuantity(ctx, prodID, -diff); err != nil {
				return err
			}
			if err := s.store.AdjustOrderTotal(ctx, orderID, newPrice); err != nil {
				return err
			}
		case line.Quantity > newQuantity:
			if err := s.store.AdjustProductQuantity(ctx, prodID, diff); err != nil {
				return err
			}
			if err := s.store.AdjustOrderTotal(ctx, orderID, newPrice.Neg()); err != nil {
				return err
			}
		}

		return s.store.UpdateOrderLine(ctx, orderID, prodID, newQuantity, newPrice)
	})
}

// DeleteOrderLine removes a line, returning its quantity to stock and taking
// its recorded price off the order total.
func (s *OrderService) DeleteOrderLine(ctx context.Context, orderID, prodID string) error {
	return s.store.WithTx(ctx, func(ctx context.Context) error {
		line, err := s.store.GetOrderLine(ctx, orderID, prodID)
		if err != nil {
			return err
		}
		if _, err := s.store.GetOrderForUpdate(ctx, orderID); err != nil {
			return err
		}
		if _, err := s.store.GetProductForUpdate(ctx, prodID); err != nil {
			return err
		}

		if err := s.store.AdjustOrderTotal(ctx, orderID, line.Price.Neg()); err != nil {
			return err
		}
		if err := s.store.AdjustProductQuantity(ctx, prodID, line.Quantity); err != nil {
			return err
		}
		return s.store.DeleteOrderLine(ctx, orderID, prodID)
	})
}
