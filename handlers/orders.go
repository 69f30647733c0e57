package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"shopapi/models"
	"shopapi/validators"
)

// OrderService is the order logic the HTTP layer depends on.
type OrderService interface {
	CreateOrder(ctx context.Context, custID string, entries []models.OrderEntry) (string, error)
	CustomerOrders(ctx context.Context, custID string) ([]models.OrderItemView, error)
	UpdateOrderLine(ctx context.Context, orderID, prodID string, newQuantity int) error
	DeleteOrderLine(ctx context.Context, orderID, prodID string) error
}

func CreateOrderHandler(svc OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		custID := r.PathValue("cust_id")
		var req models.CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeStatus(w, http.StatusBadRequest, "Bad Request")
			return
		}
		if err := validators.ValidateCreateOrder(&req); err != nil {
			writeStatus(w, http.StatusBadRequest, err.Error())
			return
		}
		if _, err := svc.CreateOrder(r.Context(), custID, req.Order); err != nil {
			writeServiceError(w, err)
			return
		}
		writeStatus(w, http.StatusOK, "A new order was created")
	}
}

func CustomerOrdersHandler(svc OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		custID := r.PathValue("cust_id")
		views, err := svc.CustomerOrders(r.Context(), custID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, views)
	}
}

func UpdateOrderHandler(svc OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := r.PathValue("order_id")
		var req models.UpdateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeStatus(w, http.StatusBadRequest, "Bad Request")
			return
		}
		if err := validators.ValidateUpdateOrder(&req); err != nil {
			writeStatus(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := svc.UpdateOrderLine(r.Context(), orderID, req.ProdID, req.Quantity); err != nil {
			writeServiceError(w, err)
			return
		}
		writeStatus(w, http.StatusOK, "Order was successfully updated")
	}
}

func DeleteOrderHandler(svc OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := r.PathValue("order_id")
		var req models.DeleteOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeStatus(w, http.StatusBadRequest, "Bad Request")
			return
		}
		if err := validators.ValidateDeleteOrder(&req); err != nil {
			writeStatus(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := svc.DeleteOrderLine(r.Context(), orderID, req.ProdID); err != nil {
			writeServiceError(w, err)
			return
		}
		writeStatus(w, http.StatusOK, "Order Delete Success")
	}
}
