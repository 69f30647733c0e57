package handlers

import (
	"context"
	"net/http"

	"shopapi/models"
)

type ProductLister interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// ShopHandler lists the catalog.
func ShopHandler(catalog ProductLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := catalog.ListProducts(r.Context())
		if err != nil {
			writeStatus(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		writeJSON(w, http.StatusOK, products)
	}
}
