package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"shopapi/models"
	"shopapi/validators"
)

type statusResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type tokenResponse struct {
	Status      int    `json:"status"`
	AccessToken string `json:"access_token"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeStatus(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, statusResponse{Status: status, Message: message})
}

// writeServiceError maps domain errors onto the status+message envelope.
// Unknown errors surface as a bare 500 with no internal detail.
func writeServiceError(w http.ResponseWriter, err error) {
	var missing *validators.MissingFieldError
	switch {
	case errors.As(err, &missing):
		writeStatus(w, http.StatusBadRequest, missing.Error())
	case errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrCustomerNotFound),
		errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrOrderLineNotFound):
		writeStatus(w, http.StatusNotFound, err.Error())
	default:
		writeStatus(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
