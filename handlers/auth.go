package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"shopapi/models"
	"shopapi/validators"
)

// ClientStore resolves registered API clients at token issuance.
type ClientStore interface {
	GetClientSecretHash(ctx context.Context, clientID string) (string, error)
}

// TokenHandler issues an HS256 access token for the given client id.
// Clients registered with a secret must present it; anyone else passes
// through on the client id alone.
func TokenHandler(clients ClientStore, jwtKey []byte, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.TokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ClientID == "" {
			missing := &validators.MissingFieldError{Field: "Client Id"}
			writeStatus(w, http.StatusBadRequest, missing.Error())
			return
		}

		hash, err := clients.GetClientSecretHash(r.Context(), req.ClientID)
		if err != nil {
			writeStatus(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		if hash != "" {
			if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.ClientSecret)); err != nil {
				writeStatus(w, http.StatusUnauthorized, "Invalid Client Credentials")
				return
			}
		}

		now := time.Now()
		claims := &models.Claims{
			ClientID: req.ClientID,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   req.ClientID,
				ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
				IssuedAt:  jwt.NewNumericDate(now),
			},
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString(jwtKey)
		if err != nil {
			writeStatus(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		writeJSON(w, http.StatusOK, tokenResponse{Status: http.StatusOK, AccessToken: signed})
	}
}
