package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shopapi/models"
)

type contextKey string

const clientIDKey contextKey = "client_id"

// Auth verifies the bearer token and stores the client id in the request
// context for the wrapped handler.
func Auth(jwtKey []byte) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeStatus(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			token, err := jwt.ParseWithClaims(tokenStr, &models.Claims{}, func(t *jwt.Token) (interface{}, error) {
				return jwtKey, nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !token.Valid {
				writeStatus(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			claims := token.Claims.(*models.Claims)
			ctx := context.WithValue(r.Context(), clientIDKey, claims.ClientID)
			next(w, r.WithContext(ctx))
		}
	}
}

// ClientID returns the authenticated client id, or "" outside Auth.
func ClientID(r *http.Request) string {
	id, _ := r.Context().Value(clientIDKey).(string)
	return id
}

// RequestLogger logs method, path, status and latency for every request.
func RequestLogger(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
