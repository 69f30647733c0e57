package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shopapi/models"
)

var testJWTKey = []byte("test-secret")

type fakeClientStore struct {
	hashes map[string]string
}

func (f *fakeClientStore) GetClientSecretHash(ctx context.Context, clientID string) (string, error) {
	return f.hashes[clientID], nil
}

func postToken(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := TokenHandler(&fakeClientStore{hashes: map[string]string{}}, testJWTKey, time.Hour)
	req := httptest.NewRequest(http.MethodPost, "/api/token", strings.NewReader(body))
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestTokenHandler(t *testing.T) {
	t.Run("issues token for client id", func(t *testing.T) {
		w := postToken(t, `{"client_id":"client-1"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Status      int    `json:"status"`
			AccessToken string `json:"access_token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 200, resp.Status)
		require.NotEmpty(t, resp.AccessToken)

		token, err := jwt.ParseWithClaims(resp.AccessToken, &models.Claims{}, func(t *jwt.Token) (interface{}, error) {
			return testJWTKey, nil
		})
		require.NoError(t, err)
		require.True(t, token.Valid)
		assert.Equal(t, "client-1", token.Claims.(*models.Claims).ClientID)
	})

	t.Run("empty body", func(t *testing.T) {
		w := postToken(t, "")
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Status  int    `json:"status"`
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 400, resp.Status)
		assert.Equal(t, "Missing Client Id. Try Again", resp.Message)
	})

	t.Run("missing client id key", func(t *testing.T) {
		w := postToken(t, `{"something":"else"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Missing Client Id. Try Again")
	})

	t.Run("registered client requires matching secret", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
		require.NoError(t, err)
		store := &fakeClientStore{hashes: map[string]string{"client-1": string(hash)}}
		h := TokenHandler(store, testJWTKey, time.Hour)

		req := httptest.NewRequest(http.MethodPost, "/api/token",
			strings.NewReader(`{"client_id":"client-1","client_secret":"wrong"}`))
		w := httptest.NewRecorder()
		h(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		req = httptest.NewRequest(http.MethodPost, "/api/token",
			strings.NewReader(`{"client_id":"client-1","client_secret":"s3cret"}`))
		w = httptest.NewRecorder()
		h(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unregistered client passes without secret", func(t *testing.T) {
		w := postToken(t, `{"client_id":"anonymous"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuthMiddleware(t *testing.T) {
	protected := Auth(testJWTKey)(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(ClientID(r)))
	})

	t.Run("rejects missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/shop", nil)
		w := httptest.NewRecorder()
		protected(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/shop", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()
		protected(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects token signed with another algorithm", func(t *testing.T) {
		// HS384 with the right key would verify if the middleware did not
		// pin the algorithm.
		claims := &models.Claims{
			ClientID: "client-1",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString(testJWTKey)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/shop", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()
		protected(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects token signed with another key", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.Claims{ClientID: "client-1"})
		signed, err := token.SignedString([]byte("other-key"))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/shop", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()
		protected(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("passes client id through", func(t *testing.T) {
		claims := &models.Claims{
			ClientID: "client-1",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testJWTKey)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/shop", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()
		protected(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "client-1", w.Body.String())
	})
}
