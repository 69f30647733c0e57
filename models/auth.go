package models

import "github.com/golang-jwt/jwt/v5"

type TokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret,omitempty"`
}

type Claims struct {
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}
