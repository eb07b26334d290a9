package model

import "time"

// TokenRequest represents a client credentials token request.
type TokenRequest struct {
	ClientID     string `json:"client_id" validate:"required,max=128"`
	ClientSecret string `json:"client_secret" validate:"required,max=1024"`
}

// TokenResponse carries a bearer token for the API.
type TokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}
