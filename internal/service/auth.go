package service

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/passforge/passforge-go/internal/crypto"
	"github.com/passforge/passforge-go/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid client credentials")
	ErrClientIDRequired   = errors.New("client_id is required")
	ErrSecretRequired     = errors.New("client_secret is required")
)

// AuthService issues tokens to the single configured API client.
type AuthService struct {
	clientID   string
	secretHash string
	jwtSecret  string
	jwtExpiry  time.Duration
}

// NewAuthService creates a new AuthService. secretHash is an Argon2id PHC string.
func NewAuthService(clientID, secretHash, jwtSecret string, expiry time.Duration) *AuthService {
	return &AuthService{
		clientID:   clientID,
		secretHash: secretHash,
		jwtSecret:  jwtSecret,
		jwtExpiry:  expiry,
	}
}

// IssueToken verifies client credentials and returns a signed token.
func (s *AuthService) IssueToken(req model.TokenRequest) (model.TokenResponse, error) {
	if req.ClientID == "" {
		return model.TokenResponse{}, ErrClientIDRequired
	}
	if req.ClientSecret == "" {
		return model.TokenResponse{}, ErrSecretRequired
	}

	// The secret is verified before the client ID is compared, for unknown clients too.
	match, err := crypto.VerifyPassword(req.ClientSecret, s.secretHash)
	if err != nil {
		return model.TokenResponse{}, err
	}
	knownClient := subtle.ConstantTimeCompare([]byte(req.ClientID), []byte(s.clientID)) == 1
	if !match || !knownClient {
		return model.TokenResponse{}, ErrInvalidCredentials
	}

	token, expiresAt, err := crypto.GenerateToken(s.clientID, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.TokenResponse{}, err
	}

	return model.TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt.UTC(),
	}, nil
}
