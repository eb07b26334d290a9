package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/passforge/passforge-go/internal/crypto"
)

type contextKey string

const claimsKey contextKey = "claims"

// JWTAuth returns middleware that admits requests carrying a valid client token.
// Rejections are logged with the reason and request path.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, reason := bearerToken(r)
			if reason != "" {
				reject(w, r, reason)
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				reject(w, r, "invalid or expired token")
				return
			}

			slog.Debug("client authenticated", "client_id", claims.Subject, "path", r.URL.Path)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}

// bearerToken returns the token from the Authorization header, or a rejection reason.
func bearerToken(r *http.Request) (string, string) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", "missing authorization header"
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", "invalid authorization format"
	}
	return token, ""
}

func reject(w http.ResponseWriter, r *http.Request, reason string) {
	slog.Warn("request rejected", "reason", reason, "method", r.Method, "path", r.URL.Path)
	writeJSONError(w, http.StatusUnauthorized, reason)
}

// ClientIDFromContext returns the token subject of the authenticated API client.
func ClientIDFromContext(ctx context.Context) (string, bool) {
	claims, ok := ctx.Value(claimsKey).(*crypto.Claims)
	if !ok || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
