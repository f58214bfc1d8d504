package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"xft/internal/core"

	"github.com/golang-jwt/jwt"
	"go.uber.org/zap"
)

const IdentityKey contextKey = "identity"

type TokenValidator interface {
	Validate(token string) (jwt.MapClaims, error)
}

// AuthMiddleware guards routes behind a bearer session token and makes the
// asserted identity available to handlers through the request context.
type AuthMiddleware struct {
	logs   *zap.SugaredLogger
	issuer TokenValidator
}

func NewAuthMiddleware(logger *zap.SugaredLogger, issuer TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		logs:   logger,
		issuer: issuer,
	}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			m.deny(w, "No authentication token provided")
			return
		}

		claims, err := m.issuer.Validate(token)
		if err != nil {
			m.logs.Errorw("token validation failed", "error", err)
			m.deny(w, "Invalid authentication token")
			return
		}

		sub, _ := claims["sub"].(string)
		address, _ := claims["address"].(string)
		if sub == "" || address == "" {
			m.deny(w, "Invalid authentication token")
			return
		}

		ctx := context.WithValue(r.Context(), IdentityKey, core.Identity{
			UserID:  sub,
			Address: address,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFrom extracts the authenticated identity placed by RequireAuth.
func IdentityFrom(ctx context.Context) (core.Identity, bool) {
	ident, ok := ctx.Value(IdentityKey).(core.Identity)
	return ident, ok
}

func (m *AuthMiddleware) deny(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   msg,
	})
}
