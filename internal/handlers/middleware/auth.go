// internal/handlers/middleware/auth.go
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yfarouk/dealstack-be/internal/pkg/identity"
	"github.com/yfarouk/dealstack-be/internal/pkg/logger"
)

// Authenticate validates the Bearer token on each request and places
// the resulting dealer session in the request context. Requests
// without a valid token are rejected before reaching any handler.
func Authenticate(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				unauthorized(w, "missing bearer token")
				return
			}

			dealerID, err := parseDealerToken(strings.TrimPrefix(auth, "Bearer "), secret)
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}

			session := identity.Session{DealerID: dealerID}
			ctx := identity.WithSession(r.Context(), session)
			ctx = context.WithValue(ctx, logger.ContextKeyDealerID, dealerID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// parseDealerToken verifies an HS256 token and returns the dealer ID
// from its subject claim.
func parseDealerToken(tokenStr, secret string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("token missing subject")
	}

	return sub, nil
}

// IssueDealerToken creates a signed HS256 token for a dealer. Used by
// the seeder and by tests; production tokens come from the identity
// provider that fronts this API.
func IssueDealerToken(dealerID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   dealerID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"error":%q}`, msg)
}
