package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const (
	claimsKey   contextKey = "auth-claims"
	rawTokenKey contextKey = "auth-raw-token"
)

// Middleware rejects requests without a valid bearer token and stores the
// claims plus the raw token in the request context. The raw token is kept
// because it is forwarded verbatim to the owner services in the RPC
// envelope's authorization header.
func Middleware(v *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := v.Verify(parts[1])
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			ctx = context.WithValue(ctx, rawTokenKey, parts[1])
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFrom extracts the verified claims from the context.
func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}

// RawTokenFrom extracts the raw bearer token from the context.
func RawTokenFrom(ctx context.Context) string {
	if token, ok := ctx.Value(rawTokenKey).(string); ok {
		return token
	}
	return ""
}
