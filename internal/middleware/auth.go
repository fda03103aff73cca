package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/EzraKL/RentalFinder/internal/auth"
	"github.com/EzraKL/RentalFinder/internal/http/respond"
)

type contextKey string

const principalKey contextKey = "principal"

// RequireAuth resolves the bearer token from the Authorization header into
// a principal and stores it in the request context. Requests with a
// missing, malformed, or expired token are rejected with 401.
func RequireAuth(tokens *auth.TokenManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			respond.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}

		principal, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			respond.Error(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PrincipalFrom extracts the authenticated principal placed in the context
// by RequireAuth.
func PrincipalFrom(ctx context.Context) (auth.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(auth.Principal)
	return principal, ok
}
