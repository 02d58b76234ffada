package middleware

import (
	"context"
	"net/http"

	"fintrack/internal/models"
)

type contextKey string

const principalKey contextKey = "principal"

// Authenticator resolves basic-auth credentials to the stored user record.
type Authenticator interface {
	Authenticate(ctx context.Context, username string, password []byte) (models.User, error)
}

func PrincipalFromContext(ctx context.Context) (models.User, bool) {
	principal, ok := ctx.Value(principalKey).(models.User)
	return principal, ok
}

// WithPrincipal is a test hook for exercising handlers without the full
// basic-auth round-trip.
func WithPrincipal(ctx context.Context, principal models.User) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// BasicAuth authenticates every request with HTTP Basic credentials. The
// password field carries the base64 form of the opaque password bytes.
func BasicAuth(users Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, encodedPassword, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm="fintrack"`)
				http.Error(w, "missing credentials", http.StatusUnauthorized)
				return
			}
			password, err := models.DecodeOpaque(encodedPassword)
			if err != nil {
				http.Error(w, "malformed credentials", http.StatusUnauthorized)
				return
			}
			principal, err := users.Authenticate(r.Context(), username, password)
			if err != nil {
				http.Error(w, "invalid credentials", http.StatusUnauthorized)
				return
			}
			ctx := WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
