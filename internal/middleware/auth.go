package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/nightowl-labs/restwise/backend/internal/service/auth"
	"github.com/nightowl-labs/restwise/backend/pkg/utils"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserID returns the verified user id stored by RequireAuth.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// RequireAuth verifies the bearer token on every request and stores the
// resolved user id in the request context. A nil verifier means identity
// verification is not configured; gated endpoints then answer 503 rather
// than letting requests through unchecked.
func RequireAuth(verifier auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				utils.RespondError(w, http.StatusServiceUnavailable, "identity verification unavailable")
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				utils.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			userID, err := verifier.Verify(r.Context(), strings.TrimSpace(token))
			if err != nil {
				utils.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
		})
	}
}
