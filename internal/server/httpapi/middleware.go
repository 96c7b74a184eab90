package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/mihailvs/docshare/internal/server/auth"
)

type ctxKey string

const usernameKey ctxKey = "username"

// UsernameFromContext returns the authenticated username attached by the
// auth middleware, if any.
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	return username, ok
}

// requireAuth guards a handler behind bearer-token authentication. A missing
// header, a malformed header and an invalid or expired token are deliberately
// indistinguishable to the client: all produce a generic 401.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get("Authorization")

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			s.logger.Warn(r.Context(), "missing or malformed authorization header")
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		username, err := auth.GetUsernameFromToken(parts[1], s.jwtSecret)
		if err != nil {
			s.logger.Warn(r.Context(), "token verification failed")
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), usernameKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
