package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"luman/internal/auth"
	"luman/internal/httputil"
)

// Auth middleware validates the Bearer token on incoming requests and
// stores the authenticated user in the request context. Requests without
// an Authorization header pass through unauthenticated; handlers that
// require a user reject those with 401. A present-but-invalid token is
// rejected here.
func Auth(verifier auth.JWTVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == header || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid authorization header")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Debug("token verification failed", "error", err, "path", r.URL.Path)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithUser(r, claims.GetUserID(), claims.Email, claims.FullName()))
		})
	}
}
