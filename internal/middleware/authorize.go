package middleware

import (
	"log/slog"
	"net/http"

	"github.com/xknRiya/cats-api/internal/auth"
	"github.com/xknRiya/cats-api/internal/http/respond"
)

const forbiddenMessage = "Forbidden resource"

// RequireRoles admits a request only when the principal set by Authenticate
// holds one of the roles in set. It must run after Authenticate; a request
// without a principal is refused rather than let through.
func RequireRoles(set auth.RoleSet, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.PrincipalFromContext(r.Context())
			if !ok {
				logger.ErrorContext(r.Context(), "authorization without principal",
					"path", r.URL.Path, "request_id", RequestIDFromContext(r.Context()))
				respond.Error(w, http.StatusForbidden, forbiddenMessage)
				return
			}
			if !set.Allows(principal.Role) {
				logger.InfoContext(r.Context(), "authorization denied",
					"path", r.URL.Path, "role", principal.Role, "required", set.Roles(),
					"request_id", RequestIDFromContext(r.Context()))
				respond.Error(w, http.StatusForbidden, forbiddenMessage)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
