// Package middleware contains the HTTP gates that guard protected routes
// together with the request-scoped plumbing every route shares.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/xknRiya/cats-api/internal/auth"
	"github.com/xknRiya/cats-api/internal/http/respond"
)

const bearerScheme = "Bearer"

// TokenVerifier turns a bearer token into a principal.
type TokenVerifier interface {
	Verify(token string) (auth.Principal, error)
}

// Authenticate rejects requests without a valid bearer token and attaches the
// verified principal to the request context. Every rejection gets the same
// 401 body; the reason is only logged.
func Authenticate(verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, reason := bearerToken(r.Header.Get("Authorization"))
			if reason != "" {
				unauthorized(w, r, logger, reason, nil)
				return
			}

			principal, err := verifier.Verify(token)
			if err != nil {
				unauthorized(w, r, logger, "token rejected", err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		})
	}
}

// bearerToken extracts the token from an Authorization header value. A
// non-empty reason means the header is unusable.
func bearerToken(header string) (token, reason string) {
	if header == "" {
		return "", "missing authorization header"
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != bearerScheme {
		return "", "unsupported authorization scheme"
	}
	if token == "" || strings.ContainsRune(token, ' ') {
		return "", "malformed bearer token"
	}
	return token, ""
}

func unauthorized(w http.ResponseWriter, r *http.Request, logger *slog.Logger, reason string, err error) {
	attrs := []any{"reason", reason, "path", r.URL.Path, "request_id", RequestIDFromContext(r.Context())}
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	logger.InfoContext(r.Context(), "authentication failed", attrs...)
	respond.Error(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
}
