package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/otcheredev/remedium-hms/internal/apperr"
	"github.com/otcheredev/remedium-hms/internal/authz"
	"github.com/otcheredev/remedium-hms/internal/models"
	"github.com/rs/zerolog/log"
)

// TokenParser verifies a bearer token.
type TokenParser interface {
	Parse(raw string) (*models.Principal, error)
}

// Checker decides whether a principal holds a permission.
type Checker interface {
	Check(ctx context.Context, p *models.Principal, permission string) error
}

// Authenticate attaches the principal named by a valid bearer token.
// Requests without a token pass through anonymous; a malformed or invalid
// token is rejected with 401.
func Authenticate(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				log.Warn().Str("path", r.URL.Path).Msg("Malformed Authorization header")
				deny(w, http.StatusUnauthorized, apperr.ErrAuthenticationRequired)
				return
			}

			p, err := tokens.Parse(strings.TrimSpace(raw))
			if err != nil {
				log.Warn().Err(err).Str("path", r.URL.Path).Msg("Rejected bearer token")
				deny(w, http.StatusUnauthorized, apperr.ErrAuthenticationRequired)
				return
			}

			next.ServeHTTP(w, r.WithContext(authz.WithPrincipal(r.Context(), p)))
		})
	}
}

// RequirePermission rejects callers without permission: 401 when no usable
// identity is attached, 403 when the grant is missing.
func RequirePermission(checker Checker, permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := authz.PrincipalFrom(r.Context())
			err := checker.Check(r.Context(), principal, permission)
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, apperr.ErrAuthenticationRequired):
				deny(w, http.StatusUnauthorized, err)
			case errors.Is(err, apperr.ErrPermissionDenied):
				event := log.Info().Str("permission", permission)
				if principal != nil {
					event = event.Str("user", principal.Username)
				}
				event.Msg("Permission denied")
				deny(w, http.StatusForbidden, err)
			default:
				log.Error().Err(err).Str("permission", permission).Msg("Permission check failed")
				deny(w, http.StatusInternalServerError, errors.New("internal server error"))
			}
		})
	}
}

func deny(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="hms"`)
	}
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
