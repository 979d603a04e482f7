package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gidroatlas/gidroatlas/internal/users"
	"github.com/gidroatlas/gidroatlas/pkg/handlers"
	"github.com/gidroatlas/gidroatlas/pkg/middleware"
)

// Identify attaches the principal named by a bearer token to the request
// context. Requests without a token pass through anonymously; a malformed
// or expired token is rejected with 401.
func Identify(tokens *Tokens, logger *slog.Logger) middleware.Func {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				handlers.RespondError(w, logger, http.StatusUnauthorized, ErrInvalidToken)
				return
			}

			p, err := tokens.Parse(strings.TrimSpace(raw))
			if err != nil {
				handlers.RespondError(w, logger, http.StatusUnauthorized, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireRole rejects anonymous callers with 401 and callers whose role does
// not satisfy role with 403.
func RequireRole(role users.Role) middleware.Func {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				handlers.RespondJSON(w, http.StatusUnauthorized, map[string]string{"error": ErrUnauthenticated.Error()})
				return
			}
			if !p.Role.Allows(role) {
				handlers.RespondJSON(w, http.StatusForbidden, map[string]string{"error": ErrForbidden.Error()})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Guest and Expert are the role requirements used by route declarations.
var (
	Guest  = []middleware.Func{RequireRole(users.RoleGuest)}
	Expert = []middleware.Func{RequireRole(users.RoleExpert)}
)
