package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/gidroatlas/gidroatlas/internal/users"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	ID    uuid.UUID  `json:"id"`
	Login string     `json:"login"`
	Role  users.Role `json:"role"`
	Demo  bool       `json:"demo"`
}

type principalKey struct{}

// WithPrincipal returns a context carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal attached to ctx, if any.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// IsExpert reports whether the caller in ctx holds the expert role.
func IsExpert(ctx context.Context) bool {
	p, ok := PrincipalFrom(ctx)
	return ok && p.Role.Allows(users.RoleExpert)
}
