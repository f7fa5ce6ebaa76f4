package auth

import (
	"context"

	"github.com/xknRiya/cats-api/internal/models"
)

// Principal is the identity derived from a verified token for one request.
type Principal struct {
	Email string
	Role  models.Role
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal attached by the authentication gate.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// RoleSet is the set of roles permitted to invoke an endpoint.
type RoleSet map[models.Role]struct{}

// NewRoleSet builds a set from the given roles.
func NewRoleSet(roles ...models.Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Allows reports whether role is in the set. An empty set allows nobody.
func (s RoleSet) Allows(role models.Role) bool {
	_, ok := s[role]
	return ok
}

// Roles returns the members of the set, for logging.
func (s RoleSet) Roles() []models.Role {
	out := make([]models.Role, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	return out
}
