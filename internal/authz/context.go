package authz

import (
	"context"

	"github.com/otcheredev/remedium-hms/internal/models"
)

type principalKey struct{}

// WithPrincipal attaches the authenticated caller to ctx.
func WithPrincipal(ctx context.Context, p *models.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the caller attached to ctx, or nil.
func PrincipalFrom(ctx context.Context) *models.Principal {
	p, _ := ctx.Value(principalKey{}).(*models.Principal)
	return p
}
