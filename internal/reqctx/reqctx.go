// Package reqctx carries the resolved tenant and authenticated principal
// through a request's context.
package reqctx

import (
	"context"

	"marketplace/internal/domain"
)

type Tenant struct {
	ID        int64
	Subdomain string
	Name      string
}

// Principal is the authenticated actor of a request.
type Principal struct {
	UserID   int64
	TenantID int64
	Email    string
	Role     domain.UserRole
}

// HasRole reports whether the principal holds one of roles.
func (p Principal) HasRole(roles ...domain.UserRole) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

type ctxKey int

const (
	tenantKey ctxKey = iota
	principalKey
	clientIPKey
)

func WithTenant(ctx context.Context, t Tenant) context.Context {
	return context.WithValue(ctx, tenantKey, t)
}

func TenantFrom(ctx context.Context) (Tenant, bool) {
	t, ok := ctx.Value(tenantKey).(Tenant)
	return t, ok
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

func ClientIPFrom(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey).(string)
	return ip
}
