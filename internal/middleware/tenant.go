package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"marketplace/internal/domain"
	"marketplace/internal/pkg/logging"
	"marketplace/internal/pkg/response"
	"marketplace/internal/reqctx"
)

const TenantHeader = "X-Tenant-Subdomain"

const tenantKey = "tenant"

// TenantLookup resolves an active tenant by subdomain.
type TenantLookup interface {
	GetActiveBySubdomain(ctx context.Context, subdomain string) (*domain.Tenant, error)
}

// Tenant resolves the request's tenant from the X-Tenant-Subdomain header or
// the Host subdomain and rejects the request when none matches.
func Tenant(lookup TenantLookup, baseDomain string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub := strings.TrimSpace(c.GetHeader(TenantHeader))
		if sub == "" {
			sub = SubdomainFromHost(c.Request.Host, baseDomain)
		}
		if sub == "" {
			response.Abort(c, http.StatusBadRequest, "INVALID_TENANT", "Tenant could not be resolved")
			return
		}

		t, err := lookup.GetActiveBySubdomain(c.Request.Context(), sub)
		if err != nil {
			logging.FromContext(c.Request.Context()).Debug("tenant lookup failed",
				zap.String("subdomain", sub), zap.Error(err))
			response.Abort(c, http.StatusBadRequest, "INVALID_TENANT", "Tenant could not be resolved")
			return
		}

		rt := reqctx.Tenant{ID: t.ID, Subdomain: t.Subdomain, Name: t.Name}
		c.Set(tenantKey, rt)
		ctx := reqctx.WithTenant(c.Request.Context(), rt)
		ctx = logging.WithLogger(ctx, logging.FromContext(ctx).With(zap.Int64("tenant_id", t.ID)))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// SubdomainFromHost returns the left-most label of host. With baseDomain set
// only hosts under it count; a bare baseDomain or a host without a subdomain
// yields "".
func SubdomainFromHost(host, baseDomain string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if host == "" || net.ParseIP(host) != nil {
		return ""
	}

	base := strings.ToLower(strings.Trim(baseDomain, ". "))
	if base != "" {
		suffix := "." + base
		if !strings.HasSuffix(host, suffix) {
			return ""
		}
		host = strings.TrimSuffix(host, suffix)
		if i := strings.Index(host, "."); i >= 0 {
			host = host[:i]
		}
		return host
	}

	labels := strings.Split(host, ".")
	if len(labels) < 3 {
		// "localhost" or "example.com"; "acme.localhost" still resolves
		if len(labels) == 2 && labels[1] == "localhost" {
			return labels[0]
		}
		return ""
	}
	return labels[0]
}

// TenantFrom returns the tenant resolved by the Tenant middleware.
func TenantFrom(c *gin.Context) (reqctx.Tenant, bool) {
	v, ok := c.Get(tenantKey)
	if !ok {
		return reqctx.Tenant{}, false
	}
	t, ok := v.(reqctx.Tenant)
	return t, ok
}
