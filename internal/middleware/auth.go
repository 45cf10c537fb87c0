package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"marketplace/internal/domain"
	"marketplace/internal/pkg/jwt"
	"marketplace/internal/pkg/logging"
	"marketplace/internal/pkg/response"
	"marketplace/internal/reqctx"
)

const (
	AuthCookieName = "auth_token"
	principalKey   = "principal"
)

// CookieOptions controls the session cookie attributes.
type CookieOptions struct {
	Secure   bool
	Domain   string
	SameSite http.SameSite
}

// ParseSameSite maps a config value (Lax, Strict, None) to http.SameSite.
func ParseSameSite(v string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func SetAuthCookie(c *gin.Context, opts CookieOptions, token string, ttl time.Duration) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		Domain:   opts.Domain,
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

func ClearAuthCookie(c *gin.Context, opts CookieOptions) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		Domain:   opts.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// tokenFromRequest prefers the session cookie and falls back to a Bearer header.
func tokenFromRequest(c *gin.Context) string {
	if v, err := c.Cookie(AuthCookieName); err == nil && v != "" {
		return v
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// ResolvePrincipal validates the request's token. It returns nil for a
// missing, malformed, expired or foreign-tenant token.
func ResolvePrincipal(c *gin.Context, tokens *jwt.Service) *reqctx.Principal {
	raw := tokenFromRequest(c)
	if raw == "" {
		return nil
	}
	claims, err := tokens.ValidateToken(raw)
	if err != nil {
		return nil
	}
	tenant, ok := TenantFrom(c)
	if !ok || tenant.ID != claims.TenantID {
		return nil
	}
	return &reqctx.Principal{
		UserID:   claims.UserID,
		TenantID: claims.TenantID,
		Email:    claims.Email,
		Role:     domain.UserRole(claims.Role),
	}
}

// Authenticate attaches the principal when the request carries a valid token.
// It never rejects; RequireAuth does.
func Authenticate(tokens *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := ResolvePrincipal(c, tokens)
		if p != nil {
			c.Set(principalKey, *p)
			ctx := reqctx.WithPrincipal(c.Request.Context(), *p)
			ctx = logging.WithLogger(ctx, logging.FromContext(ctx).With(
				zap.Int64("user_id", p.UserID),
				zap.String("role", string(p.Role)),
			))
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := PrincipalFrom(c); !ok {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}
		c.Next()
	}
}

func PrincipalFrom(c *gin.Context) (reqctx.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return reqctx.Principal{}, false
	}
	p, ok := v.(reqctx.Principal)
	return p, ok
}

// MustPrincipal returns the principal of a route mounted behind RequireAuth.
func MustPrincipal(c *gin.Context) reqctx.Principal {
	p, ok := PrincipalFrom(c)
	if !ok {
		panic("middleware: MustPrincipal on unauthenticated route")
	}
	return p
}
