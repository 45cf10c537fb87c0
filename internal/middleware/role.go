package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/internal/domain"
	"marketplace/internal/pkg/response"
)

// RequireRole ensures the authenticated user holds one of roles.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}
		if !p.HasRole(roles...) {
			response.Abort(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			return
		}
		c.Next()
	}
}

// AdminOnly admits admin and super_admin.
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin, domain.RoleSuperAdmin)
}
