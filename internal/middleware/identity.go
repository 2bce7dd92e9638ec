package middleware

import (
	"net/http"

	"reviewhub/internal/logger"
	"reviewhub/internal/models"

	"github.com/gin-gonic/gin"
)

// IdentityMiddleware resolves the tenant identity supplied by the upstream
// identity collaborator. Credentials are verified at the edge; this core
// trusts the forwarded owner id and role and only requires their presence.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.GetHeader("X-User-ID")
		if ownerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Identity missing"})
			return
		}

		role := models.UserRole(c.GetHeader("X-User-Role"))
		if role == "" {
			role = models.UserRoleUser
		}

		c.Set("ownerID", ownerID)
		c.Set("role", role)

		ctx := logger.WithOwnerID(c.Request.Context(), ownerID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RoleMiddleware restricts a route group to one role.
func RoleMiddleware(requiredRole models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no role"})
			return
		}

		role, ok := roleVal.(models.UserRole)
		if !ok {
			roleStr, isString := roleVal.(string)
			if !isString {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: invalid role type"})
				return
			}
			role = models.UserRole(roleStr)
		}

		if role != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient permissions"})
			return
		}

		c.Next()
	}
}
