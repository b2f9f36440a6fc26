package middlewares

import (
	"net/http"
	"slices"
	"strings"

	"github.com/Shenoy-shank05/zoomoeats/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware checks the bearer token and, when roles are given, that the
// caller has one of them.
func AuthMiddleware(secret string, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing or invalid token"})
			return
		}

		claims, err := utils.ParseToken(strings.TrimPrefix(h, "Bearer "), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			return
		}

		c.Set(utils.CtxUserID, claims.UserID)
		c.Set(utils.CtxRole, claims.Role)

		if len(requiredRoles) > 0 && !slices.Contains(requiredRoles, claims.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
			return
		}

		c.Next()
	}
}
