package middleware

import (
	"net/http"
	"strings"

	"github.com/casahub/smarthomes/internal/auth"
	"github.com/gin-gonic/gin"
)

// ContextUserID is the gin context key holding the authenticated user id.
const ContextUserID = "userID"

// Authentication validates the Bearer token on every request except the
// public paths (auth endpoints, health, metrics).
func Authentication(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "UNAUTHORIZED", "message": "missing bearer token"},
			})
			return
		}

		userID, err := authService.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired token"},
			})
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

func isPublicPath(path string) bool {
	switch {
	case strings.HasPrefix(path, "/v1/auth/"):
		return true
	case path == "/healthz", path == "/metrics":
		return true
	}
	return false
}
