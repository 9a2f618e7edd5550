package middleware

import (
	"net/http"
	"strings"

	"instabarakat-leads/services"

	"github.com/gin-gonic/gin"
)

// SessionCookie holds the signed admin session.
const SessionCookie = "admin_session"

// AdminContextKey is set on the gin context once a session is verified.
const AdminContextKey = "adminClaims"

// SessionToken reads the session from the cookie or a Bearer header.
func SessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return ""
	}
	return strings.TrimSpace(tokenString)
}

// RequireAdminPage re-checks the session on every dashboard page and sends
// visitors without one back to the gate.
func RequireAdminPage(auth *services.AdminAuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := auth.ValidateSession(SessionToken(c))
		if err != nil {
			c.Redirect(http.StatusSeeOther, "/admin")
			c.Abort()
			return
		}
		c.Set(AdminContextKey, claims)
		c.Next()
	}
}

// RequireAdminAPI is RequireAdminPage for JSON clients.
func RequireAdminAPI(auth *services.AdminAuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := auth.ValidateSession(SessionToken(c))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			c.Abort()
			return
		}
		c.Set(AdminContextKey, claims)
		c.Next()
	}
}
