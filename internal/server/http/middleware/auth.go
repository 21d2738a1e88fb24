package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const adminCookieName = "canteen_admin_token"

// AdminTokenParser validates admin session tokens.
type AdminTokenParser interface {
	ParseAdminToken(token string) error
}

// AdminRequired ensures the request carries a valid admin session token.
func AdminRequired(parser AdminTokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if err := parser.ParseAdminToken(token); err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(adminCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAdminCookie writes the admin token cookie to the response.
func SetAdminCookie(c *gin.Context, token string) {
	c.SetCookie(adminCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
