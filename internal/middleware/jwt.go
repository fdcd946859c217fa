package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/quizhive/backend/internal/auth"
	"github.com/quizhive/backend/pkg/response"
)

// JWT returns a middleware that validates the signed token and sets the user
// ID in context. The token is read from the auth cookie or, failing that,
// a Bearer Authorization header.
func JWT(jwtService *auth.JWTService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
			token = cookie
		} else if header := c.GetHeader("Authorization"); header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				token = parts[1]
			}
		}
		if token == "" {
			response.Unauthorized(c, "missing auth token")
			c.Abort()
			return
		}
		claims, err := jwtService.Validate(token)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(auth.ContextUserID, claims.UserID)
		c.Next()
	}
}
