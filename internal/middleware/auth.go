package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/geofleet/geotracker/pkg/response"
)

const (
	// ContextUserKey is the gin context key holding the authenticated username.
	ContextUserKey = "auth.user"
	// ContextRoleKey is the gin context key holding the authenticated role.
	ContextRoleKey = "auth.role"
)

// Auth validates the Bearer token on the request and stores its claims in
// the context. Tokens are HS256-signed with the shared secret.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Unauthorized(c, "missing bearer token")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		if sub, ok := claims["sub"].(string); ok {
			c.Set(ContextUserKey, sub)
		}
		if role, ok := claims["role"].(string); ok {
			c.Set(ContextRoleKey, role)
		}

		c.Next()
	}
}

// RequireAdmin rejects requests whose token does not carry the admin role.
// Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRoleKey) != "admin" {
			response.Error(c, 403, "admin role required")
			c.Abort()
			return
		}
		c.Next()
	}
}
