package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"file-share-api/internal/application/ports"
	"file-share-api/internal/domain/user"
)

const (
	CtxIdentity = "identity"

	HeaderAdminAPIKey = "X-Admin-Api-Key"
)

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(tokens ports.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"message": "missing Authorization header"},
			)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"message": "invalid token format"},
			)
			return
		}

		id, ok := identityFromToken(tokens, tokenStr)
		if !ok {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"message": "invalid token"},
			)
			return
		}

		c.Set(CtxIdentity, id)

		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid bearer token is
// present and never rejects the request.
func OptionalAuth(tokens ports.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if found {
			if id, ok := identityFromToken(tokens, tokenStr); ok {
				c.Set(CtxIdentity, id)
			}
		}

		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := Identity(c)
		if !ok || !id.IsAdmin {
			c.AbortWithStatusJSON(
				http.StatusForbidden,
				gin.H{"message": "admin access required"},
			)
			return
		}

		c.Next()
	}
}

// AdminAPIKey rejects every request when apiKey is empty.
func AdminAPIKey(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(HeaderAdminAPIKey)
		if apiKey == "" || subtle.ConstantTimeCompare([]byte(got), []byte(apiKey)) != 1 {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"message": "Unauthorized: Invalid API key"},
			)
			return
		}

		c.Next()
	}
}

// Identity returns the identity attached by AuthMiddleware or OptionalAuth.
func Identity(c *gin.Context) (user.Identity, bool) {
	v, ok := c.Get(CtxIdentity)
	if !ok {
		return user.Identity{}, false
	}
	id, ok := v.(user.Identity)
	return id, ok
}

func identityFromToken(tokens ports.TokenService, tokenStr string) (user.Identity, bool) {
	id, err := tokens.ValidateToken(tokenStr)
	if err != nil {
		return user.Identity{}, false
	}

	return id, true
}
