package middleware

import (
	"net/http"
	"strings"

	"receivault/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthAdminMiddleware guards vault-administration endpoints. Tokens
// are issued by the admin login endpoint and must still be present in
// the auth cache, so revocation takes effect before expiry.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		// The token subject is the admin email.
		email, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		// The login handler caches the token hash; absence means logout
		// or revocation.
		authCache := utils.GetAuthCacheClient()
		if authCache != nil {
			key := utils.AuthCachePrefix + utils.HashToken(tokenString)
			if err := authCache.Get(c.Request.Context(), key).Err(); err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired, log in again"})
				return
			}
		}

		c.Set("adminEmail", email)
		c.Set("isAdmin", true)
		c.Next()
	}
}
