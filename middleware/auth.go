package middleware

import (
	"net/http"
	"strings"

	"sftails/services/identity"

	"github.com/gin-gonic/gin"
)

// PrincipalKey is the gin context key holding the resolved Principal.
const PrincipalKey = "principal"

// AuthMiddleware resolves the bearer token into a Principal and stores it in
// the request context. Handlers downstream read the role from the Principal
// only; the token is never re-parsed.
func AuthMiddleware(ids identity.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		principal, err := ids.ResolveToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// GetPrincipal retrieves the Principal set by AuthMiddleware.
func GetPrincipal(c *gin.Context) (identity.Principal, bool) {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return identity.Principal{}, false
	}
	principal, ok := v.(identity.Principal)
	return principal, ok
}
