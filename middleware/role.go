package middleware

import (
	"net/http"

	"sftails/models"

	"github.com/gin-gonic/gin"
)

// RequireStaff rejects callers whose verified role is not staff or admin.
// Booking-status transitions are staff-only; a client token never passes.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing authentication"})
			return
		}
		if principal.Role != models.RoleStaff && principal.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Staff role required"})
			return
		}
		c.Next()
	}
}

// RequireClient rejects callers whose verified role is not client.
func RequireClient() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing authentication"})
			return
		}
		if principal.Role != models.RoleClient {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Client role required"})
			return
		}
		c.Next()
	}
}
