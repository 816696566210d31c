package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

const userIDKey = contextKey("userID")

// userIDHeader carries the authenticated caller's ID, set by the upstream
// gateway. Authentication itself happens outside this service.
const userIDHeader = "X-User-ID"

// IdentityMiddleware requires the caller identity header on every request
// and stores it in the request context for handlers and services.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(userIDHeader)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + userIDHeader + " header"})
			return
		}
		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetUserIDFromContext retrieves the caller's user ID from the Gin
// context. It returns the user ID and whether it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
