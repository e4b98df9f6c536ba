package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront/internal/domain"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"
	adminNameKey    = "adminUsername"
)

// requestIDMiddleware echoes the caller's request id or assigns a fresh one.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// adminSessionMiddleware rejects requests without a live admin session token.
func adminSessionMiddleware(svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(domain.SessionTokenHeader)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		username, err := svc.Validate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(adminNameKey, username)
		c.Next()
	}
}
