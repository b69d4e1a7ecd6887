// Package middleware contains HTTP middleware for request processing.
//
// Middleware in Gin are functions that run before/after handlers and
// cover cross-cutting concerns: request IDs, logging, recovery, CORS,
// rate limiting and metrics.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Haleralex/orghub/internal/pkg/logger"
)

const (
	// RequestIDHeader is the header name carrying the request ID.
	RequestIDHeader = "X-Request-ID"
	// RequestIDContextKey is the Gin context key holding the request ID.
	RequestIDContextKey = "request_id"
)

// RequestID attaches a unique ID to every request.
//
// If the client sends X-Request-ID it is reused, otherwise a new UUID is
// generated. The ID is stored in the Gin context, propagated into the
// request context for log correlation, and echoed in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDContextKey, requestID)
		c.Request = c.Request.WithContext(
			logger.WithRequestID(c.Request.Context(), requestID),
		)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// GetRequestID extracts the request ID from the Gin context.
func GetRequestID(c *gin.Context) string {
	if id, exists := c.Get(RequestIDContextKey); exists {
		if strID, ok := id.(string); ok {
			return strID
		}
	}
	return ""
}
