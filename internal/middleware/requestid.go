package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request ID in both directions.
	RequestIDHeader = "X-Request-ID"

	requestIDKey       = "request_id"
	maxRequestIDLength = 64
)

// RequestID returns a middleware that assigns every request an ID.
// A client-supplied X-Request-ID is kept if it is non-empty and at most 64 bytes.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()
	}
}

// GetRequestID returns the ID assigned by RequestID, or "" if none was.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
