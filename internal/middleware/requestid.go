package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// maxRequestIDLen bounds ids accepted from callers.
const maxRequestIDLen = 64

// RequestID tags every request with an identifier, stored in the gin
// context under RequestIDKey and echoed in the X-Request-ID response header.
//
// An id sent by the caller (for instance the Angular front-end or a proxy)
// is reused when it is non-empty and at most 64 bytes; otherwise a UUID v4
// is generated.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID())
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)

		c.Next()
	}
}
