package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/espresso-labs/espresso-gateway/internal/common"
)

const RequestIDKey = "request_id"

const requestIDHeader = "X-Request-Id"

// RequestID attaches a ULID to every request, honoring one supplied by an
// upstream proxy.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = common.NewULID()
		}
		c.Set(RequestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}
