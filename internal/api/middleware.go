package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestIDHeader is propagated back to the caller so dashboard requests
// can be matched against server logs
const requestIDHeader = "X-Request-ID"

// RequestID assigns a unique id to every request, reusing the caller's own
// id when one is provided
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
