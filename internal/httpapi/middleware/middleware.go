package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hyperagentio/dispute-agent/internal/common"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with a ULID unless the client already
// supplied one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			if id, err := common.NewULID(); err == nil {
				rid = id
			}
		}
		if rid != "" {
			c.Writer.Header().Set(RequestIDHeader, rid)
		}
		c.Next()
	}
}

// Recovery converts handler panics into the standard error envelope
// instead of gin's plain-text 500.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic recovered: %v", r)
				common.Fail(c, http.StatusInternalServerError, 50000, "internal error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
