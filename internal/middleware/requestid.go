package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the context key for the per-request identifier.
const RequestIDKey = "request_id"

// RequestID assigns a uuid to each request, echoes it in the X-Request-ID
// response header, and stores a request-scoped logger in the gin context.
func RequestID(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Set(LoggerKey, logger.With("request_id", id))

		c.Next()
	}
}

// LoggerKey is the context key for the request-scoped logger.
const LoggerKey = "logger"

// Logger returns the request-scoped logger, falling back to the default.
func Logger(c *gin.Context) *slog.Logger {
	if v, ok := c.Get(LoggerKey); ok {
		if l, ok := v.(*slog.Logger); ok {
			return l
		}
	}
	return slog.Default()
}
