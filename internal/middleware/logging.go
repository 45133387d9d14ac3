package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"gastos/internal/logger"
	"gastos/internal/requestid"
)

// RequestIDKey is the Gin context key holding the request ID.
const RequestIDKey = "requestID"

// RequestLogging returns a Gin middleware that logs each request with a
// request ID, method, path, status code, latency, and client IP using Zap.
// A valid UUID in the X-Request-ID header is reused; anything else is replaced.
// Bodies and query strings are never logged.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := requestid.FromHeader(c.GetHeader(requestid.Header))
		c.Set(RequestIDKey, id)
		c.Writer.Header().Set(requestid.Header, id)

		c.Next()

		latency := time.Since(start)
		log := logger.Get()
		log.Infow("request",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
