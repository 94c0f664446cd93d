package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-Id"

// MiddlewareConfig tunes the request logging middleware.
type MiddlewareConfig struct {
	// SkipPaths are matched exactly and never logged, e.g. health checks.
	SkipPaths []string
}

// GinMiddleware tags every request with a request ID and logs its
// outcome through the global logger.
func GinMiddleware(cfg MiddlewareConfig) gin.HandlerFunc {
	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, path := range cfg.SkipPaths {
		skip[path] = true
	}

	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, requestID)

		start := time.Now()
		c.Next()

		if skip[c.Request.URL.Path] {
			return
		}

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.Any("headers", MaskHeaders(c.Request.Header)),
		}
		if len(c.Errors) > 0 {
			zap.L().Warn("request failed", append(fields, zap.String("errors", c.Errors.String()))...)
			return
		}
		zap.L().Info("request completed", fields...)
	}
}
