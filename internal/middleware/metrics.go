package middleware

import (
	"time"

	"vendor-service/pkg/logger"
	"vendor-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// MetricsMiddleware records request metrics and logs every request with the
// request-scoped logger
func MetricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// Start timer for request duration
		start := time.Now()

		// Process request
		err := next(c)

		// Calculate request duration
		duration := time.Since(start).Seconds()

		// Get request details
		method := c.Request().Method
		path := c.Path()
		status := c.Response().Status

		// Record metrics
		prometheus.RecordHTTPRequest(method, path, status, duration)

		// Log request details
		log := logger.FromContext(c)
		log.Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", status),
			zap.Float64("duration_s", duration),
			zap.String("ip", c.RealIP()),
		)

		return err
	}
}
