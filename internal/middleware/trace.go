package middleware

import (
	"time"

	"ecoRecommend/business/recommendation"
	"ecoRecommend/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TraceID tags each request with a trace id, reusing X-Request-ID when the
// caller sends one, and logs the request once it completes.
func TraceID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			traceID := req.Header.Get(echo.HeaderXRequestID)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			c.Response().Header().Set(echo.HeaderXRequestID, traceID)
			c.SetRequest(req.WithContext(recommendation.ContextWithTraceID(req.Context(), traceID)))

			start := time.Now()
			err := next(c)

			logger.Debug("http_request",
				"trace_id", traceID,
				"method", req.Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
			)

			return err
		}
	}
}
