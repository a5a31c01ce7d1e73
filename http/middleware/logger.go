package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/store-console/internal/constants"
	"github.com/benedict-erwin/store-console/pkg/logger"
	"github.com/benedict-erwin/store-console/pkg/utils"
)

// Logger middleware logs HTTP requests with timing and assigns request IDs.
// The ID is echoed back in X-Request-ID and forwarded upstream by the handlers.
func Logger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := utils.Now()

		reqID := constants.GetRequestIDFromHeaders(c)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(constants.RequestIDKey, reqID)
		c.Response().Header().Set(constants.HeaderRequestID, reqID)

		err := next(c)

		latency := time.Since(start).Microseconds()
		status := c.Response().Status
		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
		}

		logger.WithScope("accessLog").Info().
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Int("status", status).
			Int64("latency", latency).
			Str("request-id", reqID).
			Msg("HTTP Request")

		return err
	}
}
