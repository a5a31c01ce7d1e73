package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/store-console/internal/services/health"
	"github.com/benedict-erwin/store-console/pkg/response"
	"github.com/benedict-erwin/store-console/pkg/utils"
)

// HealthLive returns basic liveness check
func HealthLive(c echo.Context) error {
	return response.Success(c, map[string]any{
		"status":    "alive",
		"timestamp": utils.NowFormatted(),
	})
}

// HealthReady checks the store API and the token store
func HealthReady(c echo.Context) error {
	status := deps.Health.CheckReadiness(c.Request().Context())

	httpStatus := http.StatusOK
	if status.Status != health.StatusReady {
		httpStatus = http.StatusServiceUnavailable
	}
	return response.General(c, httpStatus, 0, map[string]any{"readiness": status}, "Readiness check completed")
}
