package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/store-console/pkg/response"
)

// Dashboard returns the indent summary with derived rates and gate pass counts
func Dashboard(c echo.Context) error {
	view, err := scoped(c).DashboardView(c.Request().Context())
	if err != nil {
		return upstreamError(c, err)
	}
	return response.Success(c, view)
}

// GatePassCounts returns the repair gate pass totals
func GatePassCounts(c echo.Context) error {
	counts, err := scoped(c).GatePassCounts(c.Request().Context())
	if err != nil {
		return upstreamError(c, err)
	}
	return response.Success(c, counts)
}
