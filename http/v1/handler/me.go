package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/store-console/pkg/response"
)

// Me returns the signed-in user as the store API knows them
func Me(c echo.Context) error {
	user, err := scoped(c).Me(c.Request().Context())
	if err != nil {
		return upstreamError(c, err)
	}
	return response.Success(c, user)
}
