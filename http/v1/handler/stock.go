package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/store-console/internal/constants"
	"github.com/benedict-erwin/store-console/internal/entities/stock"
	"github.com/benedict-erwin/store-console/pkg/response"
	"github.com/benedict-erwin/store-console/pkg/tabular"
)

// Stock returns one page of the stock report for ?from=YYYY-MM-DD&to=YYYY-MM-DD
func Stock(c echo.Context) error {
	q, err := bindList(c)
	if err != nil {
		return response.FailWithCodeAndMessage(c, constants.CodeValidationFailed, err.Error())
	}

	rng := stock.Query{From: c.QueryParam("from"), To: c.QueryParam("to")}
	if err := c.Validate(&rng); err != nil {
		return response.FailWithCodeAndMessage(c, constants.CodeMissingParameter, stock.ErrDateRange.Error())
	}

	rows, err := scoped(c).Stock(c.Request().Context(), rng)
	if err != nil {
		return upstreamError(c, err)
	}
	return response.Success(c, tabular.Paginate(tabular.Filter(rows, q.Q), q.Page, q.Size))
}
