package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/store-console/internal/constants"
	"github.com/benedict-erwin/store-console/pkg/response"
	"github.com/benedict-erwin/store-console/pkg/tabular"
)

// ListPurchaseOrders returns one page of pending or history purchase orders
func ListPurchaseOrders(c echo.Context) error {
	q, err := bindList(c)
	if err != nil {
		return response.FailWithCodeAndMessage(c, constants.CodeValidationFailed, err.Error())
	}

	rows, err := scoped(c).PurchaseOrders(c.Request().Context(), c.Param("scope"))
	if err != nil {
		return upstreamError(c, err)
	}
	return response.Success(c, tabular.Paginate(tabular.Filter(rows, q.Q), q.Page, q.Size))
}

// DownloadPurchaseOrders relays the PO service spreadsheet
func DownloadPurchaseOrders(c echo.Context) error {
	file, err := scoped(c).DownloadPurchaseOrders(c.Request().Context(), c.Param("scope"))
	if err != nil {
		return upstreamError(c, err)
	}
	return response.Attachment(c, file.Name, file.ContentType, file.Content)
}
