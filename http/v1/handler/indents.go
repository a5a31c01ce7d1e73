package handler

import (
	"bytes"

	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/store-console/internal/constants"
	"github.com/benedict-erwin/store-console/internal/entities/indents"
	"github.com/benedict-erwin/store-console/pkg/response"
	"github.com/benedict-erwin/store-console/pkg/tabular"
	"github.com/benedict-erwin/store-console/pkg/utils"
)

// ListIndents returns one page of all, pending or history indents filtered by ?q
func ListIndents(c echo.Context) error {
	q, err := bindList(c)
	if err != nil {
		return response.FailWithCodeAndMessage(c, constants.CodeValidationFailed, err.Error())
	}

	rows, err := scoped(c).IndentsByScope(c.Request().Context(), c.Param("scope"))
	if err != nil {
		return upstreamError(c, err)
	}
	return response.Success(c, tabular.Paginate(tabular.Filter(rows, q.Q), q.Page, q.Size))
}

// ExportIndents sends the filtered indents of a scope as CSV
func ExportIndents(c echo.Context) error {
	rows, err := scoped(c).IndentsByScope(c.Request().Context(), c.Param("scope"))
	if err != nil {
		return upstreamError(c, err)
	}

	var buf bytes.Buffer
	if err := tabular.WriteCSV(&buf, indents.CSVHeader, tabular.Filter(rows, c.QueryParam("q"))); err != nil {
		return response.FailWithCodeAndMessage(c, constants.CodeInternalError, err.Error())
	}
	name := tabular.ExportFileName(indents.ExportPrefix, utils.Now())
	return response.Attachment(c, name, "text/csv;charset=utf-8", buf.Bytes())
}

// DownloadIndents relays the store API spreadsheet of pending or history indents
func DownloadIndents(c echo.Context) error {
	file, err := scoped(c).DownloadStoreIndents(c.Request().Context(), c.Param("scope"))
	if err != nil {
		return upstreamError(c, err)
	}
	return response.Attachment(c, file.Name, file.ContentType, file.Content)
}
