package response

import (
	"bytes"
	"net/http"
	"sync"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/store-console/internal/constants"
)

// Buffer pool for JSON encoding
var bufferPool = sync.Pool{
	New: func() any {
		return &bytes.Buffer{}
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// putBuffer returns buffer to pool unless it grew past 64KB
func putBuffer(buf *bytes.Buffer) {
	const maxBufferSize = 64 * 1024
	if buf.Cap() < maxBufferSize {
		bufferPool.Put(buf)
	}
}

func fastJSON(c echo.Context, code int, obj any) error {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(obj); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
	c.Response().WriteHeader(code)
	_, err := c.Response().Write(buf.Bytes())
	return err
}

// Response is the envelope of every JSON answer
type Response struct {
	Success   bool   `json:"success"`
	Code      int    `json:"code"`
	Data      any    `json:"data"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// Success returns a successful response with data
func Success(c echo.Context, data any) error {
	return fastJSON(c, http.StatusOK, Response{
		Success:   true,
		Code:      constants.CodeSuccess,
		Data:      data,
		Message:   "Successful",
		RequestID: constants.GetRequestID(c),
	})
}

// Fail returns an error response with message
func Fail(c echo.Context, httpStatus int, code int, message string) error {
	return General(c, httpStatus, code, nil, message)
}

// General returns a customizable response
func General(c echo.Context, httpStatus int, code int, data any, message string) error {
	return fastJSON(c, httpStatus, Response{
		Success:   httpStatus < 400,
		Code:      code,
		Data:      data,
		Message:   message,
		RequestID: constants.GetRequestID(c),
	})
}

// FailWithCode returns an error response using standardized error code
func FailWithCode(c echo.Context, code int) error {
	return FailWithCodeAndMessage(c, code, constants.GetErrorMessage(code))
}

// FailWithCodeAndMessage returns an error response with custom message
func FailWithCodeAndMessage(c echo.Context, code int, customMessage string) error {
	return General(c, constants.GetHTTPStatusFromCode(code), code, nil, customMessage)
}

// FailWithCodeAndData returns an error response carrying data, e.g. a login redirect
func FailWithCodeAndData(c echo.Context, code int, message string, data any) error {
	return General(c, constants.GetHTTPStatusFromCode(code), code, data, message)
}

// Attachment sends a file download with the given name
func Attachment(c echo.Context, name, contentType string, content []byte) error {
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Blob(http.StatusOK, contentType, content)
}
