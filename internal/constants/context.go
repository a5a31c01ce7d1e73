package constants

import "github.com/labstack/echo/v4"

const (
	// Internal usage
	RequestIDKey   = "x-req-id"
	BearerTokenKey = "x-bearer-token"

	// Header keys (in order of preference)
	HeaderRequestID      = "X-Request-ID"     // Primary standard
	HeaderCorrelationID  = "X-Correlation-ID" // Alternative
	HeaderRequestIDShort = "Request-ID"       // Modern format
)

// GetRequestIDFromHeaders extracts request ID from multiple possible headers
func GetRequestIDFromHeaders(c echo.Context) string {
	h := c.Request().Header
	for _, key := range []string{HeaderRequestID, HeaderCorrelationID, HeaderRequestIDShort} {
		if id := h.Get(key); id != "" {
			return id
		}
	}
	return ""
}

// GetRequestID extracts request ID from Echo context
func GetRequestID(c echo.Context) string {
	rid, _ := c.Get(RequestIDKey).(string)
	return rid
}

// GetBearerToken returns the token the auth middleware accepted, "" when none
func GetBearerToken(c echo.Context) string {
	tok, _ := c.Get(BearerTokenKey).(string)
	return tok
}
