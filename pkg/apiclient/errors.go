package apiclient

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/goccy/go-json"
)

var (
	// ErrUnauthorized is returned after the server answered 401; the token is already cleared
	ErrUnauthorized = errors.New("Unauthorized")
	// ErrRequestFailed is returned when no candidate produced a usable error
	ErrRequestFailed = errors.New("Request failed")
)

// routeMissPattern recognizes transports that report a missing route only in text
var routeMissPattern = regexp.MustCompile(`(?i)404|route not found`)

// Error is a non-2xx response from the store API
type Error struct {
	Status  int
	Message string
	Body    []byte
	BaseURL string
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap lets errors.Is(err, ErrUnauthorized) match 401 responses
func (e *Error) Unwrap() error {
	if e.Status == 401 {
		return ErrUnauthorized
	}
	return nil
}

// NotFound reports whether the response was a 404
func (e *Error) NotFound() bool {
	return e.Status == 404
}

// RouteNotFoundError lets a custom transport flag a missing route explicitly,
// which the client treats like a 404 from the server.
type RouteNotFoundError struct {
	URL string
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("route not found: %s", e.URL)
}

// IsUnauthorized reports whether err came from a 401 response
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// errorFromResponse extracts the best message from an error body:
// message, then error, then a generic status line. Non-JSON bodies are used verbatim.
func errorFromResponse(status int, body []byte) *Error {
	apiErr := &Error{Status: status, Body: body}

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		apiErr.Message = string(body)
		if apiErr.Message == "" {
			apiErr.Message = ErrRequestFailed.Error()
		}
		return apiErr
	}

	if envelope, ok := parsed.(map[string]any); ok {
		if msg, ok := truthy(envelope["message"]); ok {
			apiErr.Message = msg
		} else if msg, ok := truthy(envelope["error"]); ok {
			apiErr.Message = msg
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("HTTP error! status: %d", status)
	}
	return apiErr
}

// truthy stringifies values that would count as a usable message
func truthy(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, val != ""
	case bool:
		return "true", val
	case float64:
		return fmt.Sprint(val), val != 0
	default:
		return fmt.Sprint(val), true
	}
}

// isRoutingMiss classifies a transport error as a missing route
func isRoutingMiss(err error) bool {
	var rnf *RouteNotFoundError
	if errors.As(err, &rnf) {
		return true
	}
	return routeMissPattern.MatchString(err.Error())
}
