package constants

// Error Code Categories
// Format: XYZABC where:
// X = Category (1-9)
// YZ = Subcategory (00-99)
// ABC = Specific error (000-999)

const (
	// SUCCESS CODES (0xxxx)
	CodeSuccess = 0

	// CLIENT ERROR CODES (4xxxx)
	// 400 Bad Request (40xxx)
	CodeBadRequest       = 40000 // Generic bad request
	CodeInvalidJSON      = 40001 // Invalid JSON payload
	CodeValidationFailed = 40002 // Validation failed
	CodeMissingParameter = 40003 // Required parameter missing
	CodeInvalidParameter = 40004 // Invalid parameter value
	CodeInvalidFormat    = 40005 // Invalid format (dates, etc)

	// 401 Unauthorized (41xxx)
	CodeUnauthorized    = 41000 // Generic unauthorized
	CodeMissingAuth     = 41001 // Missing authentication
	CodeInvalidToken    = 41002 // Undecodable bearer token
	CodeExpiredToken    = 41003 // Expired bearer token
	CodeSessionRejected = 41004 // Upstream rejected the session

	// 403 Forbidden (43xxx)
	CodeForbidden = 43000 // Generic forbidden

	// 404 Not Found (44xxx)
	CodeNotFound         = 44000 // Generic not found
	CodeResourceNotFound = 44001 // Specific resource not found
	CodeEndpointNotFound = 44002 // Endpoint not found
	CodeUnknownScope     = 44003 // List scope not served

	// 409 Conflict (49xxx)
	CodeConflict = 49000 // Generic conflict

	// 422 Unprocessable Entity (42xxx)
	CodeUnprocessable    = 42000 // Generic unprocessable
	CodeDependencyFailed = 42002 // External dependency failed

	// 429 Too Many Requests (42xxx)
	CodeRateLimit = 42900 // Rate limit exceeded

	// SERVER ERROR CODES (5xxxx)
	// 500 Internal Server Error (50xxx)
	CodeInternalError      = 50000 // Generic internal error
	CodeRedisError         = 50003 // Redis error
	CodeConfigurationError = 50005 // Configuration error
	CodeTokenStoreError    = 50007 // Token store error

	// 502 Bad Gateway (52xxx)
	CodeBadGateway    = 52000 // Generic bad gateway
	CodeUpstreamError = 52001 // Upstream service error

	// 503 Service Unavailable (53xxx)
	CodeServiceUnavailable = 53000 // Generic service unavailable
	CodeRedisUnavailable   = 53002 // Redis unavailable
	CodeUpstreamDown       = 53004 // Store API unreachable

	// 504 Gateway Timeout (54xxx)
	CodeGatewayTimeout  = 54000 // Generic gateway timeout
	CodeUpstreamTimeout = 54001 // Upstream timeout
)

// Error Code Messages - for consistent error messaging
var ErrorMessages = map[int]string{
	CodeSuccess: "Success",

	// Client Errors (4xxxx)
	CodeBadRequest:       "Bad request",
	CodeInvalidJSON:      "Invalid JSON payload",
	CodeValidationFailed: "Validation failed",
	CodeMissingParameter: "Required parameter missing",
	CodeInvalidParameter: "Invalid parameter value",
	CodeInvalidFormat:    "Invalid format",

	CodeUnauthorized:    "Unauthorized",
	CodeMissingAuth:     "Authentication required: provide a Bearer token",
	CodeInvalidToken:    "Invalid bearer token",
	CodeExpiredToken:    "Token has expired",
	CodeSessionRejected: "Session rejected by store API",

	CodeForbidden: "Forbidden",

	CodeNotFound:         "Not found",
	CodeResourceNotFound: "Resource not found",
	CodeEndpointNotFound: "Endpoint not found",
	CodeUnknownScope:     "Unknown list scope",

	CodeConflict: "Conflict",

	CodeUnprocessable:    "Unprocessable entity",
	CodeDependencyFailed: "External dependency failed",

	CodeRateLimit: "Rate limit exceeded",

	// Server Errors (5xxxx)
	CodeInternalError:      "Internal server error",
	CodeRedisError:         "Redis error",
	CodeConfigurationError: "Configuration error",
	CodeTokenStoreError:    "Token store error",

	CodeBadGateway:    "Bad gateway",
	CodeUpstreamError: "Upstream service error",

	CodeServiceUnavailable: "Service unavailable",
	CodeRedisUnavailable:   "Redis unavailable",
	CodeUpstreamDown:       "Store API unreachable",

	CodeGatewayTimeout:  "Gateway timeout",
	CodeUpstreamTimeout: "Upstream timeout",
}

// GetErrorMessage returns the standard message for an error code
func GetErrorMessage(code int) string {
	if msg, exists := ErrorMessages[code]; exists {
		return msg
	}
	return "Unknown error"
}

// GetHTTPStatusFromCode returns the appropriate HTTP status code based on error code
func GetHTTPStatusFromCode(code int) int {
	switch {
	case code == 0:
		return 200
	case code >= 40000 && code < 41000:
		return 400
	case code >= 41000 && code < 42000:
		return 401
	case code >= 42900 && code < 43000:
		return 429
	case code >= 42000 && code < 42900:
		return 422
	case code >= 43000 && code < 44000:
		return 403
	case code >= 44000 && code < 45000:
		return 404
	case code >= 49000 && code < 50000:
		return 409
	case code >= 50000 && code < 51000:
		return 500
	case code >= 52000 && code < 53000:
		return 502
	case code >= 53000 && code < 54000:
		return 503
	case code >= 54000 && code < 55000:
		return 504
	default:
		return 500 // Default to internal server error
	}
}

// CodeFromHTTPStatus maps an HTTP status onto the generic code of its category
func CodeFromHTTPStatus(status int) int {
	switch status {
	case 400:
		return CodeBadRequest
	case 401:
		return CodeUnauthorized
	case 403:
		return CodeForbidden
	case 404:
		return CodeNotFound
	case 409:
		return CodeConflict
	case 422:
		return CodeUnprocessable
	case 429:
		return CodeRateLimit
	case 502:
		return CodeBadGateway
	case 503:
		return CodeServiceUnavailable
	case 504:
		return CodeGatewayTimeout
	default:
		return CodeInternalError
	}
}
