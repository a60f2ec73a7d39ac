package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeRateLimited  = "RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall through to 500.
var ErrorCodeHTTPStatus = map[string]int{
	// Input and validation failures -> 400
	ErrCodeBadRequest:        http.StatusBadRequest,
	"INVALID_INPUT":          http.StatusBadRequest,
	"NO_VALID_FIELDS":        http.StatusBadRequest,
	"INVALID_EMAIL":          http.StatusBadRequest,
	"INVALID_PASSWORD":       http.StatusBadRequest,
	"PASSWORD_MISMATCH":      http.StatusBadRequest,
	"INVALID_ROLE":           http.StatusBadRequest,
	"INVALID_STATUS":         http.StatusBadRequest,
	"INVALID_INVOICE_NO":     http.StatusBadRequest,
	"EMPTY_INVOICE":          http.StatusBadRequest,
	"INVALID_DOCUMENT_FIELD": http.StatusBadRequest,
	"ALREADY_EXISTS":         http.StatusBadRequest,

	// OTP flow failures -> 400
	"INVALID_OTP_FORMAT":   http.StatusBadRequest,
	"INVALID_OTP":          http.StatusBadRequest,
	"OTP_NOT_FOUND":        http.StatusBadRequest,
	"OTP_EXPIRED":          http.StatusBadRequest,
	"OTP_MAX_ATTEMPTS":     http.StatusBadRequest,
	"RESET_NOT_VERIFIED":   http.StatusBadRequest,
	"RESET_WINDOW_EXPIRED": http.StatusBadRequest,

	// Auth failures
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"ACCOUNT_INACTIVE":    http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,
	"INVALID_TOKEN":       http.StatusForbidden,
	"TOKEN_EXPIRED":       http.StatusForbidden,

	// Resource failures
	"NOT_FOUND":            http.StatusNotFound,
	"EMAIL_NOT_REGISTERED": http.StatusNotFound,

	// Rate limiting
	ErrCodeRateLimited: http.StatusTooManyRequests,

	// Downstream failures -> 500
	ErrCodeInternal:           http.StatusInternalServerError,
	"OTP_SEND_FAILED":         http.StatusInternalServerError,
	"QUOTATION_SEND_FAILED":   http.StatusInternalServerError,
	"TOKEN_GENERATION_FAILED": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes are treated as internal errors.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
