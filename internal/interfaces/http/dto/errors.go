package dto

import "net/http"

// API error codes. Every error body carries one of these; clients branch on
// the code, never on the message text.
const (
	// Generic
	ErrCodeValidation    = "ERR_VALIDATION"
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeForbidden     = "ERR_FORBIDDEN"
	ErrCodeUnauthorized  = "ERR_UNAUTHORIZED"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
	ErrCodeBadRequest    = "ERR_BAD_REQUEST"
	ErrCodeInternal      = "ERR_INTERNAL"
	ErrCodeStorage       = "ERR_STORAGE"

	// Authentication
	ErrCodeTokenExpired    = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid    = "ERR_TOKEN_INVALID"
	ErrCodeTokenRevoked    = "ERR_TOKEN_REVOKED"
	ErrCodeTokenMaxRefresh = "ERR_TOKEN_MAX_REFRESH"
	ErrCodeAccountLocked   = "ERR_ACCOUNT_LOCKED"
	ErrCodeAccountInactive = "ERR_ACCOUNT_INACTIVE"
)

// ErrorCodeHTTPStatus maps API error codes to HTTP status codes.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:    http.StatusBadRequest,
	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeForbidden:     http.StatusForbidden,
	ErrCodeUnauthorized:  http.StatusUnauthorized,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,
	ErrCodeInternal:      http.StatusInternalServerError,
	ErrCodeStorage:       http.StatusInternalServerError,

	ErrCodeTokenExpired:    http.StatusUnauthorized,
	ErrCodeTokenInvalid:    http.StatusUnauthorized,
	ErrCodeTokenRevoked:    http.StatusUnauthorized,
	ErrCodeTokenMaxRefresh: http.StatusUnauthorized,
	ErrCodeAccountLocked:   http.StatusForbidden,
	ErrCodeAccountInactive: http.StatusForbidden,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to 500
// for unknown codes.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping translates domain error codes into API error codes.
// Domain codes describe what went wrong inside the model; API codes describe
// how the boundary should respond.
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":      ErrCodeNotFound,
	"USER_NOT_FOUND": ErrCodeNotFound,
	"FORBIDDEN":      ErrCodeForbidden,
	"UNAUTHORIZED":   ErrCodeUnauthorized,
	"ALREADY_EXISTS": ErrCodeAlreadyExists,
	"INVALID_STATE":  ErrCodeConflict,
	"STORAGE_ERROR":  ErrCodeStorage,
	"INTERNAL_ERROR": ErrCodeInternal,

	"INVALID_INPUT":        ErrCodeValidation,
	"INVALID_USERNAME":     ErrCodeValidation,
	"INVALID_PASSWORD":     ErrCodeValidation,
	"INVALID_EMAIL":        ErrCodeValidation,
	"INVALID_DISPLAY_NAME": ErrCodeValidation,

	"INVALID_CREDENTIALS": ErrCodeUnauthorized,
	"ACCOUNT_LOCKED":      ErrCodeAccountLocked,
	"ACCOUNT_DEACTIVATED": ErrCodeAccountInactive,
	"ACCOUNT_INACTIVE":    ErrCodeAccountInactive,
	"TOKEN_EXPIRED":       ErrCodeTokenExpired,
	"TOKEN_INVALID":       ErrCodeTokenInvalid,
	"TOKEN_MAX_REFRESH":   ErrCodeTokenMaxRefresh,
	"TOKEN_ERROR":         ErrCodeTokenInvalid,
	"PASSWORD_HASH_ERROR": ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to its API error code.
// Codes already in ERR_ form pass through; unknown codes fall back to
// ERR_INTERNAL so nothing internal leaks to clients.
func NormalizeErrorCode(code string) string {
	if _, ok := ErrorCodeHTTPStatus[code]; ok {
		return code
	}
	if mapped, ok := DomainErrorCodeMapping[code]; ok {
		return mapped
	}
	return ErrCodeInternal
}
