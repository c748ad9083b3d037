package dto

import "net/http"

// Transport error codes used when no domain error is available.
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes absent from the map are treated as business rule violations.
var errorCodeHTTPStatus = map[string]int{
	// missing resources
	"NOT_FOUND":               http.StatusNotFound,
	"ACCOUNT_NOT_FOUND":       http.StatusNotFound,
	"SOCIAL_RECORD_NOT_FOUND": http.StatusNotFound,
	"RECIPE_NOT_FOUND":        http.StatusNotFound,
	"COOKBOOK_NOT_FOUND":      http.StatusNotFound,
	"ENTRY_NOT_FOUND":         http.StatusNotFound,
	"ADDRESS_NOT_FOUND":       http.StatusNotFound,
	"NOTE_NOT_FOUND":          http.StatusNotFound,

	// conflicts with current state
	"ALREADY_EXISTS":     http.StatusConflict,
	"DUPLICATE_IDENTITY": http.StatusConflict,
	"ALREADY_FOLLOWING":  http.StatusConflict,
	"NOT_FOLLOWING":      http.StatusConflict,
	"ALREADY_BOOKMARKED": http.StatusConflict,
	"NOT_BOOKMARKED":     http.StatusConflict,
	"ALREADY_CLOSED":     http.StatusConflict,
	"NOT_CLOSED":         http.StatusConflict,

	// malformed input
	"INVALID_INPUT":         http.StatusBadRequest,
	"INVALID_USERNAME":      http.StatusBadRequest,
	"INVALID_EMAIL":         http.StatusBadRequest,
	"INVALID_IDENTITY_ID":   http.StatusBadRequest,
	"INVALID_SKILL_LEVEL":   http.StatusBadRequest,
	"INVALID_GENDER":        http.StatusBadRequest,
	"INVALID_PRONOUNS":      http.StatusBadRequest,
	"INVALID_BIRTH_DATE":    http.StatusBadRequest,
	"INVALID_ACCOUNT_ID":    http.StatusBadRequest,
	"INVALID_ACCOUNT_REF":   http.StatusBadRequest,
	"INVALID_COOKBOOK_NAME": http.StatusBadRequest,
	"INVALID_RECIPE_ID":     http.StatusBadRequest,
	"INVALID_RECIPE":        http.StatusBadRequest,
	"INVALID_NOTE":          http.StatusBadRequest,
	"INVALID_MEASUREMENT":   http.StatusBadRequest,
	"INVALID_QUANTITY":      http.StatusBadRequest,
	"INVALID_STEP":          http.StatusBadRequest,
	"INVALID_INGREDIENT":    http.StatusBadRequest,
	"INVALID_INSTRUCTION":   http.StatusBadRequest,
	"INVALID_TAG":           http.StatusBadRequest,

	// auth
	"UNAUTHORIZED": http.StatusUnauthorized,
	"FORBIDDEN":    http.StatusForbidden,

	// upstream dependencies
	"REMOTE_CALL_EXHAUSTED": http.StatusBadGateway,
	"PROVISIONING_FAILED":   http.StatusBadGateway,

	// everything else
	"BAD_REQUEST":    http.StatusBadRequest,
	"INTERNAL_ERROR": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
