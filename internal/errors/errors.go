package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Validation
	ErrCodeMissingField = "MISSING_FIELD"

	// Identity
	ErrCodeDuplicateUsername = "DUPLICATE_USERNAME"
	ErrCodeNoSuchUser        = "NO_SUCH_USER"
	ErrCodeInvalidPassword   = "INVALID_PASSWORD"
	ErrCodeNotAuthenticated  = "NOT_AUTHENTICATED"

	// Library
	ErrCodeNoSuchGame      = "NO_SUCH_GAME"
	ErrCodeGameExists      = "GAME_EXISTS"
	ErrCodeNoSuchCopy      = "NO_SUCH_COPY"
	ErrCodeNotOwner        = "NOT_OWNER"
	ErrCodeInvalidProgress = "INVALID_PROGRESS"
	ErrCodeInvalidRating   = "INVALID_RATING"

	// Import
	ErrCodeImportFailed = "IMPORT_FAILED"

	// Persistence
	ErrCodeConflict      = "CONFLICT"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// APIError is the error half of the response envelope.
type APIError struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Reason
}

// NewAPIError creates a new APIError
func NewAPIError(code, reason string) *APIError {
	return &APIError{
		Code:   code,
		Reason: reason,
	}
}

// RespondWithError writes the uniform error envelope.
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, gin.H{
		"result": "error",
		"code":   err.Code,
		"reason": err.Reason,
	})
}

// RespondWithErrorDetails writes the error envelope plus extra fields, for
// errors that carry a payload (GAME_EXISTS returns the existing game).
func RespondWithErrorDetails(c *gin.Context, statusCode int, err *APIError, details gin.H) {
	body := gin.H{
		"result": "error",
		"code":   err.Code,
		"reason": err.Reason,
	}
	for k, v := range details {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// Helper functions for common error responses

// MissingField sends a 400 response
func MissingField(c *gin.Context, reason string) {
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeMissingField, reason))
}

// NotAuthenticated sends a 401 response
func NotAuthenticated(c *gin.Context) {
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeNotAuthenticated, "Not logged in."))
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, code, reason string) {
	RespondWithError(c, http.StatusNotFound, NewAPIError(code, reason))
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, code, reason string) {
	RespondWithError(c, http.StatusForbidden, NewAPIError(code, reason))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, code, reason string) {
	RespondWithError(c, http.StatusBadRequest, NewAPIError(code, reason))
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, code, reason string) {
	RespondWithError(c, http.StatusConflict, NewAPIError(code, reason))
}

// BadGateway sends a 502 response
func BadGateway(c *gin.Context, code, reason string) {
	RespondWithError(c, http.StatusBadGateway, NewAPIError(code, reason))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, reason string) {
	if reason == "" {
		reason = "Internal server error."
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, reason))
}
