package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Authorization errors
	ErrCodeForbidden = "FORBIDDEN"

	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"

	// Service errors
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// APIError is the one error type every engine operation surfaces. Status is
// the HTTP status the handlers translate it to; Details carries structured
// validation context and is omitted for internal failures.
type APIError struct {
	Status  int         `json:"-"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// New creates an APIError with a status and code.
func New(status int, code, message string) *APIError {
	return &APIError{Status: status, Code: code, Message: message}
}

// Unauthorized builds a 401 error.
func Unauthorized(message string) *APIError {
	if message == "" {
		message = "Authentication required"
	}
	return New(http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// Forbidden builds a 403 error.
func Forbidden(message string) *APIError {
	if message == "" {
		message = "Access denied"
	}
	return New(http.StatusForbidden, ErrCodeForbidden, message)
}

// ForbiddenWithDetails builds a 403 error carrying structured details.
func ForbiddenWithDetails(message string, details interface{}) *APIError {
	err := Forbidden(message)
	err.Details = details
	return err
}

// NotFound builds a 404 error.
func NotFound(message string) *APIError {
	if message == "" {
		message = "Resource not found"
	}
	return New(http.StatusNotFound, ErrCodeNotFound, message)
}

// BadRequest builds a 400 error.
func BadRequest(message string) *APIError {
	if message == "" {
		message = "Invalid request"
	}
	return New(http.StatusBadRequest, ErrCodeInvalidInput, message)
}

// BadRequestWithDetails builds a 400 error carrying structured details.
func BadRequestWithDetails(message string, details interface{}) *APIError {
	err := BadRequest(message)
	err.Details = details
	return err
}

// Internal builds a 500 error. The wrapped cause is logged by callers but
// never serialized to the client.
func Internal() *APIError {
	return New(http.StatusInternalServerError, ErrCodeInternalError, "Internal server error")
}

// Respond writes err as a JSON response. Anything that is not an *APIError is
// treated as an unexpected failure and masked as a 500.
func Respond(c *gin.Context, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		apiErr = Internal()
	}
	c.JSON(apiErr.Status, apiErr)
}
