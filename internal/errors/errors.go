package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/freelance-marketplace-api/internal/constants"
)

// Error codes
const (
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// APIError is the error envelope of every failed request. The message is
// served under "error", the key existing clients read.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// RespondWithError aborts the request with err, stamped with the request ID
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	if id := c.GetString(constants.ContextKeyRequestID); id != "" {
		err.RequestID = id
	}
	c.AbortWithStatusJSON(statusCode, err)
}

// Defaults for each status, used when a helper is called with an empty message.
var defaults = map[int]APIError{
	http.StatusBadRequest:          {Code: ErrCodeInvalidInput, Message: "Invalid request"},
	http.StatusUnauthorized:        {Code: ErrCodeUnauthorized, Message: "Authentication required"},
	http.StatusForbidden:           {Code: ErrCodeForbidden, Message: "Access denied"},
	http.StatusNotFound:            {Code: ErrCodeNotFound, Message: "Resource not found"},
	http.StatusInternalServerError: {Code: ErrCodeInternalError, Message: "Internal server error"},
}

func respondStatus(c *gin.Context, status int, message string) {
	d := defaults[status]
	if message == "" {
		message = d.Message
	}
	RespondWithError(c, status, NewAPIError(d.Code, message))
}

// Unauthorized aborts with 401. Missing or rejected bearer tokens land here.
func Unauthorized(c *gin.Context, message string) {
	respondStatus(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	respondStatus(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	respondStatus(c, http.StatusNotFound, message)
}

// BadRequest aborts with 400 for malformed identifiers and failed validation.
func BadRequest(c *gin.Context, message string) {
	respondStatus(c, http.StatusBadRequest, message)
}

// InternalError aborts with 500. Callers pass "" so store details never reach
// the client.
func InternalError(c *gin.Context, message string) {
	respondStatus(c, http.StatusInternalServerError, message)
}
