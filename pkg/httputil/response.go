package httputil

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medagenda/agenda-api/pkg/errors"
	"github.com/medagenda/agenda-api/pkg/locker"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents API error
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithCreated sends a 201 response
func RespondWithCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithError sends an error response. AppError kinds keep their
// taxonomy name so clients can map them to localized messages. Lock
// contention is transient, not a server fault, so it maps to 503 with
// a retry hint instead of 500.
func RespondWithError(c *gin.Context, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"
	kind := ""

	if stderrors.Is(err, locker.ErrLockNotAcquired) {
		c.Header("Retry-After", "1")
		statusCode = http.StatusServiceUnavailable
		message = "schedule is busy, retry shortly"
		kind = "busy"
	}

	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		statusCode = appErr.StatusCode()
		message = appErr.Message
		kind = kindName(appErr.Code)
	}

	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    statusCode,
			Kind:    kind,
			Message: message,
		},
	})
}

func kindName(code errors.ErrorCode) string {
	switch code {
	case errors.ErrNotFound:
		return "not_found"
	case errors.ErrBadRequest:
		return "bad_request"
	case errors.ErrInvalidRange:
		return "invalid_range"
	case errors.ErrInvalidInterval:
		return "invalid_interval"
	case errors.ErrConflict:
		return "conflict"
	case errors.ErrInvalidTransition:
		return "invalid_transition"
	default:
		return "internal"
	}
}
