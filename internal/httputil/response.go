// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/uids/internal/errors"
)

// retryAfterSeconds is advertised when the cipher context pool is exhausted.
const retryAfterSeconds = "1"

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HandleErrorGin maps the error kind to an HTTP status code and writes a JSON response.
// Internal error details are logged but never returned to the client.
// Expected failures are logged at debug level, unexpected ones at error level.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	kind := apperrors.KindOf(err)

	var statusCode int
	var response ErrorResponse
	switch kind {
	case apperrors.KindInvalidInput:
		statusCode = http.StatusUnprocessableEntity
		response = ErrorResponse{Error: kind.String(), Message: err.Error()}

	case apperrors.KindUnavailable:
		statusCode = http.StatusServiceUnavailable
		response = ErrorResponse{Error: kind.String(), Message: "The service is busy, retry later"}
		c.Header("Retry-After", retryAfterSeconds)

	default:
		statusCode = http.StatusInternalServerError
		response = ErrorResponse{Error: kind.String(), Message: "An internal error occurred"}
	}

	if logger != nil {
		level := slog.LevelDebug
		if statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", response.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, response)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	})
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}
