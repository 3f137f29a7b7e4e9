package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// Error sends a JSON error response.
// AppErrors are reported with their own status and message; anything else is
// logged and hidden behind a generic 500.
func Error(c *gin.Context, err error) {
	requestID := c.GetString("request_id")

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= http.StatusInternalServerError {
			slog.ErrorContext(c.Request.Context(), "request failed",
				"request_id", requestID, "path", c.FullPath(), "error", err)
		}
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message, RequestID: requestID})
		return
	}

	slog.ErrorContext(c.Request.Context(), "unhandled error",
		"request_id", requestID, "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", RequestID: requestID})
}

// BadRequest reports a binding or validation failure.
func BadRequest(c *gin.Context, message string, err error) {
	body := gin.H{"error": message}
	if err != nil {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusBadRequest, body)
}
