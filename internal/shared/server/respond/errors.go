package respond

import (
	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/shared/telemetry"
)

// ErrorBody is the error object every failing endpoint returns.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse wraps the error body under an "error" key.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error logs the failure and aborts the request with the standard envelope.
func Error(c *gin.Context, status int, code, message string, details any) {
	telemetry.Error("http.error", errorFields(c, status, code, message))

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{Code: code, Message: message, Details: details},
	})
}

func errorFields(c *gin.Context, status int, code, message string) map[string]any {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	if isGuest, ok := c.Get("isGuest"); ok {
		fields["is_guest"] = isGuest
	}
	return fields
}
