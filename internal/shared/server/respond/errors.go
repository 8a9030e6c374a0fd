package respond

import (
	"github.com/gin-gonic/gin"

	"edujobs-backend/internal/shared/telemetry"
)

// ErrorBody is the error object every endpoint answers with.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
	Details   any    `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error logs the failure and aborts with {"error": {...}}. 5xx are logged at
// error level, the rest as warnings.
func Error(c *gin.Context, status int, code, message string, details any) {
	body := ErrorBody{
		Code:      code,
		Message:   message,
		RequestID: c.GetString("requestId"),
		Details:   details,
	}

	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"route":      c.FullPath(),
		"method":     c.Request.Method,
		"request_id": body.RequestID,
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	if status >= 500 {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{Error: body})
}
