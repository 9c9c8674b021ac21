package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIError is the envelope of every failed request.
type APIError struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Error     string      `json:"error"`
	Details   interface{} `json:"details,omitempty"`
}

// Message is the body of mutations that return nothing but a confirmation.
type Message struct {
	Message string `json:"message"`
}

func Error(ctx *gin.Context, status int, message string, details interface{}) APIError {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return APIError{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Error:     message,
		Details:   details,
	}
}

// AbortError writes the error envelope and stops the handler chain.
func AbortError(ctx *gin.Context, status int, message string, details interface{}) {
	resp := Error(ctx, status, message, details)
	ctx.AbortWithStatusJSON(resp.Status, resp)
}

// Success writes data as the raw response body; clients consume entities and
// lists directly.
func Success[T any](ctx *gin.Context, status int, data T) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, data)
}

func OK(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusOK, Message{Message: message})
}
