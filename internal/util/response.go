package util

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// Every endpoint answers with the same envelope:
// {"success": bool, "data"?: ..., "message"?: string}

// Success writes a success envelope with a data payload.
func Success(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// SuccessMessage writes a success envelope carrying only a message.
func SuccessMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

// Error writes a failure envelope. Typed *AppError values keep their
// status and message; anything else becomes a 500, with the underlying
// error and stack exposed only outside release mode.
func Error(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.StatusCode, gin.H{
			"success": false,
			"message": appErr.Message,
		})
		return
	}

	body := gin.H{
		"success": false,
		"message": "Internal server error",
	}
	if gin.Mode() != gin.ReleaseMode {
		body["error"] = err.Error()
		body["stack"] = string(debug.Stack())
	}
	c.JSON(http.StatusInternalServerError, body)
}
