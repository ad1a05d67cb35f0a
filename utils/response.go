package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse sends a structured JSON response
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError sends a structured error response with a machine-readable
// reason code alongside the human-readable message.
func JSONError(c *gin.Context, status int, reason string, err error, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"reason":  reason,
		"message": message,
		"error":   err.Error(),
	})
}
