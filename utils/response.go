package utils

import "github.com/gin-gonic/gin"

// Every API response is wrapped in the {success, ...} envelope. Success
// payloads add their own fields next to the flag; failures carry a
// human-readable error and, for store failures, the underlying error text.

// Fail writes the error envelope with the given status.
func Fail(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

// FailWithDetails includes the underlying error text for diagnostics.
func FailWithDetails(ctx *gin.Context, status int, message, details string) {
	ctx.JSON(status, gin.H{
		"success": false,
		"error":   message,
		"details": details,
	})
}
