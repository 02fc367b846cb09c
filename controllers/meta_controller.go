package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ServiceVersion is reported by the capability descriptor.
const ServiceVersion = "1.0.0"

// HealthCheck reports process liveness for uptime probes. It never touches
// the store.
func HealthCheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"message":   "Attendance service is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// APIInfo returns the static capability/version descriptor.
func APIInfo(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"name":    "attendance-api",
		"version": ServiceVersion,
		"endpoints": gin.H{
			"health": "GET /health",
			"list":   "GET /api/attendance",
			"create": "POST /api/attendance",
			"delete": "DELETE /api/attendance/:id",
		},
	})
}
