package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/attendly/attendance-api/config"
	"github.com/attendly/attendance-api/controllers"
	"github.com/attendly/attendance-api/middleware"
	"github.com/attendly/attendance-api/repos"
	"github.com/attendly/attendance-api/utils"
)

// SetupRouter wires routes, middlewares, and controllers around the injected
// attendance store.
func SetupRouter(cfg config.AppConfig, repo repos.AttendanceRepo) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Access log and panic recovery go to a dedicated rolling file; recovery
	// normalizes panics to the 500 envelope.
	gl, err := utils.NewRollingFileLogger(cfg.GinLogPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(middleware.RequestID())
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(middleware.RequestID())
		r.Use(gin.Recovery())
	}

	r.Use(middleware.CORS(cfg.AllowedOrigins()))

	r.GET("/health", controllers.HealthCheck)

	attendanceController := controllers.NewAttendanceController(repo)

	api := r.Group("/api")
	api.Use(middleware.RateLimit(cfg.RateLimitPerMinute))
	api.GET("", controllers.APIInfo)
	api.GET("/attendance", attendanceController.ListRecords)
	api.POST("/attendance", attendanceController.CreateRecord)
	api.DELETE("/attendance/:id", attendanceController.DeleteRecord)

	r.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Route not found",
			"path":    ctx.Request.URL.Path,
		})
	})

	return r
}
