package main

import (
	"errors"
	"net/http"
	"os"

	"github.com/attendly/attendance-api/config"
	"github.com/attendly/attendance-api/repos"
	"github.com/attendly/attendance-api/routes"
	"github.com/attendly/attendance-api/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	// Bring up the pool and attendance schema under the retry supervisor;
	// exhausting the budget terminates the process.
	db, err := config.ConnectWithRetry(cfg, config.InitDatabase)
	if err != nil {
		utils.Sugar.Errorf("database unavailable after %d attempts: %v", cfg.DBConnectRetries, err)
		os.Exit(1)
	}

	repo := repos.NewGormAttendanceRepo(db, cfg.DBAcquireTimeout)
	r := routes.SetupRouter(cfg, repo)

	srv := utils.NewServer(":"+cfg.AppPort, r, utils.DefaultReadTimeout, utils.DefaultWriteTimeout)
	srv.OnShutdown(func() {
		sqlDB, err := db.DB()
		if err != nil {
			utils.Sugar.Warnf("database pool handle unavailable on shutdown: %v", err)
			return
		}
		if err := sqlDB.Close(); err != nil {
			utils.Sugar.Warnf("closing database pool: %v", err)
			return
		}
		utils.Sugar.Info("database pool drained")
	})

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
