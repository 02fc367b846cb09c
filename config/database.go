package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/attendly/attendance-api/models"
)

// InitDatabase establishes a connection to MySQL, tunes the underlying
// connection pool, and ensures the attendance schema exists. Errors are
// returned to the caller so the startup supervisor can apply its retry
// policy instead of aborting in place.
func InitDatabase(cfg AppConfig) (*gorm.DB, error) {
	var dsn string
	if cfg.DatabaseURI != "" {
		dsn = cfg.DatabaseURI
	} else {
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBName,
		)
	}

	// Raise the slow-sql threshold to keep per-statement noise out of the logs.
	gLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             2 * time.Second,
			LogLevel:                  toGormLogLevel(cfg.LogLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gLogger})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	// Recycle idle connections before the server's wait_timeout claims them.
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	// Ping at startup to expose network/auth problems before the first query.
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database ping: %w", err)
	}

	if err := bootstrapSchema(db); err != nil {
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}

	return db, nil
}

// bootstrapSchema creates the attendance table when it is absent. Safe to run
// on every start; existing tables are left untouched.
func bootstrapSchema(db *gorm.DB) error {
	if db.Migrator().HasTable(&models.Attendance{}) {
		return nil
	}
	return db.AutoMigrate(&models.Attendance{})
}

// toGormLogLevel maps application LogLevel to GORM's logger level.
func toGormLogLevel(level string) logger.LogLevel {
	switch level {
	case "debug":
		// GORM 'Info' shows SQL; use with caution
		return logger.Info
	case "warn", "info", "":
		return logger.Warn
	case "error":
		return logger.Error
	case "silent":
		return logger.Silent
	default:
		return logger.Warn
	}
}
