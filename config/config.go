package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds environment driven configuration values.
// Sensitive data should never have defaults inside code and must be provided via env files or the environment.
type AppConfig struct {
	AppPort    string
	GinMode    string
	GinLogPath string

	// Database
	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	// Connection pool
	DBMaxOpenConns   int
	DBMaxIdleConns   int
	DBAcquireTimeout time.Duration

	// Startup supervisor
	DBConnectRetries int
	DBConnectBackoff time.Duration

	// CORS
	FrontendOrigin string

	RateLimitPerMinute int

	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var cfg AppConfig
var loaded bool

// Load reads the application configuration from the environment, falling back
// to an optional .env file for local development. It should be called once
// during boot.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	// Missing .env is the normal case in production.
	_ = godotenv.Load()

	cfg = AppConfig{
		AppPort:    getEnv("APP_PORT", "5000"),
		GinMode:    getEnv("GIN_MODE", "release"),
		GinLogPath: getEnv("GIN_LOG_PATH", "logs/go_gin.log"),

		DatabaseURI: getEnv("DATABASE_URI", ""),
		DBHost:      getEnv("DB_HOST", "127.0.0.1"),
		DBPort:      getEnv("DB_PORT", "3306"),
		DBUser:      getEnv("DB_USER", "root"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "attendance"),

		DBMaxOpenConns:   getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:   getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBAcquireTimeout: getEnvSeconds("DB_ACQUIRE_TIMEOUT_SEC", 60),

		DBConnectRetries: getEnvInt("DB_CONNECT_RETRIES", 3),
		DBConnectBackoff: getEnvSeconds("DB_CONNECT_BACKOFF_SEC", 5),

		FrontendOrigin: getEnv("FRONTEND_ORIGIN", ""),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogPath:       getEnv("LOG_PATH", "logs/attendance.log"),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 7),
		LogCompress:   getEnv("LOG_COMPRESS", "") == "true",
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// Reset clears the cached configuration so tests can reload from a fresh environment.
func Reset() {
	cfg = AppConfig{}
	loaded = false
}

// AllowedOrigins returns the CORS allow-list: the fixed local development
// origins plus the externally configured frontend origin when set.
func (c AppConfig) AllowedOrigins() []string {
	origins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
	}
	if c.FrontendOrigin != "" {
		origins = append(origins, c.FrontendOrigin)
	}
	return origins
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		log.Fatalf("invalid integer value for %s: %v", key, err)
	}
	return i
}

func getEnvSeconds(key string, defaultVal int) time.Duration {
	return time.Duration(getEnvInt(key, defaultVal)) * time.Second
}
