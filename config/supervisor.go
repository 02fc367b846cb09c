package config

import (
	"log"
	"time"

	"gorm.io/gorm"
)

// BootState tracks the startup supervisor's progress toward a usable
// database connection.
type BootState int

const (
	Connecting BootState = iota
	Retrying
	Ready
	Failed
)

func (s BootState) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Retrying:
		return "retrying"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// ConnectFunc establishes the database pool and bootstraps the schema.
type ConnectFunc func(AppConfig) (*gorm.DB, error)

// ConnectWithRetry drives the Connecting -> Retrying -> Ready|Failed state
// machine around connect. Each failed attempt sleeps for the configured
// backoff; exhausting the retry budget returns the last error so the caller
// can exit non-zero. This is the only retrying failure policy in the service;
// request-level store errors are reported to the client as-is.
func ConnectWithRetry(cfg AppConfig, connect ConnectFunc) (*gorm.DB, error) {
	retries := cfg.DBConnectRetries
	if retries < 1 {
		retries = 1
	}

	state := Connecting
	var lastErr error

	for attempt := 1; attempt <= retries; attempt++ {
		log.Printf("database boot: state=%s attempt=%d/%d", state, attempt, retries)

		db, err := connect(cfg)
		if err == nil {
			state = Ready
			log.Printf("database boot: state=%s", state)
			return db, nil
		}

		lastErr = err
		if attempt == retries {
			break
		}

		state = Retrying
		log.Printf("database boot: state=%s after error: %v (next attempt in %s)", state, err, cfg.DBConnectBackoff)
		time.Sleep(cfg.DBConnectBackoff)
	}

	state = Failed
	log.Printf("database boot: state=%s after %d attempts: %v", state, retries, lastErr)
	return nil, lastErr
}
