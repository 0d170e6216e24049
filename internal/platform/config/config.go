package config

import (
	"os"
	"strconv"
	"time"
)

// Defaults for the classification pipeline. The assessment window and the
// aggregate rebuild cadence are deliberately config, not constants scattered
// through services.
const (
	DefaultAssessmentWindow = 90 * 24 * time.Hour
	DefaultRebuildInterval  = 15 * time.Minute
	DefaultRebuildBudget    = 2 * time.Minute
	DefaultBatchWorkers     = 8
)

// Server captures process-level configuration.
type Server struct {
	Addr             string
	PostgresURL      string
	Redis            RedisConfig
	AssessmentWindow time.Duration
	RebuildInterval  time.Duration
	RebuildBudget    time.Duration
	BatchWorkers     int
}

// RedisConfig captures Redis connection settings for the aggregate mirror.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("CREWLY_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Server{
		Addr:        addr,
		PostgresURL: os.Getenv("CREWLY_POSTGRES_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("CREWLY_REDIS_URL"),
			PoolSize:     envInt("CREWLY_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("CREWLY_REDIS_MIN_IDLE", 2),
			DialTimeout:  envDuration("CREWLY_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("CREWLY_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("CREWLY_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		AssessmentWindow: envDuration("CREWLY_ASSESSMENT_WINDOW", DefaultAssessmentWindow),
		RebuildInterval:  envDuration("CREWLY_REBUILD_INTERVAL", DefaultRebuildInterval),
		RebuildBudget:    envDuration("CREWLY_REBUILD_BUDGET", DefaultRebuildBudget),
		BatchWorkers:     envInt("CREWLY_BATCH_WORKERS", DefaultBatchWorkers),
	}
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if v, err := time.ParseDuration(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}
