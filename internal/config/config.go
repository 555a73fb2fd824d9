package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment.
type Config struct {
	HTTPAddr string // HTTP listen address (:8080)
	GRPCAddr string // gRPC listen address (:50051)

	StoreBackend string // file / sqlite / mysql / memory
	DataDir      string // root for the file and sqlite backends
	MySQLDSN     string // required when StoreBackend is mysql

	LockBackend string        // memory / redis
	RedisAddr   string        // used by the redis lock backend
	LockTTL     time.Duration // how long an abandoned lock survives
	LockWait    time.Duration // how long a caller waits for a lock

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Load reads .env (if present) and the environment, applying defaults.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		GRPCAddr:     getEnv("GRPC_ADDR", ":50051"),
		StoreBackend: getEnv("STORE_BACKEND", "file"),
		DataDir:      getEnv("DATA_DIR", "./data"),
		MySQLDSN:     os.Getenv("MYSQL_DSN"),
		LockBackend:  getEnv("LOCK_BACKEND", "memory"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
	}

	var err error
	if cfg.LockTTL, err = getDuration("LOCK_TTL", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.LockWait, err = getDuration("LOCK_WAIT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}

	switch cfg.StoreBackend {
	case "file", "sqlite", "memory":
	case "mysql":
		if cfg.MySQLDSN == "" {
			return Config{}, fmt.Errorf("MYSQL_DSN is required when STORE_BACKEND=mysql")
		}
	default:
		return Config{}, fmt.Errorf("STORE_BACKEND must be file, sqlite, mysql or memory, got %q", cfg.StoreBackend)
	}

	switch cfg.LockBackend {
	case "memory", "redis":
	default:
		return Config{}, fmt.Errorf("LOCK_BACKEND must be memory or redis, got %q", cfg.LockBackend)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, v)
	}
	return d, nil
}
