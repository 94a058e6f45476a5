package store

import "fmt"

type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendRedis    Backend = "redis"
	BackendPostgres Backend = "postgres"
)

type Config struct {
	Backend     Backend
	Redis       RedisConfig
	PostgresURL string
}

// Open builds the configured backend. Callers own closing it; memory
// and redis are cheap, postgres connects and migrates eagerly so a
// bad DSN fails at startup, not on first request.
func Open(cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendRedis:
		return NewRedis(cfg.Redis), nil
	case BackendPostgres:
		return NewPostgres(cfg.PostgresURL)
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Backend)
	}
}
