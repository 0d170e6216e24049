//go:build integration

package containers

import (
	"sync"
	"testing"
)

// Manager shares one container of each kind across all integration test
// suites in a package run. Ryuk terminates containers when the process exits.
type Manager struct {
	mu       sync.Mutex
	postgres *PostgresContainer
	redis    *RedisContainer
}

var shared = &Manager{}

// GetPostgres returns the shared Postgres container, starting it on first use.
func GetPostgres(t *testing.T) *PostgresContainer {
	t.Helper()
	shared.mu.Lock()
	defer shared.mu.Unlock()
	if shared.postgres == nil {
		shared.postgres = NewPostgresContainer(t)
	}
	return shared.postgres
}

// GetRedis returns the shared Redis container, starting it on first use.
func GetRedis(t *testing.T) *RedisContainer {
	t.Helper()
	shared.mu.Lock()
	defer shared.mu.Unlock()
	if shared.redis == nil {
		shared.redis = NewRedisContainer(t)
	}
	return shared.redis
}
