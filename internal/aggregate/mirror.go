package aggregate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	platformredis "crewly/internal/platform/redis"
	"crewly/pkg/platform/sentinel"
)

const mirrorKey = "crewly:aggregate:snapshot"

// Mirror persists the published snapshot in Redis so other instances (and
// fresh restarts) can serve dashboards without waiting for a rebuild. The
// whole snapshot is one serialized value; SET replaces it atomically, so a
// reader never observes a partially written version.
type Mirror struct {
	client *platformredis.Client
	ttl    time.Duration
}

// NewMirror wraps a Redis client. TTL should comfortably exceed the rebuild
// interval; a stale-but-complete snapshot beats none.
func NewMirror(client *platformredis.Client, ttl time.Duration) *Mirror {
	return &Mirror{client: client, ttl: ttl}
}

// wireSnapshot is the serialized form.
type wireSnapshot struct {
	BuiltAt     time.Time           `json:"built_at"`
	Errors      int                 `json:"errors"`
	Contractors []ContractorSummary `json:"contractors"`
}

// Publish stores the snapshot as a single value.
func (m *Mirror) Publish(ctx context.Context, snapshot *Snapshot) error {
	payload, err := json.Marshal(wireSnapshot{
		BuiltAt:     snapshot.BuiltAt(),
		Errors:      snapshot.ErrorCount(),
		Contractors: snapshot.Summaries(),
	})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := m.client.Set(ctx, mirrorKey, payload, m.ttl).Err(); err != nil {
		return fmt.Errorf("publish snapshot: %w", err)
	}
	return nil
}

// Load reads the last published snapshot.
// Returns sentinel.ErrNotFound when no snapshot has been published.
func (m *Mirror) Load(ctx context.Context) (*Snapshot, error) {
	payload, err := m.client.Get(ctx, mirrorKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	var wire wireSnapshot
	if err := json.Unmarshal(payload, &wire); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return NewSnapshot(wire.BuiltAt, wire.Contractors, wire.Errors), nil
}
