// Package session stores per-user interview context: at most one résumé
// profile and one job context per session id.
//
// The memory backend lives inside one process, so a session created on one
// server instance is invisible to every other instance. The redis and
// postgres backends are shared and survive restarts.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/interview-assistant/internal/types"
)

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// DefaultTTL is how long redis keeps an idle session when Config.TTL is unset.
const DefaultTTL = 24 * time.Hour

// ErrNotFound is returned by Get for an unknown or expired session id.
var ErrNotFound = errors.New("session not found")

// Store persists sessions. Each upsert creates the session when absent and
// replaces exactly one field; implementations are safe for concurrent use.
type Store interface {
	Get(ctx context.Context, id string) (*types.Session, error)
	UpsertResume(ctx context.Context, id string, profile *types.ResumeProfile) (*types.Session, error)
	UpsertJob(ctx context.Context, id string, job *types.JobContext) (*types.Session, error)
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Backend string
	// TTL expires idle sessions. Zero keeps memory sessions for the life of
	// the process and gives redis keys DefaultTTL.
	TTL           time.Duration
	RedisURL      string
	RedisPassword string
	RedisDB       int
	DatabaseURL   string
}

// NewID returns a random session identifier.
func NewID() string {
	return uuid.NewString()
}

// Open creates the Store named by cfg.Backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryStore(cfg.TTL), nil
	case BackendRedis:
		ttl := cfg.TTL
		if ttl <= 0 {
			ttl = DefaultTTL
		}
		return NewRedisStore(ctx, cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB, ttl)
	case BackendPostgres:
		return NewPostgresStore(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}
