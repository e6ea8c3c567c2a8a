package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/interview-assistant/internal/types"
)

const (
	fieldResume    = "resume"
	fieldJob       = "job"
	fieldCreatedAt = "createdAt"
	fieldUpdatedAt = "updatedAt"
)

// RedisStore keeps each session in a hash at session:<id>, refreshing its TTL on every write.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis. addr is either a redis:// or rediss:// URL
// or a plain host:port used with password and db.
func NewRedisStore(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RedisStore, error) {
	var opts *redis.Options
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr, Password: password, DB: db}
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

func redisKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// Get loads a session hash.
func (s *RedisStore) Get(ctx context.Context, id string) (*types.Session, error) {
	fields, err := s.client.HGetAll(ctx, redisKey(id)).Result()
	if err != nil {
		return nil, &StoreError{Op: "get", SessionID: id, Cause: err}
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	sess, err := decodeRedisSession(id, fields)
	if err != nil {
		return nil, &StoreError{Op: "get", SessionID: id, Cause: err}
	}
	return sess, nil
}

// UpsertResume sets the résumé field.
func (s *RedisStore) UpsertResume(ctx context.Context, id string, profile *types.ResumeProfile) (*types.Session, error) {
	return s.upsert(ctx, id, fieldResume, profile)
}

// UpsertJob sets the job field.
func (s *RedisStore) UpsertJob(ctx context.Context, id string, job *types.JobContext) (*types.Session, error) {
	return s.upsert(ctx, id, fieldJob, job)
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) upsert(ctx context.Context, id, field string, value any) (*types.Session, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, &StoreError{Op: "upsert " + field, SessionID: id, Cause: err}
	}

	key := redisKey(id)
	now := time.Now().UTC().Format(time.RFC3339Nano)

	// One MULTI/EXEC: create-if-absent, set the field, refresh expiry.
	pipe := s.client.TxPipeline()
	pipe.HSetNX(ctx, key, fieldCreatedAt, now)
	pipe.HSet(ctx, key, field, data, fieldUpdatedAt, now)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	getAll := pipe.HGetAll(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, &StoreError{Op: "upsert " + field, SessionID: id, Cause: err}
	}

	sess, err := decodeRedisSession(id, getAll.Val())
	if err != nil {
		return nil, &StoreError{Op: "upsert " + field, SessionID: id, Cause: err}
	}
	return sess, nil
}

func decodeRedisSession(id string, fields map[string]string) (*types.Session, error) {
	sess := &types.Session{ID: id}

	if raw, ok := fields[fieldResume]; ok {
		sess.Resume = &types.ResumeProfile{}
		if err := json.Unmarshal([]byte(raw), sess.Resume); err != nil {
			return nil, fmt.Errorf("failed to decode resume: %w", err)
		}
	}
	if raw, ok := fields[fieldJob]; ok {
		sess.Job = &types.JobContext{}
		if err := json.Unmarshal([]byte(raw), sess.Job); err != nil {
			return nil, fmt.Errorf("failed to decode job: %w", err)
		}
	}

	var err error
	if sess.CreatedAt, err = parseRedisTime(fields[fieldCreatedAt]); err != nil {
		return nil, err
	}
	if sess.UpdatedAt, err = parseRedisTime(fields[fieldUpdatedAt]); err != nil {
		return nil, err
	}
	return sess, nil
}

func parseRedisTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", value, err)
	}
	return t, nil
}
