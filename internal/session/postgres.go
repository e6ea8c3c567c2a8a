package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/interview-assistant/internal/types"
)

const createSessionsTable = `CREATE TABLE IF NOT EXISTS interview_sessions (
	id         TEXT PRIMARY KEY,
	resume     JSONB,
	job        JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresStore keeps sessions in the interview_sessions table. Rows do not expire.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects and ensures the sessions table exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, createSessionsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Get loads a session row.
func (s *PostgresStore) Get(ctx context.Context, id string) (*types.Session, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, resume, job, created_at, updated_at FROM interview_sessions WHERE id = $1`,
		id,
	)
	sess, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &StoreError{Op: "get", SessionID: id, Cause: err}
	}
	return sess, nil
}

// UpsertResume sets the résumé column.
func (s *PostgresStore) UpsertResume(ctx context.Context, id string, profile *types.ResumeProfile) (*types.Session, error) {
	return s.upsert(ctx, id, "resume", profile)
}

// UpsertJob sets the job column.
func (s *PostgresStore) UpsertJob(ctx context.Context, id string, job *types.JobContext) (*types.Session, error) {
	return s.upsert(ctx, id, "job", job)
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *PostgresStore) upsert(ctx context.Context, id, column string, value any) (*types.Session, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, &StoreError{Op: "upsert " + column, SessionID: id, Cause: err}
	}

	// column is one of two constants, never caller input.
	query := fmt.Sprintf(
		`INSERT INTO interview_sessions (id, %[1]s) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET %[1]s = EXCLUDED.%[1]s, updated_at = NOW()
		 RETURNING id, resume, job, created_at, updated_at`,
		column,
	)

	sess, err := scanSession(s.pool.QueryRow(ctx, query, id, data))
	if err != nil {
		return nil, &StoreError{Op: "upsert " + column, SessionID: id, Cause: err}
	}
	return sess, nil
}

func scanSession(row pgx.Row) (*types.Session, error) {
	var (
		sess      types.Session
		resumeRaw []byte
		jobRaw    []byte
	)
	if err := row.Scan(&sess.ID, &resumeRaw, &jobRaw, &sess.CreatedAt, &sess.UpdatedAt); err != nil {
		return nil, err
	}

	if resumeRaw != nil {
		sess.Resume = &types.ResumeProfile{}
		if err := json.Unmarshal(resumeRaw, sess.Resume); err != nil {
			return nil, fmt.Errorf("failed to decode resume: %w", err)
		}
	}
	if jobRaw != nil {
		sess.Job = &types.JobContext{}
		if err := json.Unmarshal(jobRaw, sess.Job); err != nil {
			return nil, fmt.Errorf("failed to decode job: %w", err)
		}
	}
	sess.CreatedAt = sess.CreatedAt.UTC()
	sess.UpdatedAt = sess.UpdatedAt.UTC()
	return &sess, nil
}
