package session

import (
	"context"
	"sync"
	"time"

	"github.com/jonathan/interview-assistant/internal/types"
)

// MemoryStore keeps sessions in a map guarded by a single mutex.
// Idle sessions older than the TTL are dropped when next looked up, and
// writes sweep the whole map at most once per TTL.
type MemoryStore struct {
	mu        sync.RWMutex
	sessions  map[string]*types.Session
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewMemoryStore creates an empty in-process store. A ttl <= 0 keeps
// sessions for the life of the process.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*types.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns a copy of the session.
func (s *MemoryStore) Get(_ context.Context, id string) (*types.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	var cp types.Session
	expired := false
	if ok {
		cp = *sess
		expired = s.expired(sess)
	}
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	if expired {
		s.mu.Lock()
		// Re-check: an upsert may have refreshed it meanwhile.
		if cur, ok := s.sessions[id]; ok && s.expired(cur) {
			delete(s.sessions, id)
		}
		s.mu.Unlock()
		return nil, ErrNotFound
	}

	return &cp, nil
}

// UpsertResume sets the session's résumé profile.
func (s *MemoryStore) UpsertResume(_ context.Context, id string, profile *types.ResumeProfile) (*types.Session, error) {
	return s.upsert(id, func(sess *types.Session) { sess.Resume = profile }), nil
}

// UpsertJob sets the session's job context.
func (s *MemoryStore) UpsertJob(_ context.Context, id string, job *types.JobContext) (*types.Session, error) {
	return s.upsert(id, func(sess *types.Session) { sess.Job = job }), nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}

// Len reports how many sessions are held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *MemoryStore) upsert(id string, set func(*types.Session)) *types.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	if s.ttl > 0 && now.Sub(s.lastSweep) >= s.ttl {
		s.sweep()
		s.lastSweep = now
	}

	sess, ok := s.sessions[id]
	if !ok || s.expired(sess) {
		sess = &types.Session{ID: id, CreatedAt: now}
		s.sessions[id] = sess
	}
	set(sess)
	sess.UpdatedAt = now

	cp := *sess
	return &cp
}

// sweep drops every expired session. Callers hold mu.
func (s *MemoryStore) sweep() {
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
		}
	}
}

func (s *MemoryStore) expired(sess *types.Session) bool {
	return s.ttl > 0 && s.now().Sub(sess.UpdatedAt) > s.ttl
}
