package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-assistant/internal/types"
)

func testJob(t *testing.T, description string) *types.JobContext {
	t.Helper()
	job, err := types.NewJobContext(types.StructuredJob{Description: description, Title: "Engineer"}, time.Now())
	require.NoError(t, err)
	return job
}

func TestMemoryStore_GetUnknown(t *testing.T) {
	store := NewMemoryStore(0)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_UpsertCreatesSession(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	profile := &types.ResumeProfile{Skills: []string{"Go"}}

	sess, err := store.UpsertResume(ctx, "abc", profile)
	require.NoError(t, err)
	assert.Equal(t, "abc", sess.ID)
	assert.Same(t, profile, sess.Resume)
	assert.Nil(t, sess.Job)
	assert.False(t, sess.CreatedAt.IsZero())

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, profile, got.Resume)
}

func TestMemoryStore_UpsertReplacesOneField(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	profile := &types.ResumeProfile{Summary: "first"}

	first, err := store.UpsertResume(ctx, "abc", profile)
	require.NoError(t, err)

	job := testJob(t, "Build APIs")
	second, err := store.UpsertJob(ctx, "abc", job)
	require.NoError(t, err)
	assert.Same(t, profile, second.Resume)
	assert.Same(t, job, second.Job)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)

	replacement := testJob(t, "Run databases")
	third, err := store.UpsertJob(ctx, "abc", replacement)
	require.NoError(t, err)
	assert.Equal(t, "Run databases", third.Job.Description)
	assert.Same(t, profile, third.Resume)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_SessionIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	_, err := store.UpsertResume(ctx, "session-b", &types.ResumeProfile{})
	require.NoError(t, err)
	_, err = store.UpsertJob(ctx, "session-a", testJob(t, "Job for A"))
	require.NoError(t, err)

	b, err := store.Get(ctx, "session-b")
	require.NoError(t, err)
	assert.Nil(t, b.Job)

	a, err := store.Get(ctx, "session-a")
	require.NoError(t, err)
	assert.Nil(t, a.Resume)
	assert.Equal(t, "Job for A", a.Job.Description)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	_, err := store.UpsertJob(ctx, "abc", testJob(t, "Original"))
	require.NoError(t, err)

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	got.Job = nil

	again, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.NotNil(t, again.Job)
}

func TestMemoryStore_TTL(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	_, err := store.UpsertResume(ctx, "abc", &types.ResumeProfile{Summary: "old"})
	require.NoError(t, err)

	now = now.Add(30 * time.Minute)
	_, err = store.Get(ctx, "abc")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, store.Len())

	// An expired session is recreated empty rather than revived.
	_, err = store.UpsertResume(ctx, "abc", &types.ResumeProfile{Summary: "old"})
	require.NoError(t, err)
	now = now.Add(2 * time.Hour)
	sess, err := store.UpsertJob(ctx, "abc", testJob(t, "New"))
	require.NoError(t, err)
	assert.Nil(t, sess.Resume)
	assert.Equal(t, now, sess.CreatedAt)
}

func TestMemoryStore_SweepsExpiredOnWrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	for i := 0; i < 1000; i++ {
		_, err := store.UpsertResume(ctx, fmt.Sprintf("old-%d", i), &types.ResumeProfile{})
		require.NoError(t, err)
	}
	require.Equal(t, 1000, store.Len())

	now = now.Add(2 * time.Hour)
	_, err := store.UpsertResume(ctx, "fresh", &types.ResumeProfile{})
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}

func TestOpen_MemoryZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, Config{Backend: BackendMemory, TTL: 0})
	require.NoError(t, err)

	mem, ok := store.(*MemoryStore)
	require.True(t, ok)
	assert.Zero(t, mem.ttl)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	mem.now = func() time.Time { return now }
	_, err = mem.UpsertResume(ctx, "abc", &types.ResumeProfile{Summary: "kept"})
	require.NoError(t, err)

	now = now.Add(25 * time.Hour)
	_, err = mem.UpsertJob(ctx, "other", testJob(t, "Build APIs"))
	require.NoError(t, err)

	now = now.Add(365 * 24 * time.Hour)
	sess, err := mem.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "kept", sess.Resume.Summary)
	assert.Equal(t, 2, mem.Len())
}

func TestMemoryStore_ConcurrentUpserts(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	job := testJob(t, "job")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s-%d", i%5)
			if i%2 == 0 {
				_, _ = store.UpsertResume(ctx, id, &types.ResumeProfile{})
			} else {
				_, _ = store.UpsertJob(ctx, id, job)
			}
			_, _ = store.Get(ctx, id)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, store.Len())
}

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		require.Len(t, id, 36)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestOpen(t *testing.T) {
	store, err := Open(context.Background(), Config{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
	assert.NoError(t, store.Close())

	_, err = Open(context.Background(), Config{Backend: "etcd"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown session backend")
}

func TestStoreError(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := &StoreError{Op: "get", SessionID: "abc", Cause: cause}

	assert.Equal(t, "session store get abc: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "session store close: connection refused", (&StoreError{Op: "close", Cause: cause}).Error())
}
