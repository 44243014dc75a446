package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SELab-2/Dwengo-4-sub000/internal/editor"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/adapters/memory"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/dsl"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/ports"
)

var lesson = domain.ContentSummary{Ref: domain.LocalRef("a"), Title: "A", Language: "en", Kind: domain.ContentKindLearningObject}

func testMeta() domain.PathMetadata {
	return domain.PathMetadata{Title: "T", Description: "D", Language: "en"}
}

func seededStore() *memory.Store {
	store := memory.NewStore()
	b := dsl.New(testMeta())
	b.Add(1).Lesson("a", "A")
	store.Seed(b.MustBuild(1))
	return store
}

type recordingLocker struct {
	mu    sync.Mutex
	keys  []string
	fail  error
	freed int
}

func (l *recordingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fail != nil {
		return nil, l.fail
	}
	l.keys = append(l.keys, key)
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.freed++
		return nil
	}, nil
}

func TestManager_CreateGetClose(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(memory.NewStore(), memory.NewCatalog(lesson))

	s, err := mgr.Create(ctx, testMeta())
	require.NoError(t, err)
	require.NotEmpty(t, s.ID())

	got, err := mgr.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Len(t, mgr.List(), 1)

	require.NoError(t, mgr.Close(s.ID()))
	assert.True(t, s.Closed())
	_, err = mgr.Get(s.ID())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, mgr.Close(s.ID()), domain.ErrSessionNotFound)
}

func TestManager_OpenIsExclusive(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(seededStore(), memory.NewCatalog(lesson))

	first, err := mgr.Open(ctx, 1)
	require.NoError(t, err)

	_, err = mgr.Open(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrPathLocked)

	require.NoError(t, mgr.Close(first.ID()))
	_, err = mgr.Open(ctx, 1)
	assert.NoError(t, err)
}

func TestManager_SaveUsesPathLock(t *testing.T) {
	ctx := context.Background()
	locker := &recordingLocker{}
	mgr := NewManager(seededStore(), memory.NewCatalog(lesson), WithLocker(locker))

	s, err := mgr.Open(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, s.StartInsertion(1, domain.Root))
	_, err = s.PickContent(ctx, lesson.Ref)
	require.NoError(t, err)

	id, err := mgr.Save(ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, []string{"path:1"}, locker.keys)
	assert.Equal(t, 1, locker.freed)
	assert.Empty(t, mgr.locks, "locks are released after use")

	_, err = mgr.Get(s.ID())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound, "saved sessions end")
}

func TestManager_SaveLockFailure(t *testing.T) {
	ctx := context.Background()
	locker := &recordingLocker{fail: errors.New("redis down")}
	mgr := NewManager(memory.NewStore(), memory.NewCatalog(lesson), WithLocker(locker))

	s, err := mgr.Create(ctx, testMeta())
	require.NoError(t, err)

	_, err = mgr.Save(ctx, s.ID())
	assert.ErrorContains(t, err, "failed to acquire distributed lock")
	assert.False(t, s.Closed())
}

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(memory.NewStore(), memory.NewCatalog())
	ctx := context.Background()
	count := 10000

	for i := 0; i < count; i++ {
		key := fmt.Sprintf("path:%d", i)
		_ = mgr.WithLock(ctx, key, func(context.Context) error { return nil })
	}

	lockCount := len(mgr.locks)
	t.Logf("Keys locked: %d, Locks Leaked: %d", count, lockCount)
	assert.Zero(t, lockCount)
}

func TestManager_Reap(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mgr := NewManager(memory.NewStore(), memory.NewCatalog(lesson),
		WithEditorOptions(editor.WithNoticeTTL(time.Second)))
	mgr.now = func() time.Time { return now }

	old, err := mgr.Create(ctx, testMeta())
	require.NoError(t, err)
	now = now.Add(time.Hour)
	fresh, err := mgr.Create(ctx, testMeta())
	require.NoError(t, err)

	assert.Equal(t, 1, mgr.Reap(30*time.Minute))
	assert.True(t, old.Closed())
	assert.False(t, fresh.Closed())
	require.Len(t, mgr.List(), 1)
	assert.Equal(t, fresh.ID(), mgr.List()[0].ID)
}

// gatedCatalog blocks FetchContent until release is closed.
type gatedCatalog struct {
	*memory.Catalog
	entered chan struct{}
	release chan struct{}
}

func newGatedCatalog(content ...domain.ContentSummary) *gatedCatalog {
	return &gatedCatalog{
		Catalog: memory.NewCatalog(content...),
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (c *gatedCatalog) FetchContent(ctx context.Context, ref domain.ContentRef) (domain.ContentSummary, error) {
	c.entered <- struct{}{}
	select {
	case <-c.release:
	case <-ctx.Done():
		return domain.ContentSummary{}, ctx.Err()
	}
	return c.Catalog.FetchContent(ctx, ref)
}

// within fails the test when fn does not return before the deadline.
func within(t *testing.T, what string, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("%s blocked while a catalog fetch was pending", what)
	}
}

func TestManager_SlowCatalogDoesNotStallOtherSessions(t *testing.T) {
	ctx := context.Background()
	catalog := newGatedCatalog(lesson)
	mgr := NewManager(memory.NewStore(), catalog)

	slow, err := mgr.Create(ctx, testMeta())
	require.NoError(t, err)
	other, err := mgr.Create(ctx, testMeta())
	require.NoError(t, err)

	require.NoError(t, slow.StartInsertion(0, domain.Root))
	type result struct {
		key domain.NodeKey
		err error
	}
	picked := make(chan result, 1)
	go func() {
		key, err := slow.PickContent(ctx, lesson.Ref)
		picked <- result{key, err}
	}()
	<-catalog.entered

	within(t, "Snapshot", func() {
		snap := slow.Snapshot()
		assert.Equal(t, editor.PhaseSelecting, snap.Phase)
	})
	within(t, "List", func() { assert.Len(t, mgr.List(), 2) })
	within(t, "Get", func() {
		got, err := mgr.Get(other.ID())
		require.NoError(t, err)
		assert.NoError(t, got.StartInsertion(0, domain.Root))
	})
	within(t, "Reap", func() { assert.Zero(t, mgr.Reap(time.Hour)) })

	_, err = slow.PickContent(ctx, lesson.Ref)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "one insertion per selection")

	close(catalog.release)
	res := <-picked
	require.NoError(t, res.err)
	assert.Equal(t, domain.DraftKey(0), res.key)
	assert.Equal(t, editor.PhaseIdle, slow.Phase())
	assert.Equal(t, 1, slow.Graph().Len())
}

func TestManager_OpenWhileLoading(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(seededStore(), memory.NewCatalog(lesson))
	mgr.opening[1] = true

	_, err := mgr.Open(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrPathLocked)

	delete(mgr.opening, 1)
	_, err = mgr.Open(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, mgr.opening)
}

func TestManager_OpenMissingPathReleasesReservation(t *testing.T) {
	mgr := NewManager(memory.NewStore(), memory.NewCatalog(lesson))

	_, err := mgr.Open(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrPathNotFound)
	assert.Empty(t, mgr.opening)
}
