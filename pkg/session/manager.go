package session

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/SELab-2/Dwengo-4-sub000/internal/editor"
	"github.com/SELab-2/Dwengo-4-sub000/internal/logging"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed save lock may be held.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

type entry struct {
	session *editor.Session
	pathID  *int64
	created time.Time
	touched time.Time
}

// Info describes a live session.
type Info struct {
	ID      string       `json:"id"`
	PathID  *int64       `json:"path_id,omitempty"`
	Phase   editor.Phase `json:"phase"`
	Created time.Time    `json:"created"`
	Touched time.Time    `json:"touched"`
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store   ports.PathStore
	catalog ports.ContentCatalog

	mu       sync.Mutex            // Global lock for both maps
	sessions map[string]*entry     // Live sessions by id
	opening  map[int64]bool        // Paths being loaded by Open
	locks    map[string]*lockEntry // Map of active locks

	locker     ports.DistributedLocker // Optional distributed locker
	lockTTL    time.Duration
	logger     *slog.Logger
	editorOpts []editor.Option
	newID      func() string
	now        func() time.Time
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking around saves.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager. It is also handed to every session.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithEditorOptions applies opts to every session the manager creates.
func WithEditorOptions(opts ...editor.Option) Option {
	return func(m *Manager) {
		m.editorOpts = append(m.editorOpts, opts...)
	}
}

// NewManager creates a new Session Manager over the given collaborators.
func NewManager(store ports.PathStore, catalog ports.ContentCatalog, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		catalog:  catalog,
		sessions: make(map[string]*entry),
		opening:  make(map[int64]bool),
		locks:    make(map[string]*lockEntry),
		lockTTL:  DefaultLockTTL,
		logger:   logging.NewNop(), // Default to no-op
		newID:    uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) sessionOptions(id string) []editor.Option {
	opts := []editor.Option{editor.WithLogger(m.logger), editor.WithID(id)}
	return append(opts, m.editorOpts...)
}

// Create starts a session for a new path.
func (m *Manager) Create(ctx context.Context, meta domain.PathMetadata) (*editor.Session, error) {
	id := m.newID()
	s := editor.New(m.store, m.catalog, meta, m.sessionOptions(id)...)
	m.register(id, s, nil)
	m.logger.Debug("Session created", "session_id", id)
	return s, nil
}

// Open starts a session on a stored path. A path has at most one session in the manager;
// sessions leave the manager when they are closed, saved or reaped.
func (m *Manager) Open(ctx context.Context, pathID int64) (*editor.Session, error) {
	m.mu.Lock()
	if m.pathTaken(pathID) {
		m.mu.Unlock()
		return nil, fmt.Errorf("path %d: %w", pathID, domain.ErrPathLocked)
	}
	m.opening[pathID] = true
	m.mu.Unlock()

	id := m.newID()
	s, err := editor.Open(ctx, m.store, m.catalog, pathID, m.sessionOptions(id)...)

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.opening, pathID)
	if err != nil {
		return nil, err
	}
	now := m.now()
	m.sessions[id] = &entry{session: s, pathID: &pathID, created: now, touched: now}
	m.logger.Debug("Session opened", "session_id", id, "path_id", pathID)
	return s, nil
}

// pathTaken reports whether pathID is being loaded or edited. Must be called with m.mu held.
func (m *Manager) pathTaken(pathID int64) bool {
	if m.opening[pathID] {
		return true
	}
	for _, e := range m.sessions {
		if e.pathID != nil && *e.pathID == pathID {
			return true
		}
	}
	return false
}

func (m *Manager) register(id string, s *editor.Session, pathID *int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.sessions[id] = &entry{session: s, pathID: pathID, created: now, touched: now}
}

// Get returns a live session and marks it as used.
func (m *Manager) Get(id string) (*editor.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	e.touched = m.now()
	return e.session, nil
}

// List describes the live sessions, oldest first.
func (m *Manager) List() []Info {
	entries := m.entries()

	out := make([]Info, 0, len(entries))
	for id, e := range entries {
		out = append(out, Info{
			ID:      id,
			PathID:  e.session.PathID(),
			Phase:   e.session.Phase(),
			Created: e.created,
			Touched: e.touched,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Created.Equal(out[j].Created) {
			return out[i].Created.Before(out[j].Created)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// entries copies the session table so sessions can be queried without m.mu.
func (m *Manager) entries() map[string]entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]entry, len(m.sessions))
	for id, e := range m.sessions {
		out[id] = *e
	}
	return out
}

// Close ends a session without saving and forgets it.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return domain.ErrSessionNotFound
	}
	e.session.Close()
	m.logger.Debug("Session closed", "session_id", id)
	return nil
}

// Save saves the session under the lock of its path. A successful save ends the session.
func (m *Manager) Save(ctx context.Context, id string) (int64, error) {
	s, err := m.Get(id)
	if err != nil {
		return 0, err
	}

	key := "session:" + id
	if pid := s.PathID(); pid != nil {
		key = "path:" + strconv.FormatInt(*pid, 10)
	}

	var pathID int64
	err = m.WithLock(ctx, key, func(ctx context.Context) error {
		var err error
		pathID, err = s.Save(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return pathID, nil
}

// Reap closes sessions unused for longer than maxIdle and returns how many were closed.
// Sessions that are saving are left alone.
func (m *Manager) Reap(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)

	var candidates []string
	for id, e := range m.entries() {
		if e.touched.Before(cutoff) && e.session.Phase() != editor.PhaseSaving {
			candidates = append(candidates, id)
		}
	}

	m.mu.Lock()
	var stale []*editor.Session
	for _, id := range candidates {
		// Skip sessions used since the scan.
		if e, ok := m.sessions[id]; ok && e.touched.Before(cutoff) {
			stale = append(stale, e.session)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range stale {
		s.Close()
		m.logger.Info("Idle session closed", "session_id", s.ID())
	}
	return len(stale)
}

// Store returns the underlying path store.
func (m *Manager) Store() ports.PathStore {
	return m.store
}

// Catalog returns the underlying content catalog.
func (m *Manager) Catalog() ports.ContentCatalog {
	return m.catalog
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(key) after unlocking.
func (m *Manager) acquire(key string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[key]
	if !exists {
		entry = &lockEntry{}
		m.locks[key] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[key]
	if !exists {
		return // Should not happen if paired correctly
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, key)
	}
}

// WithLock executes a function while holding the lock for key.
func (m *Manager) WithLock(ctx context.Context, key string, fn func(context.Context) error) error {
	entry := m.acquire(key)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(key)
	}()

	// Distributed Locking
	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, key, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"key", key,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
