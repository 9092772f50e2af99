package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/clicktree"
	"github.com/aretw0/clicktree/internal/logging"
	"github.com/aretw0/clicktree/pkg/domain"
	"github.com/aretw0/clicktree/pkg/ports"
)

// DefaultLockTTL bounds how long a crashed replica can hold a distributed lock.
const DefaultLockTTL = 30 * time.Second

// HostFactory returns the host that receives the reports of one session.
type HostFactory func(sessionID string) ports.Host

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// liveEntry is a cached component and the UpdatedAt of the snapshot it matches.
type liveEntry struct {
	comp    *clicktree.Component
	version time.Time
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses reference counting to garbage collect unused locks.
// The store is the source of truth: cached components are checked against the
// persisted snapshot on every access, so replicas sharing a store stay in sync.
type Manager struct {
	store ports.StateStore

	mu    sync.Mutex // guards locks and live
	locks map[string]*lockEntry
	live  map[string]*liveEntry

	hosts   HostFactory
	options []clicktree.Option
	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithHosts sets the factory that wires each session to its host.
func WithHosts(f HostFactory) Option {
	return func(m *Manager) {
		m.hosts = f
	}
}

// WithComponentOptions applies opts to every component the manager creates.
func WithComponentOptions(opts ...clicktree.Option) Option {
	return func(m *Manager) {
		m.options = append(m.options, opts...)
	}
}

// NewManager creates a new Session Manager with the given persistence store.
func NewManager(store ports.StateStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		live:    make(map[string]*liveEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Do runs fn against the session's component while holding the session lock,
// then persists a snapshot of the component. The component is created on first
// use and rehydrated whenever the store holds a newer snapshot than the cache.
func (m *Manager) Do(ctx context.Context, sessionID string, fn func(context.Context, *clicktree.Component) error) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		c, err := m.component(ctx, sessionID)
		if err != nil {
			return err
		}

		fnErr := fn(ctx, c)

		// Persist even when fn failed: an echoed collapse state may already be applied.
		if err := m.persist(ctx, sessionID, c); err != nil {
			return errors.Join(fnErr, err)
		}
		return fnErr
	})
}

// View runs fn against the session's component under the session lock without
// persisting. fn must not mutate the component.
func (m *Manager) View(ctx context.Context, sessionID string, fn func(context.Context, *clicktree.Component) error) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		c, err := m.component(ctx, sessionID)
		if err != nil {
			return err
		}
		return fn(ctx, c)
	})
}

// component returns the cached component when it matches the stored snapshot,
// rehydrates it when another writer has saved since, and creates it otherwise.
// Callers hold the session lock.
func (m *Manager) component(ctx context.Context, sessionID string) (*clicktree.Component, error) {
	snap, err := m.store.Load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		snap = nil
	}

	var version time.Time
	if snap != nil {
		version = snap.UpdatedAt
	}

	m.mu.Lock()
	entry, ok := m.live[sessionID]
	m.mu.Unlock()

	if ok {
		if entry.version.Equal(version) {
			return entry.comp, nil
		}
		var collapsed []string
		var cfg *domain.RenderConfig
		if snap != nil {
			collapsed, cfg = snap.Collapsed, snap.Config
		}
		if err := entry.comp.Rehydrate(ctx, collapsed, cfg); err != nil {
			m.logger.Warn("Failed to restore session tree", "session_id", sessionID, "err", err)
		}
		m.setLive(sessionID, entry.comp, version)
		m.logger.Debug("session refreshed from store", "session_id", sessionID)
		return entry.comp, nil
	}

	opts := make([]clicktree.Option, 0, len(m.options)+2)
	opts = append(opts, m.options...)
	opts = append(opts, clicktree.WithHost(m.hostFor(sessionID)))
	if snap != nil {
		opts = append(opts, clicktree.WithCollapsed(snap.Collapsed))
	}
	c := clicktree.New(opts...)

	if snap != nil && snap.Config != nil {
		if _, err := c.Restore(ctx, snap.Config); err != nil {
			m.logger.Warn("Failed to restore session tree", "session_id", sessionID, "err", err)
		}
	}
	if err := c.Ready(ctx); err != nil {
		m.logger.Warn("Failed to signal readiness", "session_id", sessionID, "err", err)
	}

	m.setLive(sessionID, c, version)
	m.logger.Debug("session opened", "session_id", sessionID, "resumed", snap != nil)
	return c, nil
}

func (m *Manager) setLive(sessionID string, c *clicktree.Component, version time.Time) {
	m.mu.Lock()
	m.live[sessionID] = &liveEntry{comp: c, version: version}
	m.mu.Unlock()
}

func (m *Manager) persist(ctx context.Context, sessionID string, c *clicktree.Component) error {
	snap := domain.NewSnapshot(sessionID)
	snap.Collapsed = c.Collapsed()
	snap.Config = c.Config()
	snap.UpdatedAt = time.Now().UTC()
	if err := m.store.Save(ctx, sessionID, snap); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	m.setLive(sessionID, c, snap.UpdatedAt)
	return nil
}

func (m *Manager) hostFor(sessionID string) ports.Host {
	if m.hosts == nil {
		return ports.NopHost{}
	}
	return m.hosts(sessionID)
}

// Load retrieves the persisted snapshot of a session.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	var snap *domain.Snapshot
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		snap, err = m.store.Load(ctx, sessionID)
		return err
	})
	return snap, err
}

// Delete drops the live component and removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		m.mu.Lock()
		delete(m.live, sessionID)
		m.mu.Unlock()
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying state store.
func (m *Manager) Store() ports.StateStore {
	return m.store
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
