// Package session owns the lifecycle of per-browser application state.
//
// A Session bundles everything one client interacts with: a Store seeded with
// fresh data, a Router tracking the current page, and a latency Group holding
// that client's pending delayed updates. The Manager creates a session on a
// client's first request, finds it again from the signed cookie, and tears it
// down when it goes idle or the server stops. Teardown cancels pending updates
// before closing the store, so nothing is written to a session after it ends.
package session

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/sakif/internhub/internal/latency"
	"github.com/sakif/internhub/internal/router"
	"github.com/sakif/internhub/internal/seed"
	"github.com/sakif/internhub/internal/store"
)

// Session is one client's application state.
type Session struct {
	ID     string
	Store  *store.Store
	Router *router.Router
	Tasks  *latency.Group

	createdAt time.Time
	lastSeen  atomic.Int64 // unix nanoseconds
}

// CreatedAt is when the session started.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// LastSeen is the time of the most recent request on the session.
func (s *Session) LastSeen() time.Time { return time.Unix(0, s.lastSeen.Load()) }

func (s *Session) touch(now time.Time) { s.lastSeen.Store(now.UnixNano()) }

func (s *Session) close() {
	s.Tasks.Close()
	s.Store.Close()
}

// Config controls how sessions are built and expired.
type Config struct {
	// IdleTTL is how long a session survives without requests.
	IdleTTL time.Duration
	// Latency is the artificial pause applied to apply/login/profile flows.
	Latency time.Duration
	// Routing is passed to every session's router.
	Routing router.Options
}

// Gauge is told when sessions open and close.
type Gauge interface {
	SessionOpened()
	SessionClosed()
}

// Manager tracks live sessions. It is safe for concurrent use.
type Manager struct {
	cfg      Config
	logger   *slog.Logger
	observer store.Observer
	gauge    Gauge
	now      func() time.Time
	newID    func() string

	mu       sync.RWMutex
	sessions map[string]*Session

	stopOnce sync.Once
	done     chan struct{}
	wg       sync.WaitGroup
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithObserver attaches a mutation observer to every session store.
func WithObserver(o store.Observer) ManagerOption {
	return func(m *Manager) { m.observer = o }
}

// WithGauge reports session counts.
func WithGauge(g Gauge) ManagerOption {
	return func(m *Manager) { m.gauge = g }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

// NewManager creates an empty Manager.
func NewManager(cfg Config, logger *slog.Logger, opts ...ManagerOption) *Manager {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 12 * time.Hour
	}
	m := &Manager{
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
		sessions: make(map[string]*Session),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a new session on the landing page with fresh seed data.
func (m *Manager) Create() *Session {
	var storeOpts []store.Option
	if m.observer != nil {
		storeOpts = append(storeOpts, store.WithObserver(m.observer))
	}

	st := store.New(seed.Default(), m.logger, storeOpts...)
	now := m.now()
	sess := &Session{
		ID:        m.newID(),
		Store:     st,
		Router:    router.New(st, m.cfg.Routing, m.logger),
		Tasks:     latency.NewGroup(m.cfg.Latency, m.logger),
		createdAt: now,
	}
	sess.touch(now)

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	if m.gauge != nil {
		m.gauge.SessionOpened()
	}
	m.logger.Info("session started", slog.String("sessionID", sess.ID))
	return sess
}

// Get returns a live session and marks it as seen.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	sess.touch(m.now())
	return sess, true
}

// End tears down a session. Unknown IDs are ignored.
func (m *Manager) End(id string) {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return
	}
	sess.close()
	if m.gauge != nil {
		m.gauge.SessionClosed()
	}
	m.logger.Info("session ended",
		slog.String("sessionID", id),
		slog.Duration("age", m.now().Sub(sess.CreatedAt())),
	)
}

// Len is the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep ends every session idle for longer than the configured TTL and
// returns how many it ended.
func (m *Manager) Sweep() int {
	cutoff := m.now().Add(-m.cfg.IdleTTL)

	m.mu.RLock()
	var stale []string
	for id, sess := range m.sessions {
		if sess.LastSeen().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	for _, id := range stale {
		m.End(id)
	}
	if len(stale) > 0 {
		m.logger.Info("idle sessions swept", slog.Int("count", len(stale)))
	}
	return len(stale)
}

// StartJanitor sweeps idle sessions every interval until ctx is done or Close
// is called.
func (m *Manager) StartJanitor(ctx context.Context, interval time.Duration) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.Sweep()
			case <-ctx.Done():
				return
			case <-m.done:
				return
			}
		}
	}()
}

// Close stops the janitor and ends every session.
func (m *Manager) Close() {
	m.stopOnce.Do(func() { close(m.done) })
	m.wg.Wait()

	m.mu.RLock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	for _, id := range ids {
		m.End(id)
	}
}
