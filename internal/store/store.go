// Package store is the application state container for one session.
//
// A Store holds the session user and the entity collections. Readers take an
// immutable *State snapshot; every mutation builds the next State with fresh
// slices for whatever it touches and swaps it in atomically. A reader therefore
// sees either the whole previous snapshot or the whole next one, never a
// half-applied change, and a snapshot it holds never changes under it.
//
// Mutations are total: an ID that matches nothing, or a profile update with no
// session user, leaves the state as it was and returns without error.
package store

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/internhub/internal/model"
	"github.com/sakif/internhub/internal/seed"
)

// Operation names, used for logging and metrics labels.
const (
	OpLogin                 = "login"
	OpLogout                = "logout"
	OpUpdateProfile         = "update_profile"
	OpAddLogEntry           = "add_log_entry"
	OpApply                 = "apply"
	OpMarkNotificationRead  = "mark_notification_read"
	OpMarkAllRead           = "mark_all_notifications_read"
	OpPostInternship        = "post_internship"
	OpUpdateStudentStatus   = "update_student_status"
	OpUpdateCandidateStatus = "update_candidate_status"
)

// State is one immutable snapshot of a session. Callers must treat every
// field, including slice and map contents, as read-only.
type State struct {
	User          *model.User                      `json:"user"`
	Internships   []model.Internship               `json:"internships"`
	Logbook       []model.LogbookEntry             `json:"logbook"`
	Notifications []model.Notification             `json:"notifications"`
	Students      []model.Student                  `json:"students"`
	Applications  []model.Application              `json:"applications"`
	Decisions     map[string]model.CandidateStatus `json:"decisions"`
	Version       uint64                           `json:"version"`
}

// Observer is told about every mutation call. changed is false when the call
// was a silent no-op (unknown ID, no session user, store closed).
type Observer interface {
	ObserveMutation(op string, changed bool)
}

// Store is safe for concurrent use. Writers are serialized; readers never block.
type Store struct {
	mu    sync.Mutex
	state atomic.Pointer[State]

	template model.User
	newID    func() string
	now      func() time.Time
	logger   *slog.Logger
	observer Observer
	closed   atomic.Bool

	subsMu  sync.Mutex
	subs    map[int]func(*State)
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithObserver registers an observer for mutation calls.
func WithObserver(o Observer) Option {
	return func(s *Store) { s.observer = o }
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the generator used for system-created records.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// New creates a Store initialised from ds. The store takes ownership of the
// dataset's slices.
func New(ds seed.Dataset, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		template: seed.TemplateUser(),
		newID:    func() string { return xid.New().String() },
		now:      time.Now,
		logger:   logger,
		subs:     make(map[int]func(*State)),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.state.Store(&State{
		Internships:   ds.Internships,
		Logbook:       ds.Logbook,
		Notifications: ds.Notifications,
		Students:      ds.Students,
		Applications:  []model.Application{},
		Decisions:     map[string]model.CandidateStatus{},
	})
	return s
}

// Snapshot returns the current state.
func (s *Store) Snapshot() *State {
	return s.state.Load()
}

// CurrentUser returns a copy of the session user, if any.
func (s *Store) CurrentUser() (model.User, bool) {
	u := s.state.Load().User
	if u == nil {
		return model.User{}, false
	}
	return *u, true
}

// Internship looks up an internship by ID in the current snapshot.
func (s *Store) Internship(id string) (model.Internship, bool) {
	for _, i := range s.state.Load().Internships {
		if i.ID == id {
			return i.Clone(), true
		}
	}
	return model.Internship{}, false
}

// Student looks up a roster record by ID in the current snapshot.
func (s *Store) Student(id string) (model.Student, bool) {
	for _, st := range s.state.Load().Students {
		if st.ID == id {
			return st.Clone(), true
		}
	}
	return model.Student{}, false
}

// Subscribe registers fn to be called with each new snapshot after a mutation
// commits. The returned function removes the subscription. fn runs on the
// mutating goroutine and must not block.
func (s *Store) Subscribe(fn func(*State)) (unsubscribe func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

// Close ends the store's lifecycle. Later mutations are dropped and
// subscribers are released. Snapshots already taken remain readable.
func (s *Store) Close() {
	if s.closed.Swap(true) {
		return
	}
	s.subsMu.Lock()
	s.subs = make(map[int]func(*State))
	s.subsMu.Unlock()
}

// Closed reports whether Close has been called.
func (s *Store) Closed() bool {
	return s.closed.Load()
}

// update runs fn against a shallow copy of the current state. fn must replace
// any slice or map it changes instead of writing into the shared one, and
// reports whether it changed anything.
func (s *Store) update(op string, fn func(next *State) bool) {
	if s.closed.Load() {
		s.logger.Debug("store mutation after close dropped", slog.String("op", op))
		s.observe(op, false)
		return
	}

	s.mu.Lock()
	cur := s.state.Load()
	next := *cur
	changed := fn(&next)
	if changed {
		next.Version = cur.Version + 1
		s.state.Store(&next)
	}
	s.mu.Unlock()

	s.observe(op, changed)
	s.logger.Debug("store mutation",
		slog.String("op", op),
		slog.Bool("changed", changed),
		slog.Uint64("version", next.Version),
	)

	if changed {
		s.notify(&next)
	}
}

func (s *Store) observe(op string, changed bool) {
	if s.observer != nil {
		s.observer.ObserveMutation(op, changed)
	}
}

func (s *Store) notify(st *State) {
	s.subsMu.Lock()
	fns := make([]func(*State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}
