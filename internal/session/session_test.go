package session

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/internhub/internal/auth"
	"github.com/sakif/internhub/internal/model"
	"github.com/sakif/internhub/internal/router"
	"github.com/sakif/internhub/internal/store"
)

type countingGauge struct {
	open atomic.Int32
}

func (g *countingGauge) SessionOpened() { g.open.Add(1) }
func (g *countingGauge) SessionClosed() { g.open.Add(-1) }

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestManager_CreateGetEnd(t *testing.T) {
	g := &countingGauge{}
	m := NewManager(Config{}, testLogger(), WithGauge(g))

	a := m.Create()
	b := m.Create()
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotSame(t, a.Store, b.Store)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, int32(2), g.open.Load())

	got, ok := m.Get(a.ID)
	require.True(t, ok)
	assert.Same(t, a, got)
	assert.Equal(t, router.ViewLanding, got.Router.Current().Kind)

	m.End(a.ID)
	_, ok = m.Get(a.ID)
	assert.False(t, ok)
	assert.True(t, a.Store.Closed())
	assert.Equal(t, int32(1), g.open.Load())

	m.End("unknown") // ignored
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m := NewManager(Config{}, testLogger())
	a := m.Create()
	b := m.Create()

	a.Router.Login(model.RoleIndustry, "")
	a.Store.Apply("1")

	_, ok := b.Store.CurrentUser()
	assert.False(t, ok)
	assert.Len(t, b.Store.Snapshot().Notifications, 4)
}

func TestManager_EndCancelsPendingUpdates(t *testing.T) {
	m := NewManager(Config{Latency: time.Hour}, testLogger())
	sess := m.Create()

	var ran atomic.Bool
	task, err := sess.Tasks.Go(context.Background(), "apply", func() {
		ran.Store(true)
		sess.Store.Apply("1")
	})
	require.NoError(t, err)

	m.End(sess.ID)
	<-task.Done()

	assert.False(t, ran.Load())
	assert.Equal(t, 45, mustInternship(t, sess.Store, "1").Applicants)
}

func TestManager_Sweep(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	m := NewManager(Config{IdleTTL: time.Hour}, testLogger(), WithClock(clock.Now))

	idle := m.Create()
	clock.Advance(45 * time.Minute)
	active := m.Create()
	clock.Advance(30 * time.Minute)

	_, _ = m.Get(active.ID)
	assert.Equal(t, 1, m.Sweep())

	_, ok := m.Get(idle.ID)
	assert.False(t, ok)
	_, ok = m.Get(active.ID)
	assert.True(t, ok)
}

func TestManager_CloseEndsAll(t *testing.T) {
	m := NewManager(Config{}, testLogger())
	m.StartJanitor(context.Background(), time.Hour)
	s1 := m.Create()
	m.Create()

	m.Close()
	assert.Equal(t, 0, m.Len())
	assert.True(t, s1.Store.Closed())
}

func TestMiddleware_IssuesAndReusesSession(t *testing.T) {
	m := NewManager(Config{}, testLogger())
	tokens, err := auth.NewTokenService("middleware-test-secret!!", time.Hour)
	require.NoError(t, err)

	var seen []string
	h := Middleware(m, tokens, false, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := MustFromContext(r.Context())
		assert.Same(t, sess.Store, store.MustFromContext(r.Context()))
		seen = append(seen, sess.ID)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/session", nil))
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.AddCookie(cookies[0])
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Empty(t, rr.Result().Cookies(), "a valid cookie must not be reissued")
	require.Len(t, seen, 2)
	assert.Equal(t, seen[0], seen[1])
	assert.Equal(t, 1, m.Len())
}

func TestMiddleware_UnknownSessionStartsFresh(t *testing.T) {
	m := NewManager(Config{}, testLogger())
	tokens, err := auth.NewTokenService("middleware-test-secret!!", time.Hour)
	require.NoError(t, err)

	stale, err := tokens.Generate("session-that-was-swept")
	require.NoError(t, err)

	var got string
	h := Middleware(m, tokens, false, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = MustFromContext(r.Context()).ID
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: stale})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.NotEqual(t, "session-that-was-swept", got)
	assert.Len(t, rr.Result().Cookies(), 1)
}

func TestMustFromContext_Panics(t *testing.T) {
	assert.Panics(t, func() { MustFromContext(context.Background()) })
}

func mustInternship(t *testing.T, s *store.Store, id string) model.Internship {
	t.Helper()
	in, ok := s.Internship(id)
	require.True(t, ok)
	return in
}

func TestWriteInternalError_IsJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	writeInternalError(rr)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"internal_error","message":"An internal error occurred"}`, rr.Body.String())
}
