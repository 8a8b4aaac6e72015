package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/internhub/internal/handler"
	"github.com/sakif/internhub/internal/model"
	"github.com/sakif/internhub/internal/router"
	"github.com/sakif/internhub/internal/service"
	"github.com/sakif/internhub/internal/session"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

// fixture is one session mounted behind the API routes.
type fixture struct {
	sess *session.Session
	mux  *chi.Mux
}

func newFixture(t *testing.T, cfg session.Config) *fixture {
	t.Helper()

	mgr := session.NewManager(cfg, logger)
	t.Cleanup(mgr.Close)
	sess := mgr.Create()

	in := service.NewInternshipService(logger)
	lb := service.NewLogbookService(logger)
	rs := service.NewRosterService(logger)
	ds := service.NewDashboardService()

	sh := handler.NewSessionHandler(service.NewSessionService(logger), service.NewViewService(in, lb, rs, ds), logger)
	ih := handler.NewInternshipHandler(in, logger)
	lh := handler.NewLogbookHandler(lb, logger)
	nh := handler.NewNotificationHandler(service.NewNotificationService(logger), logger)
	rh := handler.NewRosterHandler(rs, logger)
	dh := handler.NewDashboardHandler(ds, service.NewProfileService(logger), logger)

	mux := chi.NewRouter()
	mux.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), sess)))
		})
	})
	mux.Get("/api/session", sh.HandleGet)
	mux.Post("/api/session/login", sh.HandleLogin)
	mux.Post("/api/session/logout", sh.HandleLogout)
	mux.Post("/api/navigate", sh.HandleNavigate)
	mux.Get("/api/view", sh.HandleView)
	mux.Get("/api/internships", ih.HandleList)
	mux.Post("/api/internships", ih.HandleCreate)
	mux.Post("/api/internships/{id}/apply", ih.HandleApply)
	mux.Get("/api/applications", ih.HandleApplications)
	mux.Get("/api/logbook", lh.HandleList)
	mux.Post("/api/logbook", lh.HandleCreate)
	mux.Get("/api/notifications", nh.HandleList)
	mux.Post("/api/notifications/{id}/read", nh.HandleMarkRead)
	mux.Post("/api/notifications/read-all", nh.HandleMarkAllRead)
	mux.Get("/api/students", rh.HandleStudents)
	mux.Put("/api/students/{id}/status", rh.HandleUpdateStatus)
	mux.Get("/api/candidates", rh.HandleCandidates)
	mux.Post("/api/candidates/{id}/decision", rh.HandleDecide)
	mux.Patch("/api/profile", dh.HandleUpdateProfile)
	mux.Get("/api/dashboard", dh.HandleDashboard)
	mux.Get("/api/reports", dh.HandleReports)

	return &fixture{sess: sess, mux: mux}
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	f.mux.ServeHTTP(rr, req)
	return rr
}

func (f *fixture) login(t *testing.T, role model.Role) {
	t.Helper()
	rr := f.do(t, http.MethodPost, "/api/session/login", `{"role":"`+string(role)+`"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v))
	return v
}

func TestSessionHandler(t *testing.T) {
	f := newFixture(t, session.Config{})

	t.Run("anonymous session", func(t *testing.T) {
		rr := f.do(t, http.MethodGet, "/api/session", "")
		require.Equal(t, http.StatusOK, rr.Code)

		got := decode[handler.SessionResponse](t, rr)
		assert.Nil(t, got.User)
		assert.Equal(t, router.ViewLanding, got.View.Kind)
		assert.Empty(t, got.Menu)
	})

	t.Run("navigate while anonymous stays public", func(t *testing.T) {
		rr := f.do(t, http.MethodPost, "/api/navigate", `{"page":"settings"}`)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, router.ViewLanding, decode[router.View](t, rr).Kind)
	})

	t.Run("login lands on the role dashboard", func(t *testing.T) {
		rr := f.do(t, http.MethodPost, "/api/session/login", `{"role":"industry","name":"Recruiter"}`)
		require.Equal(t, http.StatusOK, rr.Code)

		got := decode[handler.SessionResponse](t, rr)
		require.NotNil(t, got.User)
		assert.Equal(t, "Recruiter", got.User.Name)
		assert.Equal(t, router.ViewIndustryDashboard, got.View.Kind)
		assert.Equal(t, router.PageDashboard, got.Page)
		assert.NotEmpty(t, got.Menu)
	})

	t.Run("view carries data", func(t *testing.T) {
		f.do(t, http.MethodPost, "/api/navigate", `{"page":"candidates"}`)
		rr := f.do(t, http.MethodGet, "/api/view", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var got struct {
			View router.View         `json:"view"`
			Data []service.Candidate `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, router.ViewCandidates, got.View.Kind)
		assert.Len(t, got.Data, service.CandidateLimit)
	})

	t.Run("invalid role", func(t *testing.T) {
		rr := f.do(t, http.MethodPost, "/api/session/login", `{"role":"admin"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "role", decode[handler.ErrorResponse](t, rr).Field)
	})

	t.Run("logout", func(t *testing.T) {
		rr := f.do(t, http.MethodPost, "/api/session/logout", "")
		require.Equal(t, http.StatusOK, rr.Code)
		got := decode[handler.SessionResponse](t, rr)
		assert.Nil(t, got.User)
		assert.Equal(t, router.ViewLanding, got.View.Kind)
	})
}

func TestInternshipHandler(t *testing.T) {
	f := newFixture(t, session.Config{})

	t.Run("apply needs a session user", func(t *testing.T) {
		rr := f.do(t, http.MethodPost, "/api/internships/1/apply", "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "unauthenticated", decode[handler.ErrorResponse](t, rr).Error)
	})

	f.login(t, model.RoleStudent)

	t.Run("list with filter", func(t *testing.T) {
		rr := f.do(t, http.MethodGet, "/api/internships?q=intern&type=On-site", "")
		require.Equal(t, http.StatusOK, rr.Code)
		got := decode[[]model.Internship](t, rr)
		require.Len(t, got, 2)
		assert.Equal(t, "3", got[0].ID)
	})

	t.Run("list with bad type", func(t *testing.T) {
		rr := f.do(t, http.MethodGet, "/api/internships?type=Moon", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("apply", func(t *testing.T) {
		rr := f.do(t, http.MethodPost, "/api/internships/2/apply", "")
		require.Equal(t, http.StatusOK, rr.Code)
		got := decode[model.Internship](t, rr)
		assert.Equal(t, model.InternshipClosed, got.Status)

		rr = f.do(t, http.MethodGet, "/api/applications", "")
		require.Equal(t, http.StatusOK, rr.Code)
		apps := decode[[]service.ApplicationDetail](t, rr)
		require.Len(t, apps, 1)
		assert.Equal(t, "2", apps[0].InternshipID)
	})

	t.Run("apply twice conflicts", func(t *testing.T) {
		rr := f.do(t, http.MethodPost, "/api/internships/2/apply", "")
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("apply unknown", func(t *testing.T) {
		rr := f.do(t, http.MethodPost, "/api/internships/404/apply", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("post", func(t *testing.T) {
		body := `{"title":"SRE Intern","location":"Remote","type":"Remote","stipend":"₹10,000/mo","description":"On-call","skills":"Linux, Go"}`
		rr := f.do(t, http.MethodPost, "/api/internships", body)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		got := decode[model.Internship](t, rr)
		assert.Equal(t, "SRE Intern", got.Title)
		assert.Equal(t, f.sess.Store.Snapshot().Internships[0].ID, got.ID)
	})

	t.Run("post with unknown field", func(t *testing.T) {
		rr := f.do(t, http.MethodPost, "/api/internships", `{"title":"x","salary":1}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("post with malformed body", func(t *testing.T) {
		rr := f.do(t, http.MethodPost, "/api/internships", `{"title":`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestInternshipHandler_ApplyAbandonedWhenSessionEnds(t *testing.T) {
	mgr := session.NewManager(session.Config{Latency: time.Hour}, logger)
	sess := mgr.Create()
	sess.Store.Login(model.RoleStudent, "")

	h := handler.NewInternshipHandler(service.NewInternshipService(logger), logger)
	mux := chi.NewRouter()
	mux.Post("/api/internships/{id}/apply", h.HandleApply)

	req := httptest.NewRequest(http.MethodPost, "/api/internships/1/apply", nil)
	req = req.WithContext(session.NewContext(context.Background(), sess))
	rr := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		mux.ServeHTTP(rr, req)
	}()

	require.Eventually(t, func() bool { return sess.Tasks.Pending() == 1 }, time.Second, 5*time.Millisecond)
	mgr.End(sess.ID)
	<-done

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	in, _ := sess.Store.Internship("1")
	assert.Equal(t, 45, in.Applicants)
}

func TestLogbookHandler(t *testing.T) {
	f := newFixture(t, session.Config{})
	f.login(t, model.RoleStudent)

	rr := f.do(t, http.MethodPost, "/api/logbook", `{"activity":"Pairing","skills":"Go","hours":2.5}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	entry := decode[model.LogbookEntry](t, rr)
	assert.Equal(t, model.LogbookPending, entry.Status)
	assert.Equal(t, 2.5, entry.Hours)

	rr = f.do(t, http.MethodPost, "/api/logbook", `{"activity":"Pairing","skills":"Go","hours":"3"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = f.do(t, http.MethodPost, "/api/logbook", `{"activity":"Pairing","skills":"Go","hours":-1}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "hours", decode[handler.ErrorResponse](t, rr).Field)

	rr = f.do(t, http.MethodGet, "/api/logbook", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got struct {
		Entries []model.LogbookEntry   `json:"entries"`
		Summary service.LogbookSummary `json:"summary"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Len(t, got.Entries, 6)
	assert.Equal(t, 22.5, got.Summary.TotalHours)
	assert.Equal(t, 3, got.Summary.Pending)
}

func TestNotificationHandler(t *testing.T) {
	f := newFixture(t, session.Config{})

	type listResponse struct {
		Notifications []model.Notification `json:"notifications"`
		Unread        int                  `json:"unread"`
	}

	rr := f.do(t, http.MethodPost, "/api/notifications/n2/read", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decode[model.Notification](t, rr).Read)

	rr = f.do(t, http.MethodPost, "/api/notifications/nope/read", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = f.do(t, http.MethodGet, "/api/notifications", "")
	assert.Equal(t, 1, decode[listResponse](t, rr).Unread)

	rr = f.do(t, http.MethodPost, "/api/notifications/read-all", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, decode[listResponse](t, rr).Unread)
}

func TestRosterHandler(t *testing.T) {
	f := newFixture(t, session.Config{})
	f.login(t, model.RoleCollege)

	rr := f.do(t, http.MethodGet, "/api/students?q=mech", "")
	require.Equal(t, http.StatusOK, rr.Code)
	students := decode[[]model.Student](t, rr)
	require.Len(t, students, 1)
	assert.Equal(t, "s6", students[0].ID)

	rr = f.do(t, http.MethodPut, "/api/students/s7/status", `{"status":"Interning"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, model.StudentInterning, decode[model.Student](t, rr).Status)

	rr = f.do(t, http.MethodPut, "/api/students/s7/status", `{"status":"Retired"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = f.do(t, http.MethodPost, "/api/candidates/s3/decision", `{"status":"Rejected"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, model.CandidateRejected, decode[service.Candidate](t, rr).Decision)

	rr = f.do(t, http.MethodGet, "/api/candidates", "")
	require.Equal(t, http.StatusOK, rr.Code)
	cands := decode[[]service.Candidate](t, rr)
	assert.Equal(t, model.CandidateRejected, cands[2].Decision)
}

func TestDashboardHandler(t *testing.T) {
	f := newFixture(t, session.Config{})

	rr := f.do(t, http.MethodGet, "/api/dashboard", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = f.do(t, http.MethodPatch, "/api/profile", `{"bio":"hi"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	f.login(t, model.RoleCollege)

	rr = f.do(t, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, rr.Code)
	stats := decode[service.DashboardStats](t, rr)
	require.NotNil(t, stats.College)
	assert.Equal(t, 7, stats.College.TotalStudents)

	rr = f.do(t, http.MethodGet, "/api/reports", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 28.6, decode[service.Report](t, rr).PlacementRate)

	rr = f.do(t, http.MethodPatch, "/api/profile", `{"bio":"Placement officer","phone":"+91 1"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	u := decode[model.User](t, rr)
	assert.Equal(t, "Placement officer", u.Bio)
	assert.Equal(t, model.RoleCollege, u.Role)

	rr = f.do(t, http.MethodPatch, "/api/profile", `{"role":"industry"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code, "role is not patchable")
}
