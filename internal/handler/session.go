package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/internhub/internal/model"
	"github.com/sakif/internhub/internal/router"
	"github.com/sakif/internhub/internal/service"
	"github.com/sakif/internhub/internal/session"
)

// SessionHandler exposes sign-in, sign-out and navigation for the caller's
// session.
//
// HANDLER RESPONSIBILITIES:
//   - HandleGet      → who is signed in, which page, which view, which menu
//   - HandleLogin    → sign in as a role (no credentials)
//   - HandleLogout   → back to the landing page
//   - HandleNavigate → move to a page token
//   - HandleView     → the current view together with the data it renders
type SessionHandler struct {
	sessions *service.SessionService
	views    *service.ViewService
	logger   *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(sessions *service.SessionService, views *service.ViewService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, views: views, logger: logger}
}

// SessionResponse describes the caller's session.
type SessionResponse struct {
	User *model.User      `json:"user"`
	Page router.Page      `json:"page"`
	View router.View      `json:"view"`
	Menu []router.NavItem `json:"menu"`
}

type loginRequest struct {
	Role string `json:"role"`
	Name string `json:"name"`
}

type navigateRequest struct {
	Page string `json:"page"`
}

func describe(sess *session.Session) SessionResponse {
	resp := SessionResponse{
		Page: sess.Router.CurrentPage(),
		View: sess.Router.Current(),
		Menu: []router.NavItem{},
	}
	if u, ok := sess.Store.CurrentUser(); ok {
		resp.User = &u
		resp.Menu = router.NavItems(u.Role)
	}
	return resp
}

// HandleGet describes the caller's session.
//
// HTTP: GET /api/session
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, describe(session.MustFromContext(r.Context())))
}

// HandleLogin signs the session in.
//
// HTTP: POST /api/session/login
// REQUEST BODY: {"role": "college", "name": "Dr. Rao"}
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	sess := session.MustFromContext(r.Context())
	if _, err := h.sessions.Login(r.Context(), sess.Router, req.Role, req.Name); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, describe(sess))
}

// HandleLogout signs the session out. The session itself survives, so the
// caller keeps the same cookie.
//
// HTTP: POST /api/session/logout
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	sess := session.MustFromContext(r.Context())
	h.sessions.Logout(r.Context(), sess.Router)
	writeJSON(w, http.StatusOK, describe(sess))
}

// HandleNavigate moves the session to another page.
//
// HTTP: POST /api/navigate
// REQUEST BODY: {"page": "logbook"}
func (h *SessionHandler) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	sess := session.MustFromContext(r.Context())
	v, err := h.sessions.Navigate(r.Context(), sess.Router, req.Page)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// HandleView returns the resolved current view and its data.
//
// HTTP: GET /api/view
func (h *SessionHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	sess := session.MustFromContext(r.Context())
	vm, err := h.views.Build(r.Context(), sess.Router.Current())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vm)
}
