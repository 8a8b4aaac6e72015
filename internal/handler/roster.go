package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/internhub/internal/service"
)

// RosterHandler serves the college roster and the industry candidate review.
type RosterHandler struct {
	svc    *service.RosterService
	logger *slog.Logger
}

func NewRosterHandler(svc *service.RosterService, logger *slog.Logger) *RosterHandler {
	return &RosterHandler{svc: svc, logger: logger}
}

type statusRequest struct {
	Status string `json:"status"`
}

// HandleStudents searches the roster by name or department.
//
// HTTP: GET /api/students?q=cs
func (h *RosterHandler) HandleStudents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Search(r.Context(), r.URL.Query().Get("q")))
}

// HandleUpdateStatus sets a student's placement status.
//
// HTTP: PUT /api/students/{id}/status
// REQUEST BODY: {"status": "Placed"}
func (h *RosterHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	st, err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// HandleCandidates lists candidates with their decisions.
//
// HTTP: GET /api/candidates
func (h *RosterHandler) HandleCandidates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Candidates(r.Context()))
}

// HandleDecide shortlists or rejects a candidate.
//
// HTTP: POST /api/candidates/{id}/decision
// REQUEST BODY: {"status": "Shortlisted"}
func (h *RosterHandler) HandleDecide(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	c, err := h.svc.Decide(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
