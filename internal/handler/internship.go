package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/internhub/internal/model"
	"github.com/sakif/internhub/internal/service"
)

// InternshipHandler serves the internship board and applications.
type InternshipHandler struct {
	svc    *service.InternshipService
	logger *slog.Logger
}

// NewInternshipHandler creates an InternshipHandler.
func NewInternshipHandler(svc *service.InternshipService, logger *slog.Logger) *InternshipHandler {
	return &InternshipHandler{svc: svc, logger: logger}
}

// HandleList returns the filtered board.
//
// HTTP: GET /api/internships?q=react&type=Remote
func (h *InternshipHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.svc.List(r.Context(), service.InternshipFilter{
		Query: q.Get("q"),
		Type:  q.Get("type"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleCreate publishes a posting.
//
// HTTP: POST /api/internships
// REQUEST BODY: service.PostingForm
func (h *InternshipHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var form service.PostingForm
	if err := decodeJSON(w, r, &form); err != nil {
		writeError(w, err)
		return
	}

	in, err := h.svc.Post(r.Context(), form)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, in)
}

// HandleApply applies to one posting. With simulated latency enabled the
// response arrives after the delay.
//
// HTTP: POST /api/internships/{id}/apply
func (h *InternshipHandler) HandleApply(w http.ResponseWriter, r *http.Request) {
	in, err := h.svc.Apply(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

// HandleApplications lists the caller's applications.
//
// HTTP: GET /api/applications
func (h *InternshipHandler) HandleApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.Applications(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

// typesResponse lists the posting types the filter accepts.
type typesResponse struct {
	Types []model.InternshipType `json:"types"`
}

// HandleTypes returns the closed set of internship types.
//
// HTTP: GET /api/internships/types
func (h *InternshipHandler) HandleTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, typesResponse{Types: model.InternshipTypes})
}
