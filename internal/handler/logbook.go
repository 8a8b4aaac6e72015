package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/internhub/internal/model"
	"github.com/sakif/internhub/internal/service"
)

type LogbookHandler struct {
	svc    *service.LogbookService
	logger *slog.Logger
}

func NewLogbookHandler(svc *service.LogbookService, logger *slog.Logger) *LogbookHandler {
	return &LogbookHandler{svc: svc, logger: logger}
}

type logbookResponse struct {
	Entries []model.LogbookEntry   `json:"entries"`
	Summary service.LogbookSummary `json:"summary"`
}

// logEntryRequest accepts hours as either a JSON number or a numeric string.
type logEntryRequest struct {
	Activity string      `json:"activity"`
	Skills   string      `json:"skills"`
	Hours    json.Number `json:"hours"`
	MediaURL string      `json:"mediaUrl"`
}

// HandleList returns the logbook and its summary.
//
// HTTP: GET /api/logbook
func (h *LogbookHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, sum := h.svc.List(r.Context())
	writeJSON(w, http.StatusOK, logbookResponse{Entries: entries, Summary: sum})
}

// HandleCreate adds an entry.
//
// HTTP: POST /api/logbook
// REQUEST BODY: {"activity": "...", "skills": "Go, SQL", "hours": 4}
func (h *LogbookHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req logEntryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	entry, err := h.svc.Add(r.Context(), service.LogEntryForm{
		Activity: req.Activity,
		Skills:   req.Skills,
		Hours:    req.Hours.String(),
		MediaURL: req.MediaURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}
