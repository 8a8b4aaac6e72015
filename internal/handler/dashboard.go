package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/internhub/internal/model"
	"github.com/sakif/internhub/internal/service"
)

// DashboardHandler serves the overview, reports and profile settings.
type DashboardHandler struct {
	dashboard *service.DashboardService
	profile   *service.ProfileService
	logger    *slog.Logger
}

func NewDashboardHandler(dashboard *service.DashboardService, profile *service.ProfileService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, profile: profile, logger: logger}
}

// HTTP: GET /api/dashboard
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// HTTP: GET /api/reports
func (h *DashboardHandler) HandleReports(w http.ResponseWriter, r *http.Request) {
	rep, err := h.dashboard.Reports(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// HandleUpdateProfile saves the settings form. Fields left out of the body
// are unchanged; role cannot be patched and is rejected as an unknown field.
//
// HTTP: PATCH /api/profile
// REQUEST BODY: {"bio": "...", "phone": "..."}
func (h *DashboardHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var patch model.ProfilePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, err)
		return
	}

	u, err := h.profile.Update(r.Context(), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
