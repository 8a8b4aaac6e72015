package service

import (
	"context"

	"github.com/sakif/internhub/internal/model"
	"github.com/sakif/internhub/internal/router"
)

// ViewModel is a resolved view together with the data it renders.
type ViewModel struct {
	View router.View      `json:"view"`
	Data any              `json:"data,omitempty"`
	Menu []router.NavItem `json:"menu,omitempty"`
}

type internshipsData struct {
	Internships  []model.Internship     `json:"internships"`
	Applications []ApplicationDetail    `json:"applications"`
	Types        []model.InternshipType `json:"types"`
}

type logbookData struct {
	Entries []model.LogbookEntry `json:"entries"`
	Summary LogbookSummary       `json:"summary"`
}

type notificationsData struct {
	Notifications []model.Notification `json:"notifications"`
	Unread        int                  `json:"unread"`
}

type postingsData struct {
	Stats       DashboardStats     `json:"stats"`
	Internships []model.Internship `json:"internships"`
}

// ViewService assembles the payload for whichever view a session resolves to.
type ViewService struct {
	internships *InternshipService
	logbook     *LogbookService
	roster      *RosterService
	dashboard   *DashboardService
}

// NewViewService wires a ViewService from the per-page services.
func NewViewService(in *InternshipService, lb *LogbookService, rs *RosterService, ds *DashboardService) *ViewService {
	return &ViewService{internships: in, logbook: lb, roster: rs, dashboard: ds}
}

// Build returns v with its data. Anonymous views carry no data.
func (s *ViewService) Build(ctx context.Context, v router.View) (ViewModel, error) {
	vm := ViewModel{View: v}
	if !v.Authenticated {
		return vm, nil
	}

	st := sessionStore(ctx)
	if u, ok := st.CurrentUser(); ok {
		vm.Menu = router.NavItems(u.Role)
	}
	snap := st.Snapshot()

	switch v.Kind {
	case router.ViewStudentDashboard, router.ViewCollegeDashboard:
		stats, err := s.dashboard.Stats(ctx)
		if err != nil {
			return ViewModel{}, err
		}
		vm.Data = stats
	case router.ViewIndustryDashboard:
		stats, err := s.dashboard.Stats(ctx)
		if err != nil {
			return ViewModel{}, err
		}
		vm.Data = postingsData{Stats: stats, Internships: snap.Internships}
	case router.ViewInternships:
		list, err := s.internships.List(ctx, InternshipFilter{})
		if err != nil {
			return ViewModel{}, err
		}
		apps, err := s.internships.Applications(ctx)
		if err != nil {
			return ViewModel{}, err
		}
		vm.Data = internshipsData{Internships: list, Applications: apps, Types: model.InternshipTypes}
	case router.ViewLogbook:
		entries, sum := s.logbook.List(ctx)
		vm.Data = logbookData{Entries: entries, Summary: sum}
	case router.ViewStudentManagement:
		vm.Data = s.roster.Search(ctx, "")
	case router.ViewReports:
		r, err := s.dashboard.Reports(ctx)
		if err != nil {
			return ViewModel{}, err
		}
		vm.Data = r
	case router.ViewCandidates:
		vm.Data = s.roster.Candidates(ctx)
	case router.ViewNotifications:
		vm.Data = notificationsData{Notifications: snap.Notifications, Unread: CountUnread(snap.Notifications)}
	case router.ViewSettings:
		u, _ := st.CurrentUser()
		vm.Data = u
	}
	return vm, nil
}

