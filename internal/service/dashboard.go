package service

import (
	"cmp"
	"context"
	"math"
	"slices"

	"github.com/sakif/internhub/internal/model"
	"github.com/sakif/internhub/internal/router"
	"github.com/sakif/internhub/internal/store"
)

// TopSkillsLimit caps the skill frequency table in reports.
const TopSkillsLimit = 8

type StudentStats struct {
	ActiveApplications  int     `json:"activeApplications"`
	OpenInternships     int     `json:"openInternships"`
	LogEntries          int     `json:"logEntries"`
	HoursLogged         float64 `json:"hoursLogged"`
	UnreadNotifications int     `json:"unreadNotifications"`
}

type CollegeStats struct {
	TotalStudents    int `json:"totalStudents"`
	Placed           int `json:"placed"`
	Interning        int `json:"interning"`
	Seeking          int `json:"seeking"`
	PendingApprovals int `json:"pendingApprovals"`
}

type IndustryStats struct {
	Postings        int `json:"postings"`
	OpenPostings    int `json:"openPostings"`
	TotalApplicants int `json:"totalApplicants"`
	Shortlisted     int `json:"shortlisted"`
}

// DashboardStats is the overview for the session user's role. Exactly one of
// the per-role sections is set.
type DashboardStats struct {
	Role     model.Role      `json:"role"`
	View     router.ViewKind `json:"view"`
	Student  *StudentStats   `json:"student,omitempty"`
	College  *CollegeStats   `json:"college,omitempty"`
	Industry *IndustryStats  `json:"industry,omitempty"`
}

type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// Report is the college analytics view.
type Report struct {
	TotalStudents      int                         `json:"totalStudents"`
	PlacementRate      float64                     `json:"placementRate"` // percent, one decimal
	StatusDistribution map[model.StudentStatus]int `json:"statusDistribution"`
	Departments        map[string]int              `json:"departments"`
	TopSkills          []SkillCount                `json:"topSkills"`
	TotalLoggedHours   float64                     `json:"totalLoggedHours"`
	ApprovedHours      float64                     `json:"approvedHours"`
}

// DashboardService derives read-only statistics from a session's snapshot.
type DashboardService struct{}

func NewDashboardService() *DashboardService { return &DashboardService{} }

// Stats computes the dashboard for the session user's role.
func (s *DashboardService) Stats(ctx context.Context) (DashboardStats, error) {
	st := sessionStore(ctx)
	u, err := requireUser(st, "view the dashboard")
	if err != nil {
		return DashboardStats{}, err
	}
	snap := st.Snapshot()

	d := router.DashboardFor(u.Role)
	out := DashboardStats{Role: u.Role, View: d.View()}
	switch d {
	case router.DashboardStudent, router.DashboardGuest:
		out.Student = studentStats(snap, u)
	case router.DashboardCollege:
		out.College = collegeStats(snap)
	case router.DashboardIndustry:
		out.Industry = industryStats(snap)
	}
	return out, nil
}

func studentStats(snap *store.State, u model.User) *StudentStats {
	s := &StudentStats{LogEntries: len(snap.Logbook)}
	for _, a := range snap.Applications {
		if a.UserID == u.ID {
			s.ActiveApplications++
		}
	}
	for _, in := range snap.Internships {
		if in.Status == model.InternshipOpen {
			s.OpenInternships++
		}
	}
	for _, e := range snap.Logbook {
		s.HoursLogged += e.Hours
	}
	for _, n := range snap.Notifications {
		if !n.Read {
			s.UnreadNotifications++
		}
	}
	return s
}

func collegeStats(snap *store.State) *CollegeStats {
	s := &CollegeStats{TotalStudents: len(snap.Students)}
	for _, st := range snap.Students {
		switch st.Status {
		case model.StudentPlaced:
			s.Placed++
		case model.StudentInterning:
			s.Interning++
		case model.StudentSeeking:
			s.Seeking++
		}
	}
	for _, e := range snap.Logbook {
		if e.Status == model.LogbookPending {
			s.PendingApprovals++
		}
	}
	return s
}

func industryStats(snap *store.State) *IndustryStats {
	s := &IndustryStats{Postings: len(snap.Internships)}
	for _, in := range snap.Internships {
		s.TotalApplicants += in.Applicants
		if in.Status == model.InternshipOpen {
			s.OpenPostings++
		}
	}
	for _, d := range snap.Decisions {
		if d == model.CandidateShortlisted {
			s.Shortlisted++
		}
	}
	return s
}

// Reports computes the roster analytics.
func (s *DashboardService) Reports(ctx context.Context) (Report, error) {
	st := sessionStore(ctx)
	if _, err := requireUser(st, "view reports"); err != nil {
		return Report{}, err
	}
	snap := st.Snapshot()

	r := Report{
		TotalStudents:      len(snap.Students),
		StatusDistribution: map[model.StudentStatus]int{},
		Departments:        map[string]int{},
	}

	skills := map[string]int{}
	for _, stu := range snap.Students {
		r.StatusDistribution[stu.Status]++
		r.Departments[stu.Department]++
		for _, sk := range stu.Skills {
			skills[sk]++
		}
	}
	if r.TotalStudents > 0 {
		rate := float64(r.StatusDistribution[model.StudentPlaced]) / float64(r.TotalStudents) * 100
		r.PlacementRate = math.Round(rate*10) / 10
	}

	r.TopSkills = make([]SkillCount, 0, len(skills))
	for sk, n := range skills {
		r.TopSkills = append(r.TopSkills, SkillCount{Skill: sk, Count: n})
	}
	slices.SortFunc(r.TopSkills, func(a, b SkillCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Skill, b.Skill)
	})
	if len(r.TopSkills) > TopSkillsLimit {
		r.TopSkills = r.TopSkills[:TopSkillsLimit]
	}

	for _, e := range snap.Logbook {
		r.TotalLoggedHours += e.Hours
		if e.Status == model.LogbookApproved {
			r.ApprovedHours += e.Hours
		}
	}
	return r, nil
}
