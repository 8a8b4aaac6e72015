// Package router decides which view a session is looking at.
//
// The router is a small state machine. A session is Anonymous (no user) or
// Authenticated, and in either state it has a current page token. Resolve maps
// (user, page) to a concrete View; Router holds the current page for one
// session and drives login/logout through the session's store.
//
// Anonymous sessions only ever reach landing, login or register. Authenticated
// sessions may navigate from any page to any other. Role-scoped pages are not
// access-controlled unless Options.EnforceRoles is set.
package router

import (
	"log/slog"
	"sync"

	"github.com/sakif/internhub/internal/model"
)

// Page is a navigation token.
type Page string

const (
	PageLanding       Page = "landing"
	PageLogin         Page = "login"
	PageRegister      Page = "register"
	PageDashboard     Page = "dashboard"
	PageInternships   Page = "internships"
	PageLogbook       Page = "logbook"
	PageStudents      Page = "students"
	PageReports       Page = "reports"
	PagePostings      Page = "postings"
	PageCandidates    Page = "candidates"
	PageNotifications Page = "notifications"
	PageSettings      Page = "settings"
)

// ViewKind names a concrete view tree.
type ViewKind string

const (
	ViewLanding           ViewKind = "landing"
	ViewLogin             ViewKind = "login"
	ViewRegister          ViewKind = "register"
	ViewStudentDashboard  ViewKind = "student_dashboard"
	ViewCollegeDashboard  ViewKind = "college_dashboard"
	ViewIndustryDashboard ViewKind = "industry_dashboard"
	ViewInternships       ViewKind = "internships"
	ViewLogbook           ViewKind = "logbook"
	ViewStudentManagement ViewKind = "student_management"
	ViewReports           ViewKind = "reports"
	ViewCandidates        ViewKind = "candidates"
	ViewNotifications     ViewKind = "notifications"
	ViewSettings          ViewKind = "settings"
)

// View is the outcome of routing.
type View struct {
	Kind          ViewKind `json:"kind"`
	Page          Page     `json:"page"`
	Authenticated bool     `json:"authenticated"`
	// Redirected is set when role enforcement sent the caller to their
	// dashboard instead of the requested page.
	Redirected bool `json:"redirected,omitempty"`
}

// Options tune routing policy.
type Options struct {
	// EnforceRoles sends a user who opens another role's page to their own
	// dashboard.
	EnforceRoles bool
}

// Dashboard is the per-role dashboard variant.
type Dashboard int

const (
	DashboardStudent Dashboard = iota
	DashboardCollege
	DashboardIndustry
	DashboardGuest
)

// DashboardFor picks the dashboard variant for role. Unknown roles get the
// guest variant.
func DashboardFor(role model.Role) Dashboard {
	switch role {
	case model.RoleStudent:
		return DashboardStudent
	case model.RoleCollege:
		return DashboardCollege
	case model.RoleIndustry:
		return DashboardIndustry
	case model.RoleGuest:
		return DashboardGuest
	}
	return DashboardGuest
}

// View returns the view a dashboard variant renders. Guests see the student
// dashboard.
func (d Dashboard) View() ViewKind {
	switch d {
	case DashboardStudent, DashboardGuest:
		return ViewStudentDashboard
	case DashboardCollege:
		return ViewCollegeDashboard
	case DashboardIndustry:
		return ViewIndustryDashboard
	}
	return ViewStudentDashboard
}

// pageOwner is the role each role-scoped page is built for.
var pageOwner = map[Page]model.Role{
	PageInternships: model.RoleStudent,
	PageLogbook:     model.RoleStudent,
	PageStudents:    model.RoleCollege,
	PageReports:     model.RoleCollege,
	PagePostings:    model.RoleIndustry,
	PageCandidates:  model.RoleIndustry,
}

// OwnerOf returns the role a page is intended for, if it is role-scoped.
func OwnerOf(p Page) (model.Role, bool) {
	r, ok := pageOwner[p]
	return r, ok
}

// Resolve maps a session user (nil when anonymous) and a page token to a view.
func Resolve(user *model.User, page Page, opts Options) View {
	if user == nil {
		switch page {
		case PageLogin:
			return View{Kind: ViewLogin, Page: page}
		case PageRegister:
			return View{Kind: ViewRegister, Page: page}
		default:
			return View{Kind: ViewLanding, Page: PageLanding}
		}
	}

	dashboard := View{Kind: DashboardFor(user.Role).View(), Page: PageDashboard, Authenticated: true}

	if opts.EnforceRoles {
		if owner, scoped := pageOwner[page]; scoped && owner != user.Role {
			dashboard.Redirected = true
			return dashboard
		}
	}

	v := View{Page: page, Authenticated: true}
	switch page {
	case PageDashboard:
		return dashboard
	case PageInternships:
		v.Kind = ViewInternships
	case PageLogbook:
		v.Kind = ViewLogbook
	case PageStudents:
		v.Kind = ViewStudentManagement
	case PageReports:
		v.Kind = ViewReports
	case PagePostings:
		v.Kind = ViewIndustryDashboard
	case PageCandidates:
		v.Kind = ViewCandidates
	case PageNotifications:
		v.Kind = ViewNotifications
	case PageSettings:
		v.Kind = ViewSettings
	default:
		v.Kind = ViewStudentDashboard
	}
	return v
}

// Session is the part of the store the router drives.
type Session interface {
	CurrentUser() (model.User, bool)
	Login(role model.Role, name string)
	Logout()
}

// Router tracks the current page of one session. It is safe for concurrent
// use.
type Router struct {
	mu      sync.Mutex
	session Session
	page    Page
	opts    Options
	logger  *slog.Logger
}

// New creates a Router on the landing page.
func New(session Session, opts Options, logger *slog.Logger) *Router {
	return &Router{
		session: session,
		page:    PageLanding,
		opts:    opts,
		logger:  logger,
	}
}

// CurrentPage returns the raw page token.
func (r *Router) CurrentPage() Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.page
}

// Current resolves the current page against the current session user.
func (r *Router) Current() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolveLocked()
}

// Navigate sets the page token and returns the resulting view. Anonymous
// sessions keep the token but still resolve to landing, login or register.
func (r *Router) Navigate(token string) View {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.page = Page(token)
	v := r.resolveLocked()
	r.logger.Debug("navigate",
		slog.String("page", token),
		slog.String("view", string(v.Kind)),
	)
	return v
}

// Login signs the session in and moves it to the dashboard.
func (r *Router) Login(role model.Role, name string) View {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.session.Login(role, name)
	r.page = PageDashboard
	return r.resolveLocked()
}

// Logout signs the session out and returns it to the landing page.
func (r *Router) Logout() View {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.session.Logout()
	r.page = PageLanding
	return r.resolveLocked()
}

func (r *Router) resolveLocked() View {
	if u, ok := r.session.CurrentUser(); ok {
		return Resolve(&u, r.page, r.opts)
	}
	return Resolve(nil, r.page, r.opts)
}
