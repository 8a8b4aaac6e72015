package router

import "github.com/sakif/internhub/internal/model"

// NavItem is one entry of the sidebar menu.
type NavItem struct {
	Page  Page   `json:"page"`
	Label string `json:"label"`
}

// NavItems returns the menu shown to role, in display order.
func NavItems(role model.Role) []NavItem {
	var items []NavItem
	switch role {
	case model.RoleStudent:
		items = []NavItem{
			{Page: PageDashboard, Label: "Overview"},
			{Page: PageInternships, Label: "Find Internships"},
			{Page: PageLogbook, Label: "Logbook"},
		}
	case model.RoleCollege:
		items = []NavItem{
			{Page: PageDashboard, Label: "Overview"},
			{Page: PageStudents, Label: "Students"},
			{Page: PageReports, Label: "Reports"},
		}
	case model.RoleIndustry:
		items = []NavItem{
			{Page: PageDashboard, Label: "Overview"},
			{Page: PagePostings, Label: "Internships"},
			{Page: PageCandidates, Label: "Candidates"},
		}
	default:
		items = []NavItem{{Page: PageDashboard, Label: "Dashboard"}}
	}

	return append(items,
		NavItem{Page: PageNotifications, Label: "Notifications"},
		NavItem{Page: PageSettings, Label: "Settings"},
	)
}
