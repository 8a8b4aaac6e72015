package model

import "time"

// InternshipType is where the work happens.
type InternshipType string

const (
	TypeRemote InternshipType = "Remote"
	TypeOnSite InternshipType = "On-site"
	TypeHybrid InternshipType = "Hybrid"
)

// InternshipTypes lists the closed set of types in display order.
var InternshipTypes = []InternshipType{TypeRemote, TypeOnSite, TypeHybrid}

func (t InternshipType) Valid() bool {
	switch t {
	case TypeRemote, TypeOnSite, TypeHybrid:
		return true
	}
	return false
}

type InternshipStatus string

const (
	InternshipOpen   InternshipStatus = "Open"
	InternshipClosed InternshipStatus = "Closed"
)

// Internship is a posting published by an industry user.
//
// Status doubles as the "applied" marker: applying flips it to Closed. The
// per-viewer record of an application is Application, below.
type Internship struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Company     string           `json:"company"`
	Logo        string           `json:"logo,omitempty"`
	Location    string           `json:"location"`
	Type        InternshipType   `json:"type"`
	Stipend     string           `json:"stipend"`
	Status      InternshipStatus `json:"status"`
	Applicants  int              `json:"applicants"`
	PostedDate  string           `json:"postedDate"`
	Description string           `json:"description"`
	Skills      []string         `json:"skills"`
	Duration    string           `json:"duration"`
}

// Clone returns a deep copy so the skills slice is never shared.
func (i Internship) Clone() Internship {
	i.Skills = cloneStrings(i.Skills)
	return i
}

type ApplicationStatus string

const ApplicationApplied ApplicationStatus = "Applied"

// Application records that a particular session user applied to a posting.
type Application struct {
	ID           string            `json:"id"`
	InternshipID string            `json:"internshipId"`
	UserID       string            `json:"userId"`
	Status       ApplicationStatus `json:"status"`
	AppliedAt    time.Time         `json:"appliedAt"`
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
