package store

import (
	"log/slog"

	"github.com/sakif/internhub/internal/model"
)

// Login replaces the session user with the template user carrying role and,
// when non-empty, name. It never fails.
func (s *Store) Login(role model.Role, name string) {
	u := s.template
	u.Role = role
	if name != "" {
		u.Name = name
	}

	s.update(OpLogin, func(next *State) bool {
		next.User = &u
		return true
	})
}

// Logout clears the session user.
func (s *Store) Logout() {
	s.update(OpLogout, func(next *State) bool {
		if next.User == nil {
			return false
		}
		next.User = nil
		return true
	})
}

// UpdateProfile merges patch into the session user. Without a session user
// it does nothing.
func (s *Store) UpdateProfile(patch model.ProfilePatch) {
	s.update(OpUpdateProfile, func(next *State) bool {
		if next.User == nil {
			return false
		}
		u := patch.Apply(*next.User)
		next.User = &u
		return true
	})
}

// AddLogEntry prepends entry to the logbook. The caller assigns the ID and
// status; the store does not validate the entry.
func (s *Store) AddLogEntry(entry model.LogbookEntry) {
	entry = entry.Clone()
	s.update(OpAddLogEntry, func(next *State) bool {
		next.Logbook = prepend(next.Logbook, entry)
		return true
	})
}

// Apply records an application to the internship with the given ID: its
// applicant count goes up by one and its status becomes Closed, which the
// dashboard reads as "applied". An "Application Sent" notification is
// prepended whether or not the ID matched a posting.
func (s *Store) Apply(internshipID string) {
	if !s.apply(internshipID, false) {
		s.logger.Debug("apply: no internship with id", slog.String("internshipID", internshipID))
	}
}

// ApplyIfOpen is Apply guarded by the posting's status: the check and the
// update happen under one lock, so of two concurrent calls for the same open
// posting exactly one succeeds. It reports whether the application was
// recorded; when it was not, nothing changes and no notification is sent.
func (s *Store) ApplyIfOpen(internshipID string) bool {
	return s.apply(internshipID, true)
}

// apply reports whether internshipID matched (and, with requireOpen, was Open).
func (s *Store) apply(internshipID string, requireOpen bool) bool {
	notif := model.Notification{
		ID:      "n" + s.newID(),
		Title:   "Application Sent",
		Message: "Your application has been successfully submitted.",
		Date:    "Just now",
		Read:    false,
		Type:    model.NotificationSuccess,
	}
	appliedAt := s.now()
	appID := "a" + s.newID()

	var matched bool
	s.update(OpApply, func(next *State) bool {
		if requireOpen {
			in, ok := findInternship(next.Internships, internshipID)
			if !ok || in.Status != model.InternshipOpen {
				return false
			}
		}

		internships := make([]model.Internship, len(next.Internships))
		for i, in := range next.Internships {
			if in.ID == internshipID {
				in.Applicants++
				in.Status = model.InternshipClosed
				matched = true
			}
			internships[i] = in
		}
		if matched {
			next.Internships = internships
			if next.User != nil {
				next.Applications = prepend(next.Applications, model.Application{
					ID:           appID,
					InternshipID: internshipID,
					UserID:       next.User.ID,
					Status:       model.ApplicationApplied,
					AppliedAt:    appliedAt,
				})
			}
		}
		next.Notifications = prepend(next.Notifications, notif)
		return true
	})
	return matched
}

func findInternship(list []model.Internship, id string) (model.Internship, bool) {
	for _, in := range list {
		if in.ID == id {
			return in, true
		}
	}
	return model.Internship{}, false
}

// MarkNotificationRead marks one notification read.
func (s *Store) MarkNotificationRead(id string) {
	s.update(OpMarkNotificationRead, func(next *State) bool {
		idx := -1
		for i, n := range next.Notifications {
			if n.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return false
		}
		notifs := make([]model.Notification, len(next.Notifications))
		copy(notifs, next.Notifications)
		notifs[idx].Read = true
		next.Notifications = notifs
		return true
	})
}

// MarkAllNotificationsRead marks every notification read.
func (s *Store) MarkAllNotificationsRead() {
	s.update(OpMarkAllRead, func(next *State) bool {
		notifs := make([]model.Notification, len(next.Notifications))
		for i, n := range next.Notifications {
			n.Read = true
			notifs[i] = n
		}
		next.Notifications = notifs
		return true
	})
}

// PostInternship prepends a fully formed posting.
func (s *Store) PostInternship(internship model.Internship) {
	internship = internship.Clone()
	s.update(OpPostInternship, func(next *State) bool {
		next.Internships = prepend(next.Internships, internship)
		return true
	})
}

// UpdateStudentStatus sets the placement status of one roster student.
func (s *Store) UpdateStudentStatus(id string, status model.StudentStatus) {
	s.update(OpUpdateStudentStatus, func(next *State) bool {
		idx := -1
		for i, st := range next.Students {
			if st.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return false
		}
		students := make([]model.Student, len(next.Students))
		copy(students, next.Students)
		students[idx].Status = status
		next.Students = students
		return true
	})
}

// UpdateCandidateStatus records a reviewer decision for display. It never
// touches the roster; the decision lives only in State.Decisions.
func (s *Store) UpdateCandidateStatus(studentID string, status model.CandidateStatus) {
	committed := false
	s.update(OpUpdateCandidateStatus, func(next *State) bool {
		decisions := make(map[string]model.CandidateStatus, len(next.Decisions)+1)
		for k, v := range next.Decisions {
			decisions[k] = v
		}
		decisions[studentID] = status
		next.Decisions = decisions
		committed = true
		return true
	})
	if committed {
		s.logger.Debug("candidate decision recorded",
			slog.String("studentID", studentID),
			slog.String("status", string(status)),
		)
	}
}

// prepend returns a new slice with v at the head, leaving s untouched.
func prepend[T any](s []T, v T) []T {
	out := make([]T, 0, len(s)+1)
	out = append(out, v)
	return append(out, s...)
}
