package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/internhub/internal/apperror"
	"github.com/sakif/internhub/internal/model"
)

// CandidateLimit is how many roster students are shown as candidates.
const CandidateLimit = 5

// Candidate is a roster student under industry review, with the reviewer's
// decision if one was made.
type Candidate struct {
	model.Student
	Decision model.CandidateStatus `json:"decision,omitempty"`
}

// RosterService covers the college student roster and the industry
// candidate review built on top of it.
type RosterService struct {
	logger *slog.Logger
}

// NewRosterService creates a RosterService.
func NewRosterService(logger *slog.Logger) *RosterService {
	return &RosterService{logger: logger}
}

// Search returns the students whose name or department contains term,
// case-insensitively. An empty term returns the whole roster.
func (s *RosterService) Search(ctx context.Context, term string) []model.Student {
	term = strings.ToLower(strings.TrimSpace(term))
	all := sessionStore(ctx).Snapshot().Students

	out := make([]model.Student, 0, len(all))
	for _, st := range all {
		if term != "" &&
			!strings.Contains(strings.ToLower(st.Name), term) &&
			!strings.Contains(strings.ToLower(st.Department), term) {
			continue
		}
		out = append(out, st.Clone())
	}
	return out
}

// UpdateStatus changes a student's placement status.
func (s *RosterService) UpdateStatus(ctx context.Context, id, status string) (model.Student, error) {
	st := sessionStore(ctx)
	if _, err := requireUser(st, "manage students"); err != nil {
		return model.Student{}, err
	}

	next := model.StudentStatus(strings.TrimSpace(status))
	if !next.Valid() {
		return model.Student{}, apperror.ValidationFailed("status",
			fmt.Sprintf("status must be %s, %s or %s", model.StudentPlaced, model.StudentInterning, model.StudentSeeking))
	}
	if _, ok := st.Student(id); !ok {
		return model.Student{}, apperror.NotFound("student", id)
	}

	st.UpdateStudentStatus(id, next)
	s.logger.Info("student status updated",
		slog.String("studentID", id),
		slog.String("status", string(next)),
	)

	updated, _ := st.Student(id)
	return updated, nil
}

// Candidates returns the first CandidateLimit roster students with any
// recorded decision.
func (s *RosterService) Candidates(ctx context.Context) []Candidate {
	snap := sessionStore(ctx).Snapshot()

	n := min(CandidateLimit, len(snap.Students))
	out := make([]Candidate, 0, n)
	for _, st := range snap.Students[:n] {
		out = append(out, Candidate{Student: st.Clone(), Decision: snap.Decisions[st.ID]})
	}
	return out
}

// Decide records a Shortlisted or Rejected decision for a candidate. The
// roster status of the student is not changed.
func (s *RosterService) Decide(ctx context.Context, studentID, status string) (Candidate, error) {
	st := sessionStore(ctx)
	u, err := requireUser(st, "review candidates")
	if err != nil {
		return Candidate{}, err
	}

	decision := model.CandidateStatus(strings.TrimSpace(status))
	if !decision.Valid() {
		return Candidate{}, apperror.ValidationFailed("status",
			fmt.Sprintf("status must be %s or %s", model.CandidateShortlisted, model.CandidateRejected))
	}

	for _, c := range s.Candidates(ctx) {
		if c.ID != studentID {
			continue
		}
		st.UpdateCandidateStatus(studentID, decision)
		c.Decision = decision

		s.logger.Info("candidate decision",
			slog.String("studentID", studentID),
			slog.String("status", string(decision)),
			slog.String("userID", u.ID),
		)
		return c, nil
	}
	return Candidate{}, apperror.NotFound("candidate", studentID)
}
