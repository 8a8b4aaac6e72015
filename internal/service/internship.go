package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/internhub/internal/apperror"
	"github.com/sakif/internhub/internal/latency"
	"github.com/sakif/internhub/internal/model"
)

// Posting defaults, as shown pre-filled in the posting form.
const (
	DefaultCompany  = "TechFlow Solutions"
	DefaultDuration = "3 Months"
	JustNow         = "Just now"

	// FilterAll disables the type filter.
	FilterAll = "All"
)

// InternshipFilter narrows the internship list. Query matches title or
// company, case-insensitively. Type is FilterAll, empty, or one of
// model.InternshipTypes.
type InternshipFilter struct {
	Query string
	Type  string
}

// PostingForm is the industry "Post Internship" form.
type PostingForm struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	Stipend     string `json:"stipend"`
	Description string `json:"description"`
	Skills      string `json:"skills"` // comma-separated
	Duration    string `json:"duration"`
	Logo        string `json:"logo"`
}

// ApplicationDetail is an application joined with the posting it targets.
type ApplicationDetail struct {
	model.Application
	Title   string `json:"title"`
	Company string `json:"company"`
}

// InternshipService handles browsing, applying to and posting internships.
type InternshipService struct {
	logger *slog.Logger
	newID  func() string
}

// NewInternshipService creates an InternshipService.
func NewInternshipService(logger *slog.Logger) *InternshipService {
	return &InternshipService{logger: logger, newID: newXID}
}

// List returns the internships matching f, in store order.
func (s *InternshipService) List(ctx context.Context, f InternshipFilter) ([]model.Internship, error) {
	typ := strings.TrimSpace(f.Type)
	if typ != "" && typ != FilterAll && !model.InternshipType(typ).Valid() {
		return nil, apperror.ValidationFailed("type",
			fmt.Sprintf("type must be %s, %s, %s or %s", FilterAll, model.TypeRemote, model.TypeOnSite, model.TypeHybrid))
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))

	all := sessionStore(ctx).Snapshot().Internships
	out := make([]model.Internship, 0, len(all))
	for _, in := range all {
		if typ != "" && typ != FilterAll && string(in.Type) != typ {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(in.Title), q) &&
			!strings.Contains(strings.ToLower(in.Company), q) {
			continue
		}
		out = append(out, in.Clone())
	}
	return out, nil
}

// Apply submits the session user's application to an open internship and
// returns the updated posting. The update runs behind the session's simulated
// latency; if ctx ends first the application is abandoned.
func (s *InternshipService) Apply(ctx context.Context, id string) (model.Internship, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Internship{}, apperror.ValidationFailed("id", "internship ID is required")
	}

	st := sessionStore(ctx)
	u, err := requireUser(st, "apply for internships")
	if err != nil {
		return model.Internship{}, err
	}

	in, ok := st.Internship(id)
	if !ok {
		return model.Internship{}, apperror.NotFound("internship", id)
	}
	if in.Status != model.InternshipOpen {
		return model.Internship{}, apperror.Conflict("internship %s is not accepting applications", id)
	}

	// The status is checked again when the update commits: another apply on
	// the same session may have closed the posting during the delay.
	var applied bool
	if err := latency.RunFromContext(ctx, "apply", func() { applied = st.ApplyIfOpen(id) }); err != nil {
		return model.Internship{}, fmt.Errorf("applying to internship %s: %w", id, err)
	}
	if !applied {
		return model.Internship{}, apperror.Conflict("internship %s is not accepting applications", id)
	}

	s.logger.Info("application submitted",
		slog.String("internshipID", id),
		slog.String("userID", u.ID),
	)

	in, _ = st.Internship(id)
	return in, nil
}

// Applications lists the session user's applications, newest first.
func (s *InternshipService) Applications(ctx context.Context) ([]ApplicationDetail, error) {
	st := sessionStore(ctx)
	u, err := requireUser(st, "view your applications")
	if err != nil {
		return nil, err
	}

	snap := st.Snapshot()
	byID := make(map[string]model.Internship, len(snap.Internships))
	for _, in := range snap.Internships {
		byID[in.ID] = in
	}

	out := make([]ApplicationDetail, 0, len(snap.Applications))
	for _, a := range snap.Applications {
		if a.UserID != u.ID {
			continue
		}
		d := ApplicationDetail{Application: a}
		if in, ok := byID[a.InternshipID]; ok {
			d.Title = in.Title
			d.Company = in.Company
		}
		out = append(out, d)
	}
	return out, nil
}

// Post validates a posting form and publishes the internship at the head of
// the list.
func (s *InternshipService) Post(ctx context.Context, form PostingForm) (model.Internship, error) {
	st := sessionStore(ctx)
	u, err := requireUser(st, "post internships")
	if err != nil {
		return model.Internship{}, err
	}

	in, err := s.buildPosting(form)
	if err != nil {
		return model.Internship{}, err
	}

	st.PostInternship(in)

	s.logger.Info("internship posted",
		slog.String("id", in.ID),
		slog.String("title", in.Title),
		slog.String("userID", u.ID),
	)
	return in, nil
}

func (s *InternshipService) buildPosting(form PostingForm) (model.Internship, error) {
	required := []struct {
		field, value string
	}{
		{"title", form.Title},
		{"location", form.Location},
		{"stipend", form.Stipend},
		{"description", form.Description},
		{"skills", form.Skills},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return model.Internship{}, apperror.ValidationFailed(r.field, r.field+" is required")
		}
	}

	typ := model.InternshipType(strings.TrimSpace(form.Type))
	if typ == "" {
		typ = model.TypeRemote
	}
	if !typ.Valid() {
		return model.Internship{}, apperror.ValidationFailed("type",
			fmt.Sprintf("type must be %s, %s or %s", model.TypeRemote, model.TypeOnSite, model.TypeHybrid))
	}

	skills := splitList(form.Skills)
	if len(skills) == 0 {
		return model.Internship{}, apperror.ValidationFailed("skills", "at least one skill is required")
	}

	company := strings.TrimSpace(form.Company)
	if company == "" {
		company = DefaultCompany
	}
	duration := strings.TrimSpace(form.Duration)
	if duration == "" {
		duration = DefaultDuration
	}

	return model.Internship{
		ID:          "i" + s.newID(),
		Title:       strings.TrimSpace(form.Title),
		Company:     company,
		Logo:        strings.TrimSpace(form.Logo),
		Location:    strings.TrimSpace(form.Location),
		Type:        typ,
		Stipend:     strings.TrimSpace(form.Stipend),
		Status:      model.InternshipOpen,
		Applicants:  0,
		PostedDate:  JustNow,
		Description: strings.TrimSpace(form.Description),
		Skills:      skills,
		Duration:    duration,
	}, nil
}
