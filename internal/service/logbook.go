package service

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sakif/internhub/internal/apperror"
	"github.com/sakif/internhub/internal/model"
)

// DateLayout is how logbook dates are written.
const DateLayout = "2006-01-02"

// LogEntryForm is the "New Entry" form. Hours arrives as text and must parse
// as a non-negative number.
type LogEntryForm struct {
	Activity string `json:"activity"`
	Skills   string `json:"skills"` // comma-separated
	Hours    string `json:"hours"`
	MediaURL string `json:"mediaUrl"`
}

// LogbookSummary aggregates the logbook.
type LogbookSummary struct {
	Entries    int     `json:"entries"`
	TotalHours float64 `json:"totalHours"`
	Pending    int     `json:"pending"`
	Approved   int     `json:"approved"`
	Rejected   int     `json:"rejected"`
}

// Summarize aggregates entries.
func Summarize(entries []model.LogbookEntry) LogbookSummary {
	sum := LogbookSummary{Entries: len(entries)}
	for _, e := range entries {
		sum.TotalHours += e.Hours
		switch e.Status {
		case model.LogbookPending:
			sum.Pending++
		case model.LogbookApproved:
			sum.Approved++
		case model.LogbookRejected:
			sum.Rejected++
		}
	}
	return sum
}

// LogbookService records daily internship activity.
type LogbookService struct {
	logger *slog.Logger
	newID  func() string
	now    clock
}

// NewLogbookService creates a LogbookService.
func NewLogbookService(logger *slog.Logger) *LogbookService {
	return &LogbookService{logger: logger, newID: newXID, now: time.Now}
}

// List returns the logbook, newest first, with its summary.
func (s *LogbookService) List(ctx context.Context) ([]model.LogbookEntry, LogbookSummary) {
	entries := sessionStore(ctx).Snapshot().Logbook
	return entries, Summarize(entries)
}

// Summary aggregates the session's logbook.
func (s *LogbookService) Summary(ctx context.Context) LogbookSummary {
	return Summarize(sessionStore(ctx).Snapshot().Logbook)
}

// Add validates form and prepends a Pending entry dated today.
func (s *LogbookService) Add(ctx context.Context, form LogEntryForm) (model.LogbookEntry, error) {
	st := sessionStore(ctx)
	u, err := requireUser(st, "add logbook entries")
	if err != nil {
		return model.LogbookEntry{}, err
	}

	activity := strings.TrimSpace(form.Activity)
	if activity == "" {
		return model.LogbookEntry{}, apperror.ValidationFailed("activity", "activity is required")
	}
	skills := splitList(form.Skills)
	if len(skills) == 0 {
		return model.LogbookEntry{}, apperror.ValidationFailed("skills", "at least one skill is required")
	}
	hours, err := parseHours(form.Hours)
	if err != nil {
		return model.LogbookEntry{}, err
	}

	entry := model.LogbookEntry{
		ID:            "l" + s.newID(),
		Date:          s.now().Format(DateLayout),
		Activity:      activity,
		SkillsLearned: skills,
		Hours:         hours,
		Status:        model.LogbookPending,
		MediaURL:      strings.TrimSpace(form.MediaURL),
	}
	st.AddLogEntry(entry)

	s.logger.Info("logbook entry added",
		slog.String("id", entry.ID),
		slog.String("userID", u.ID),
		slog.Float64("hours", hours),
	)
	return entry, nil
}

func parseHours(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, apperror.ValidationFailed("hours", "hours is required")
	}
	h, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(h) || math.IsInf(h, 0) {
		return 0, apperror.ValidationFailed("hours", "hours must be a number")
	}
	if h < 0 {
		return 0, apperror.ValidationFailed("hours", "hours cannot be negative")
	}
	return h, nil
}
