package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sakif/internhub/internal/apperror"
	"github.com/sakif/internhub/internal/model"
)

// NotificationService manages the session inbox.
type NotificationService struct {
	logger *slog.Logger
}

func NewNotificationService(logger *slog.Logger) *NotificationService {
	return &NotificationService{logger: logger}
}

// List returns the inbox, newest first, and how many are unread.
func (s *NotificationService) List(ctx context.Context) ([]model.Notification, int) {
	ns := sessionStore(ctx).Snapshot().Notifications
	return ns, CountUnread(ns)
}

// MarkRead marks one notification read. Marking an already-read notification
// succeeds.
func (s *NotificationService) MarkRead(ctx context.Context, id string) (model.Notification, error) {
	id = strings.TrimSpace(id)
	st := sessionStore(ctx)

	found := false
	for _, n := range st.Snapshot().Notifications {
		if n.ID == id {
			found = true
			break
		}
	}
	if !found {
		return model.Notification{}, apperror.NotFound("notification", id)
	}

	st.MarkNotificationRead(id)
	for _, n := range st.Snapshot().Notifications {
		if n.ID == id {
			return n, nil
		}
	}
	// Unreachable while notifications are never removed.
	return model.Notification{}, apperror.NotFound("notification", id)
}

// MarkAllRead marks the whole inbox read and returns how many changed.
func (s *NotificationService) MarkAllRead(ctx context.Context) int {
	st := sessionStore(ctx)
	unread := CountUnread(st.Snapshot().Notifications)
	st.MarkAllNotificationsRead()
	s.logger.Debug("notifications marked read", slog.Int("count", unread))
	return unread
}

// CountUnread counts notifications not yet read.
func CountUnread(ns []model.Notification) int {
	n := 0
	for _, x := range ns {
		if !x.Read {
			n++
		}
	}
	return n
}
