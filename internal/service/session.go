package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/internhub/internal/apperror"
	"github.com/sakif/internhub/internal/latency"
	"github.com/sakif/internhub/internal/model"
	"github.com/sakif/internhub/internal/router"
)

// Navigator is the part of a session router the session service drives.
type Navigator interface {
	Current() router.View
	Navigate(token string) router.View
	Login(role model.Role, name string) router.View
	Logout() router.View
}

// SessionService signs sessions in and out and moves them between pages.
// There is no credential check: any known role may sign in under any name.
type SessionService struct {
	logger *slog.Logger
}

// NewSessionService creates a SessionService.
func NewSessionService(logger *slog.Logger) *SessionService {
	return &SessionService{logger: logger}
}

// Login signs the session in as role behind the simulated latency and lands
// it on the dashboard. A blank name keeps the template user's name.
func (s *SessionService) Login(ctx context.Context, nav Navigator, role, name string) (router.View, error) {
	r := model.Role(strings.ToLower(strings.TrimSpace(role)))
	if !r.Valid() {
		return router.View{}, apperror.ValidationFailed("role",
			fmt.Sprintf("role must be %s, %s, %s or %s", model.RoleStudent, model.RoleCollege, model.RoleIndustry, model.RoleGuest))
	}
	name = strings.TrimSpace(name)

	var v router.View
	if err := latency.RunFromContext(ctx, "login", func() { v = nav.Login(r, name) }); err != nil {
		return router.View{}, fmt.Errorf("signing in: %w", err)
	}

	s.logger.Info("signed in", slog.String("role", string(r)))
	return v, nil
}

// Logout signs the session out and returns it to the landing page.
func (s *SessionService) Logout(_ context.Context, nav Navigator) router.View {
	v := nav.Logout()
	s.logger.Info("signed out")
	return v
}

// Navigate moves the session to page and returns the resolved view.
func (s *SessionService) Navigate(_ context.Context, nav Navigator, page string) (router.View, error) {
	page = strings.TrimSpace(page)
	if page == "" {
		return router.View{}, apperror.ValidationFailed("page", "page is required")
	}
	return nav.Navigate(page), nil
}
