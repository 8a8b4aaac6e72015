package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/sakif/internhub/internal/apperror"
	"github.com/sakif/internhub/internal/latency"
	"github.com/sakif/internhub/internal/model"
)

// ProfileService saves the settings page.
type ProfileService struct {
	logger *slog.Logger
}

// NewProfileService creates a ProfileService.
func NewProfileService(logger *slog.Logger) *ProfileService {
	return &ProfileService{logger: logger}
}

// Update merges patch into the session user behind the session's simulated
// latency and returns the saved profile. Anonymous sessions get
// apperror.ErrUnauthenticated rather than the store's silent no-op.
func (s *ProfileService) Update(ctx context.Context, patch model.ProfilePatch) (model.User, error) {
	st := sessionStore(ctx)
	u, err := requireUser(st, "update your profile")
	if err != nil {
		return model.User{}, err
	}

	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return model.User{}, apperror.ValidationFailed("name", "name cannot be empty")
	}
	if patch.Email != nil {
		if _, err := mail.ParseAddress(*patch.Email); err != nil {
			return model.User{}, apperror.ValidationFailed("email", "email is not a valid address")
		}
	}
	if patch.IsEmpty() {
		return u, nil
	}

	if err := latency.RunFromContext(ctx, "save_profile", func() { st.UpdateProfile(patch) }); err != nil {
		return model.User{}, fmt.Errorf("saving profile: %w", err)
	}

	saved, ok := st.CurrentUser()
	if !ok {
		// signed out while the save was pending
		return model.User{}, apperror.Unauthenticated("update your profile")
	}

	s.logger.Info("profile updated", slog.String("userID", saved.ID))
	return saved, nil
}
