package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linkhubhq/linkhub/internal/apperror"
	"github.com/linkhubhq/linkhub/internal/model"
	"github.com/linkhubhq/linkhub/internal/repository"
)

// ThemeService owns page styling: one theme per user, lazily defaulted.
type ThemeService struct {
	themes repository.ThemeRepository
	logger *slog.Logger
}

func NewThemeService(themes repository.ThemeRepository, logger *slog.Logger) *ThemeService {
	return &ThemeService{themes: themes, logger: logger}
}

// Get returns the user's saved theme, or the default tagged with their ID.
// The default is never written: a user who only ever reads their theme has
// no theme row, and Get returns the identical default on every call.
func (s *ThemeService) Get(ctx context.Context, userID string) (*model.Theme, error) {
	theme, err := s.themes.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return model.DefaultTheme(userID), nil
		}
		return nil, fmt.Errorf("fetching theme for user %s: %w", userID, err)
	}
	return theme, nil
}

// ThemeUpdate carries the editable styling fields; nil leaves a field at
// its current (or default) value.
type ThemeUpdate struct {
	Background  *string
	ButtonStyle *string
	TextColor   *string
	AccentColor *string
}

// Update upserts the user's theme. The merge starts from the stored theme
// if one exists, otherwise from the default, so a first-time save of just
// the accent color still produces a complete theme row.
func (s *ThemeService) Update(ctx context.Context, userID string, patch ThemeUpdate) (*model.Theme, error) {
	theme, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Background != nil {
		if *patch.Background == "" {
			return nil, apperror.ValidationFailed("background", "background is required")
		}
		theme.Background = *patch.Background
	}
	if patch.ButtonStyle != nil {
		switch *patch.ButtonStyle {
		case model.ButtonRounded, model.ButtonSquare, model.ButtonPill:
			theme.ButtonStyle = *patch.ButtonStyle
		default:
			return nil, apperror.ValidationFailed("buttonStyle",
				"buttonStyle must be one of rounded, square, pill")
		}
	}
	if patch.TextColor != nil {
		if *patch.TextColor == "" {
			return nil, apperror.ValidationFailed("textColor", "textColor is required")
		}
		theme.TextColor = *patch.TextColor
	}
	if patch.AccentColor != nil {
		if *patch.AccentColor == "" {
			return nil, apperror.ValidationFailed("accentColor", "accentColor is required")
		}
		theme.AccentColor = *patch.AccentColor
	}

	if err := s.themes.Upsert(ctx, theme); err != nil {
		s.logger.Error("failed to save theme",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("saving theme for user %s: %w", userID, err)
	}

	s.logger.Info("theme saved", slog.String("userID", userID))

	return theme, nil
}
