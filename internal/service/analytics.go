package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/linkhubhq/linkhub/internal/model"
	"github.com/linkhubhq/linkhub/internal/repository"
)

// History pagination limits.
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

// AnalyticsService owns the page-view log and the derived per-user summary.
// It reads from both the view log and the link collection: total clicks are
// recomputed from the links that currently exist, so deleting a link also
// removes its clicks from the summary.
type AnalyticsService struct {
	users  repository.UserRepository
	links  repository.LinkRepository
	views  repository.PageViewRepository
	logger *slog.Logger
}

func NewAnalyticsService(
	users repository.UserRepository,
	links repository.LinkRepository,
	views repository.PageViewRepository,
	logger *slog.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		users:  users,
		links:  links,
		views:  views,
		logger: logger,
	}
}

// TrackView records one public profile load for the given username.
// Returns apperror.ErrNotFound if the username doesn't resolve to a user.
func (s *AnalyticsService) TrackView(ctx context.Context, username, userAgent, referrer string) (*model.PageView, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	view := &model.PageView{
		UserID:    user.ID,
		Username:  user.Username,
		UserAgent: userAgent,
		Referrer:  referrer,
	}
	if err := s.views.Create(ctx, view); err != nil {
		s.logger.Error("failed to record page view",
			slog.String("userID", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("recording page view: %w", err)
	}

	return view, nil
}

// Summary computes the user's aggregate on demand. Nothing is persisted;
// LastUpdated is simply the moment of computation.
func (s *AnalyticsService) Summary(ctx context.Context, userID string) (*model.Analytics, error) {
	totalViews, err := s.views.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("counting views: %w", err)
	}

	totalClicks, err := s.links.SumClicksByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("summing clicks: %w", err)
	}

	return &model.Analytics{
		UserID:      userID,
		TotalViews:  totalViews,
		TotalClicks: totalClicks,
		LastUpdated: time.Now().UTC(),
	}, nil
}

// History returns the user's page views newest-first. The limit is clamped
// to 1..MaxHistoryLimit, defaulting to DefaultHistoryLimit.
func (s *AnalyticsService) History(ctx context.Context, userID string, limit int) ([]model.PageView, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	views, err := s.views.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing view history: %w", err)
	}
	return views, nil
}
