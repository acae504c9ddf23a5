package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/linkhubhq/linkhub/internal/apperror"
	"github.com/linkhubhq/linkhub/internal/model"
	"github.com/linkhubhq/linkhub/internal/repository"
)

// LinkService owns a user's link collection: CRUD, visibility, ordering and
// click counting.
type LinkService struct {
	links  repository.LinkRepository
	logger *slog.Logger
}

func NewLinkService(links repository.LinkRepository, logger *slog.Logger) *LinkService {
	return &LinkService{links: links, logger: logger}
}

// List returns all of the owner's links, position order.
func (s *LinkService) List(ctx context.Context, userID string) ([]model.Link, error) {
	links, err := s.links.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list links",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing links: %w", err)
	}
	return links, nil
}

// ListVisible returns only the links shown on the public page, position
// order. Hidden links never leave the server on the public path.
func (s *LinkService) ListVisible(ctx context.Context, userID string) ([]model.Link, error) {
	links, err := s.links.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing links: %w", err)
	}

	visible := links[:0]
	for _, l := range links {
		if l.Visible {
			visible = append(visible, l)
		}
	}
	return visible, nil
}

// Create appends a new link at the end of the user's page: position is the
// current link count, visible, zero clicks.
func (s *LinkService) Create(ctx context.Context, userID, title, url string) (*model.Link, error) {
	title = strings.TrimSpace(title)
	url = strings.TrimSpace(url)

	if title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if len(title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
	}
	if err := validateLinkURL(url); err != nil {
		return nil, err
	}

	count, err := s.links.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("counting links: %w", err)
	}

	link := &model.Link{
		UserID:   userID,
		Title:    title,
		URL:      url,
		Position: count,
		Visible:  true,
	}
	if err := s.links.Create(ctx, link); err != nil {
		s.logger.Error("failed to create link",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating link: %w", err)
	}

	s.logger.Info("link created",
		slog.Int64("linkID", link.ID),
		slog.String("userID", userID),
	)

	return link, nil
}

// LinkUpdate carries the editable link fields; nil leaves a field alone.
type LinkUpdate struct {
	Title   *string
	URL     *string
	Visible *bool
}

// Update merges the patch into the link. Only the owner may update.
func (s *LinkService) Update(ctx context.Context, userID string, id int64, patch LinkUpdate) (*model.Link, error) {
	link, err := s.links.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if link.UserID != userID {
		return nil, apperror.Forbidden("link belongs to another user")
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, apperror.ValidationFailed("title", "title is required")
		}
		if len(title) > MaxTitleLength {
			return nil, apperror.ValidationFailed("title",
				fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
		}
		link.Title = title
	}
	if patch.URL != nil {
		url := strings.TrimSpace(*patch.URL)
		if err := validateLinkURL(url); err != nil {
			return nil, err
		}
		link.URL = url
	}
	if patch.Visible != nil {
		link.Visible = *patch.Visible
	}

	if err := s.links.Update(ctx, link); err != nil {
		s.logger.Error("failed to update link",
			slog.Int64("linkID", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating link %d: %w", id, err)
	}

	return link, nil
}

// Delete removes a link (owner only). The repository renumbers the
// remaining links so positions stay contiguous.
func (s *LinkService) Delete(ctx context.Context, userID string, id int64) error {
	link, err := s.links.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if link.UserID != userID {
		return apperror.Forbidden("link belongs to another user")
	}

	if err := s.links.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("link deleted",
		slog.Int64("linkID", id),
		slog.String("userID", userID),
	)
	return nil
}

// Reorder applies a drag-and-drop result: orderedIDs is the user's complete
// link set in its new display order. The whole renumbering is one atomic
// batch: either every link gets its new position or none do.
//
// The list must be an exact permutation of the user's links; anything
// missing, extra, or duplicated is rejected before touching storage.
func (s *LinkService) Reorder(ctx context.Context, userID string, orderedIDs []int64) ([]model.Link, error) {
	current, err := s.links.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing links: %w", err)
	}

	if len(orderedIDs) != len(current) {
		return nil, apperror.ValidationFailed("links",
			fmt.Sprintf("expected %d link ids, got %d", len(current), len(orderedIDs)))
	}
	owned := make(map[int64]bool, len(current))
	for _, l := range current {
		owned[l.ID] = true
	}
	for _, id := range orderedIDs {
		if !owned[id] {
			return nil, apperror.ValidationFailed("links",
				fmt.Sprintf("link %d is not part of your link set", id))
		}
		delete(owned, id) // catches duplicates: second occurrence fails the lookup
	}

	if err := s.links.Reorder(ctx, userID, orderedIDs); err != nil {
		s.logger.Error("failed to reorder links",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("reordering links: %w", err)
	}

	s.logger.Info("links reordered",
		slog.String("userID", userID),
		slog.Int("count", len(orderedIDs)),
	)

	return s.links.ListByUser(ctx, userID)
}

// IncrementClicks counts one public click-through. No ownership check; the
// visitor clicking the link is anonymous.
func (s *LinkService) IncrementClicks(ctx context.Context, id int64) error {
	return s.links.IncrementClicks(ctx, id)
}
