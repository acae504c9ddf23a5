// Package repository declares the persistence interfaces the service layer
// depends on. Services receive these interfaces, never the concrete SQLite
// types, so tests can substitute in-memory mocks and the storage engine can
// change without touching business logic.
package repository

import (
	"context"

	"github.com/linkhubhq/linkhub/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

type LinkRepository interface {
	Create(ctx context.Context, link *model.Link) error
	GetByID(ctx context.Context, id int64) (*model.Link, error)
	// ListByUser returns the user's links sorted by position ascending.
	ListByUser(ctx context.Context, userID string) ([]model.Link, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	Update(ctx context.Context, link *model.Link) error
	// Delete removes the link and renumbers the owner's remaining links so
	// positions stay a contiguous 0..n-1, all in one transaction.
	Delete(ctx context.Context, id int64) error
	// IncrementClicks bumps the click counter by one as a single relative
	// UPDATE, so concurrent clicks are never lost.
	IncrementClicks(ctx context.Context, id int64) error
	// Reorder assigns positions 0..n-1 following orderedIDs, atomically.
	Reorder(ctx context.Context, userID string, orderedIDs []int64) error
	SumClicksByUser(ctx context.Context, userID string) (int64, error)
}

type ThemeRepository interface {
	// GetByUser returns apperror.ErrNotFound if the user never saved a theme;
	// the default-theme fallback is the service's concern, not storage's.
	GetByUser(ctx context.Context, userID string) (*model.Theme, error)
	Upsert(ctx context.Context, theme *model.Theme) error
}

type PageViewRepository interface {
	Create(ctx context.Context, view *model.PageView) error
	CountByUser(ctx context.Context, userID string) (int64, error)
	// ListByUser returns views newest-first, at most limit rows.
	ListByUser(ctx context.Context, userID string, limit int) ([]model.PageView, error)
}

type ContactRepository interface {
	Create(ctx context.Context, submission *model.ContactSubmission) error
	// List returns submissions newest-first.
	List(ctx context.Context) ([]model.ContactSubmission, error)
}
