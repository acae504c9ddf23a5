package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/linkhubhq/linkhub/internal/apperror"
	"github.com/linkhubhq/linkhub/internal/model"
	"github.com/linkhubhq/linkhub/internal/repository"
)

// ThemeRepo persists themes. Obtain one from DB.Themes().
type ThemeRepo struct {
	conn *sql.DB
}

var _ repository.ThemeRepository = (*ThemeRepo)(nil)

// GetByUser returns the stored theme for a user, or apperror.ErrNotFound if
// they never saved one. The caller decides whether to fall back to the
// default; storage never fabricates a row.
func (r *ThemeRepo) GetByUser(ctx context.Context, userID string) (*model.Theme, error) {
	var t model.Theme
	err := r.conn.QueryRowContext(ctx,
		`SELECT user_id, background, button_style, text_color, accent_color, created_at, updated_at
		 FROM themes WHERE user_id = ?`,
		userID,
	).Scan(
		&t.UserID,
		&t.Background,
		&t.ButtonStyle,
		&t.TextColor,
		&t.AccentColor,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("theme", userID)
		}
		return nil, fmt.Errorf("sqlite: getting theme for user %s: %w", userID, err)
	}
	return &t, nil
}

// Upsert inserts the theme on first save and updates it afterwards, keyed on
// user_id. SQLite's ON CONFLICT DO UPDATE does both in one statement; the
// original created_at survives updates because only the update set touches
// the styling columns and updated_at.
func (r *ThemeRepo) Upsert(ctx context.Context, theme *model.Theme) error {
	now := time.Now().UTC()
	theme.UpdatedAt = now
	if theme.CreatedAt.IsZero() {
		theme.CreatedAt = now
	}

	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO themes (user_id, background, button_style, text_color, accent_color, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			background   = excluded.background,
			button_style = excluded.button_style,
			text_color   = excluded.text_color,
			accent_color = excluded.accent_color,
			updated_at   = excluded.updated_at`,
		theme.UserID,
		theme.Background,
		theme.ButtonStyle,
		theme.TextColor,
		theme.AccentColor,
		theme.CreatedAt,
		theme.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: upserting theme for user %s: %w", theme.UserID, err)
	}

	return nil
}
