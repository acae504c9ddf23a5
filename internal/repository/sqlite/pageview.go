package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/linkhubhq/linkhub/internal/model"
	"github.com/linkhubhq/linkhub/internal/repository"
)

// PageViewRepo persists the append-only page-view log. Obtain one from
// DB.PageViews().
type PageViewRepo struct {
	conn *sql.DB
}

var _ repository.PageViewRepository = (*PageViewRepo)(nil)

// Create appends one page view. Views are never updated or deleted.
func (r *PageViewRepo) Create(ctx context.Context, view *model.PageView) error {
	if view.Timestamp.IsZero() {
		view.Timestamp = time.Now().UTC()
	}

	res, err := r.conn.ExecContext(ctx,
		`INSERT INTO page_views (user_id, username, timestamp, user_agent, referrer)
		 VALUES (?, ?, ?, ?, ?)`,
		view.UserID,
		view.Username,
		view.Timestamp,
		view.UserAgent,
		view.Referrer,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting page view for user %s: %w", view.UserID, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new page view id: %w", err)
	}
	view.ID = id

	return nil
}

// CountByUser counts a user's total page views. COUNT in SQL rather than
// loading the log; the log only ever grows.
func (r *PageViewRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM page_views WHERE user_id = ?`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting page views for user %s: %w", userID, err)
	}
	return count, nil
}

// ListByUser returns a user's views newest-first, at most limit rows.
func (r *PageViewRepo) ListByUser(ctx context.Context, userID string, limit int) ([]model.PageView, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, user_id, username, timestamp, user_agent, referrer
		 FROM page_views WHERE user_id = ?
		 ORDER BY timestamp DESC, id DESC
		 LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing page views for user %s: %w", userID, err)
	}
	defer rows.Close()

	views := []model.PageView{}
	for rows.Next() {
		var v model.PageView
		if err := rows.Scan(
			&v.ID,
			&v.UserID,
			&v.Username,
			&v.Timestamp,
			&v.UserAgent,
			&v.Referrer,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning page view row: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating page view rows: %w", err)
	}

	return views, nil
}
