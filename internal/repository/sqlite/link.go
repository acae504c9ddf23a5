package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/linkhubhq/linkhub/internal/apperror"
	"github.com/linkhubhq/linkhub/internal/model"
	"github.com/linkhubhq/linkhub/internal/repository"
)

// LinkRepo persists links. Obtain one from DB.Links().
type LinkRepo struct {
	conn *sql.DB
}

var _ repository.LinkRepository = (*LinkRepo)(nil)

const linkColumns = `id, user_id, title, url, position, visible, clicks, created_at, updated_at`

// Create inserts a new link. The ID comes from the table's AUTOINCREMENT
// counter, so ids are strictly increasing across all users and never reused.
func (r *LinkRepo) Create(ctx context.Context, link *model.Link) error {
	now := time.Now().UTC()
	link.CreatedAt = now
	link.UpdatedAt = now

	res, err := r.conn.ExecContext(ctx,
		`INSERT INTO links (user_id, title, url, position, visible, clicks, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		link.UserID,
		link.Title,
		link.URL,
		link.Position,
		link.Visible,
		link.Clicks,
		link.CreatedAt,
		link.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting link for user %s: %w", link.UserID, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new link id: %w", err)
	}
	link.ID = id

	return nil
}

// GetByID retrieves a link by ID.
// Returns apperror.ErrNotFound if no link exists with that ID.
func (r *LinkRepo) GetByID(ctx context.Context, id int64) (*model.Link, error) {
	var l model.Link
	err := r.conn.QueryRowContext(ctx,
		`SELECT `+linkColumns+` FROM links WHERE id = ?`, id,
	).Scan(
		&l.ID,
		&l.UserID,
		&l.Title,
		&l.URL,
		&l.Position,
		&l.Visible,
		&l.Clicks,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("link", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlite: getting link %d: %w", id, err)
	}
	return &l, nil
}

// ListByUser returns all of a user's links sorted by position ascending.
// Ties break on id so the order is stable even if positions ever collide.
func (r *LinkRepo) ListByUser(ctx context.Context, userID string) ([]model.Link, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT `+linkColumns+` FROM links WHERE user_id = ? ORDER BY position, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing links for user %s: %w", userID, err)
	}
	defer rows.Close()

	links := []model.Link{}
	for rows.Next() {
		var l model.Link
		if err := rows.Scan(
			&l.ID,
			&l.UserID,
			&l.Title,
			&l.URL,
			&l.Position,
			&l.Visible,
			&l.Clicks,
			&l.CreatedAt,
			&l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning link row: %w", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating link rows: %w", err)
	}

	return links, nil
}

func (r *LinkRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM links WHERE user_id = ?`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting links for user %s: %w", userID, err)
	}
	return count, nil
}

// Update writes the mutable fields back and stamps updated_at.
func (r *LinkRepo) Update(ctx context.Context, link *model.Link) error {
	link.UpdatedAt = time.Now().UTC()

	res, err := r.conn.ExecContext(ctx,
		`UPDATE links
		 SET title = ?, url = ?, position = ?, visible = ?, updated_at = ?
		 WHERE id = ?`,
		link.Title,
		link.URL,
		link.Position,
		link.Visible,
		link.UpdatedAt,
		link.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating link %d: %w", link.ID, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: updating link %d: %w", link.ID, err)
	}
	if rows == 0 {
		return apperror.NotFound("link", strconv.FormatInt(link.ID, 10))
	}

	return nil
}

// Delete removes a link and renumbers the owner's remaining links to keep
// positions a contiguous 0..n-1. Both steps run in one transaction, so a
// reader never observes a gap in the sequence.
func (r *LinkRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning delete transaction: %w", err)
	}
	defer tx.Rollback() // no-op after Commit

	var userID string
	err = tx.QueryRowContext(ctx,
		`SELECT user_id FROM links WHERE id = ?`, id,
	).Scan(&userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperror.NotFound("link", strconv.FormatInt(id, 10))
		}
		return fmt.Errorf("sqlite: looking up link %d: %w", id, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM links WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting link %d: %w", id, err)
	}

	if err := renumberPositions(ctx, tx, userID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing delete of link %d: %w", id, err)
	}
	return nil
}

// IncrementClicks bumps the click counter with a relative UPDATE. Doing the
// arithmetic in SQL (not read-modify-write in Go) means two concurrent
// clicks both land.
func (r *LinkRepo) IncrementClicks(ctx context.Context, id int64) error {
	res, err := r.conn.ExecContext(ctx,
		`UPDATE links SET clicks = clicks + 1 WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: incrementing clicks for link %d: %w", id, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: incrementing clicks for link %d: %w", id, err)
	}
	if rows == 0 {
		return apperror.NotFound("link", strconv.FormatInt(id, 10))
	}

	return nil
}

// Reorder assigns positions 0..n-1 following orderedIDs, in one transaction.
// Either every link gets its new position or none do; there is no state
// where half the page is renumbered.
func (r *LinkRepo) Reorder(ctx context.Context, userID string, orderedIDs []int64) error {
	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning reorder transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for pos, id := range orderedIDs {
		res, err := tx.ExecContext(ctx,
			`UPDATE links SET position = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
			pos, now, id, userID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: reordering link %d: %w", id, err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("sqlite: reordering link %d: %w", id, err)
		}
		// Zero rows means the id doesn't exist or belongs to someone else;
		// the rollback undoes any positions already written.
		if rows == 0 {
			return apperror.NotFound("link", strconv.FormatInt(id, 10))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing reorder for user %s: %w", userID, err)
	}
	return nil
}

// SumClicksByUser totals clicks across the user's current links.
func (r *LinkRepo) SumClicksByUser(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.conn.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(clicks), 0) FROM links WHERE user_id = ?`, userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sqlite: summing clicks for user %s: %w", userID, err)
	}
	return total, nil
}

// renumberPositions rewrites a user's link positions to 0..n-1 preserving
// the current order. Runs inside the caller's transaction.
func renumberPositions(ctx context.Context, tx *sql.Tx, userID string) error {
	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM links WHERE user_id = ? ORDER BY position, id`, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: listing links to renumber: %w", err)
	}

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("sqlite: scanning link id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("sqlite: iterating link ids: %w", err)
	}
	rows.Close()

	for pos, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`UPDATE links SET position = ? WHERE id = ?`, pos, id,
		); err != nil {
			return fmt.Errorf("sqlite: renumbering link %d: %w", id, err)
		}
	}

	return nil
}
