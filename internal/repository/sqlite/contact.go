package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/linkhubhq/linkhub/internal/model"
	"github.com/linkhubhq/linkhub/internal/repository"
)

// ContactRepo persists the contact-form inbox. Obtain one from
// DB.Contacts().
type ContactRepo struct {
	conn *sql.DB
}

var _ repository.ContactRepository = (*ContactRepo)(nil)

// Create appends one submission with status "new".
func (r *ContactRepo) Create(ctx context.Context, submission *model.ContactSubmission) error {
	submission.Status = model.ContactStatusNew
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now().UTC()
	}

	res, err := r.conn.ExecContext(ctx,
		`INSERT INTO contact_submissions (name, email, message, status, submitted_at)
		 VALUES (?, ?, ?, ?, ?)`,
		submission.Name,
		submission.Email,
		submission.Message,
		submission.Status,
		submission.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting contact submission from %q: %w", submission.Email, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new submission id: %w", err)
	}
	submission.ID = id

	return nil
}

// List returns every submission newest-first.
func (r *ContactRepo) List(ctx context.Context) ([]model.ContactSubmission, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, name, email, message, status, submitted_at
		 FROM contact_submissions
		 ORDER BY submitted_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing contact submissions: %w", err)
	}
	defer rows.Close()

	submissions := []model.ContactSubmission{}
	for rows.Next() {
		var s model.ContactSubmission
		if err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Email,
			&s.Message,
			&s.Status,
			&s.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning submission row: %w", err)
		}
		submissions = append(submissions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating submission rows: %w", err)
	}

	return submissions, nil
}
