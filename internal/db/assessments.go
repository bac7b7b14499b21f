package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Page size bounds for ListAssessments
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// SaveAssessment stores a, assigning an id when a.ID is zero
func (db *DB) SaveAssessment(ctx context.Context, a *Assessment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	query := `
		INSERT INTO assessments (id, user_id, kind, input, result, severity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := db.QueryRowContext(ctx, query,
		a.ID, a.UserID, a.Kind, []byte(a.Input), []byte(a.Result), a.Severity,
	).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}
	return nil
}

// ListAssessments returns a user's most recent assessments, newest first.
// An empty kind lists every kind.
func (db *DB) ListAssessments(ctx context.Context, userID, kind string, limit int) ([]Assessment, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	query := `
		SELECT id, user_id, kind, input, result, severity, created_at
		FROM assessments
		WHERE user_id = $1 AND ($2::text = '' OR kind = $2)
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := db.QueryContext(ctx, query, userID, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	out := make([]Assessment, 0, limit)
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assessments: %w", err)
	}

	return out, nil
}

// GetAssessment returns one assessment owned by userID
func (db *DB) GetAssessment(ctx context.Context, id uuid.UUID, userID string) (*Assessment, error) {
	query := `
		SELECT id, user_id, kind, input, result, severity, created_at
		FROM assessments
		WHERE id = $1 AND user_id = $2
	`

	a, err := scanAssessment(db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return a, nil
}

// DeleteAssessment removes one assessment owned by userID
func (db *DB) DeleteAssessment(ctx context.Context, id uuid.UUID, userID string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM assessments WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row rowScanner) (*Assessment, error) {
	var (
		a             Assessment
		input, result []byte
		severity      sql.NullString
	)
	if err := row.Scan(&a.ID, &a.UserID, &a.Kind, &input, &result, &severity, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Input = input
	a.Result = result
	a.Severity = severity.String
	return &a, nil
}
