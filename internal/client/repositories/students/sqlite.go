// Package students persists the logged-in student's profile in the
// Local Store.
package students

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"noticeease/internal/client/models"
	"noticeease/internal/dbx"
)

// singletonKey is the fixed key of the one-and-only student_info row.
const singletonKey = "student"

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Put upserts the singleton row. Each call commits on its own.
func (r *SQLiteRepository) Put(ctx context.Context, info *models.StudentInfo) error {
	query := `INSERT INTO student_info (key, roll_number, email, phone_number, username, verified)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET roll_number = excluded.roll_number,
				email = excluded.email,
				phone_number = excluded.phone_number,
				username = excluded.username,
				verified = excluded.verified
	`
	_, err := r.db.ExecContext(ctx, query,
		singletonKey, info.RollNumber, info.Email, info.PhoneNumber, info.Username, info.Verified)
	if err != nil {
		return fmt.Errorf("failed to upsert student info: %w", err)
	}
	return nil
}

// Get returns the stored profile, or (nil, nil) when no session data exists.
func (r *SQLiteRepository) Get(ctx context.Context) (*models.StudentInfo, error) {
	query := `SELECT roll_number, email, phone_number, username, verified FROM student_info WHERE key = ?`
	row := r.db.QueryRowContext(ctx, query, singletonKey)

	info := &models.StudentInfo{}
	err := row.Scan(&info.RollNumber, &info.Email, &info.PhoneNumber, &info.Username, &info.Verified)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student info: %w", err)
	}
	return info, nil
}

// Delete removes the singleton row.
func (r *SQLiteRepository) Delete(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM student_info WHERE key = ?`, singletonKey)
	if err != nil {
		return fmt.Errorf("failed to delete student info: %w", err)
	}
	return nil
}
