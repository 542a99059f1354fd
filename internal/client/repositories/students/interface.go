package students

import (
	"context"

	"noticeease/internal/client/models"
)

// Repository describes operations on the student_info table. The table
// holds at most one row, keyed by a fixed singleton key.
type Repository interface {
	// Put upserts the singleton StudentInfo row.
	Put(ctx context.Context, info *models.StudentInfo) error

	// Get returns the stored StudentInfo, or (nil, nil) when absent.
	Get(ctx context.Context) (*models.StudentInfo, error)

	// Delete removes the singleton row. Deleting an absent row is a no-op.
	Delete(ctx context.Context) error
}
