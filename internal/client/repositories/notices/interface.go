package notices

import (
	"context"

	"noticeease/internal/client/models"
)

// Repository describes operations on the notices table, keyed by the
// server-assigned notice id.
type Repository interface {
	// Put upserts a notice by id.
	Put(ctx context.Context, n *models.Notice) error

	// Get returns a notice by id, or (nil, nil) when absent.
	Get(ctx context.Context, id string) (*models.Notice, error)

	// GetAll returns all cached notices in unspecified order.
	GetAll(ctx context.Context) ([]models.Notice, error)

	// Count returns the number of cached notices. The sync engine uses it
	// as the skip offset for the next remote page.
	Count(ctx context.Context) (int, error)

	// Clear removes every cached notice (logout only).
	Clear(ctx context.Context) error
}
