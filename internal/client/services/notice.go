package services

import (
	"context"
	"database/sql"
	"sort"

	"noticeease/internal/client/api"
	"noticeease/internal/client/models"
	"noticeease/internal/client/repositories/notices"
	"noticeease/internal/dbx"
	"noticeease/internal/logging"
)

// NoticeService is the sync engine between the remote notice API and the
// Local Store: incremental fetch, insert-only merge, sorted read view.
type NoticeService struct {
	db     *sql.DB
	api    *api.Client
	logger logging.Logger
}

// NewNoticeService constructs a NoticeService over the Local Store db.
func NewNoticeService(db *sql.DB, apiClient *api.Client, logger logging.Logger) *NoticeService {
	return &NoticeService{db: db, api: apiClient, logger: logger}
}

func (s *NoticeService) repo() notices.Repository {
	return notices.NewSQLiteRepository(s.db)
}

// FetchRemote requests the next page of notices, skipping as many entries
// as are already cached locally.
func (s *NoticeService) FetchRemote(ctx context.Context) ([]models.Notice, error) {
	count, err := s.repo().Count(ctx)
	if err != nil {
		return nil, err
	}
	return s.api.FetchNotices(ctx, count)
}

// MergeIntoStore applies a fetched page to the Local Store. The page is
// walked in reverse so the oldest notice of the batch lands first; a
// notice whose id is already cached is left untouched (insert-only,
// first-write-wins), new ones are inserted unread. The whole batch
// commits in a single transaction.
func (s *NoticeService) MergeIntoStore(ctx context.Context, batch []models.Notice) error {
	if len(batch) == 0 {
		return nil
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := notices.NewSQLiteRepository(tx)
		for i := len(batch) - 1; i >= 0; i-- {
			n := batch[i]
			existing, err := repo.Get(ctx, n.ID)
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}
			n.IsRead = false
			if err := repo.Put(ctx, &n); err != nil {
				return err
			}
		}
		return nil
	})
}

// Sync is the fetch-then-merge step of the refresh protocol.
func (s *NoticeService) Sync(ctx context.Context) error {
	batch, err := s.FetchRemote(ctx)
	if err != nil {
		return err
	}
	return s.MergeIntoStore(ctx, batch)
}

// LoadView reads all cached notices sorted ascending by customSno. The
// display layer reverses this into a newest-first list.
func (s *NoticeService) LoadView(ctx context.Context) ([]models.Notice, error) {
	all, err := s.repo().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CustomSno < all[j].CustomSno })
	return all, nil
}

// Get returns a cached notice by id, or (nil, nil) when absent.
func (s *NoticeService) Get(ctx context.Context, id string) (*models.Notice, error) {
	return s.repo().Get(ctx, id)
}

// MarkRead flags a cached notice as read. Unknown ids are a no-op.
func (s *NoticeService) MarkRead(ctx context.Context, id string) error {
	repo := s.repo()
	n, err := repo.Get(ctx, id)
	if err != nil || n == nil {
		return err
	}
	n.IsRead = true
	return repo.Put(ctx, n)
}

// ApplyFilter keeps the notices matching the single-select filter groups.
// Pure function; the input order is preserved.
func ApplyFilter(list []models.Notice, f models.Filter) []models.Notice {
	if f.IsZero() {
		return list
	}
	result := make([]models.Notice, 0, len(list))
	for _, n := range list {
		if f.Matches(n) {
			result = append(result, n)
		}
	}
	return result
}
