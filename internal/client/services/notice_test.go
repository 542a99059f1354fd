package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"noticeease/internal/client/api"
	"noticeease/internal/client/models"
	"noticeease/internal/client/repositories/notices"
	"noticeease/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleNotice(id string, sno int64) *models.Notice {
	return &models.Notice{
		ID:         id,
		CustomSno:  sno,
		Type:       models.NoticeTypePlacement,
		Subject:    "Job Opening",
		Company:    "Acme Corp",
		Notice:     "Acme Corp is hiring.",
		NoticeTime: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestMergeIntoStore_InsertsNewUnread(t *testing.T) {
	db := setupDB(t)
	svc := NewNoticeService(db, nil, testLogger())
	ctx := context.Background()

	batch := []models.Notice{*sampleNotice("b", 2), *sampleNotice("a", 1)}
	batch[0].IsRead = true // remote payloads never carry read state, but it must be ignored either way

	require.NoError(t, svc.MergeIntoStore(ctx, batch))

	got, err := svc.Get(ctx, "b")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsRead)

	count, err := notices.NewSQLiteRepository(db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMergeIntoStore_Idempotent(t *testing.T) {
	db := setupDB(t)
	svc := NewNoticeService(db, nil, testLogger())
	ctx := context.Background()

	batch := []models.Notice{*sampleNotice("b", 2), *sampleNotice("a", 1)}
	require.NoError(t, svc.MergeIntoStore(ctx, batch))
	first, err := svc.LoadView(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.MergeIntoStore(ctx, batch))
	second, err := svc.LoadView(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMergeIntoStore_KeepsExistingRecord(t *testing.T) {
	db := setupDB(t)
	svc := NewNoticeService(db, nil, testLogger())
	ctx := context.Background()

	local := sampleNotice("a", 5)
	local.Subject = "Original Subject"
	local.IsRead = true
	require.NoError(t, notices.NewSQLiteRepository(db).Put(ctx, local))

	remote := *sampleNotice("a", 5)
	remote.Subject = "Rewritten Subject"
	require.NoError(t, svc.MergeIntoStore(ctx, []models.Notice{remote}))

	got, err := svc.Get(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Original Subject", got.Subject)
	assert.True(t, got.IsRead)
}

func TestMergeIntoStore_EmptyBatch(t *testing.T) {
	db := setupDB(t)
	svc := NewNoticeService(db, nil, testLogger())

	require.NoError(t, svc.MergeIntoStore(context.Background(), nil))
}

func TestLoadView_SortedAscendingBySno(t *testing.T) {
	db := setupDB(t)
	svc := NewNoticeService(db, nil, testLogger())
	ctx := context.Background()

	repo := notices.NewSQLiteRepository(db)
	for _, sno := range []int64{3, 1, 2} {
		require.NoError(t, repo.Put(ctx, sampleNotice(string(rune('a'+sno)), sno)))
	}

	view, err := svc.LoadView(ctx)
	require.NoError(t, err)
	require.Len(t, view, 3)

	var snos []int64
	for _, n := range view {
		snos = append(snos, n.CustomSno)
	}
	assert.Equal(t, []int64{1, 2, 3}, snos)
}

func TestMarkRead(t *testing.T) {
	db := setupDB(t)
	svc := NewNoticeService(db, nil, testLogger())
	ctx := context.Background()

	require.NoError(t, notices.NewSQLiteRepository(db).Put(ctx, sampleNotice("a", 1)))

	require.NoError(t, svc.MarkRead(ctx, "a"))
	got, err := svc.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, got.IsRead)

	// unknown id is a no-op
	require.NoError(t, svc.MarkRead(ctx, "missing"))
}

func TestSync_SkipsCachedCount(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.NoError(t, notices.NewSQLiteRepository(db).Put(ctx, sampleNotice("a", 1)))
	require.NoError(t, notices.NewSQLiteRepository(db).Put(ctx, sampleNotice("b", 2)))

	var gotSkip string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSkip = r.URL.Query().Get("skip")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"notices": []*models.Notice{sampleNotice("c", 3)},
		})
	}))
	defer srv.Close()

	svc := NewNoticeService(db, api.NewClient(srv.URL, srv.URL), testLogger())
	require.NoError(t, svc.Sync(ctx))

	assert.Equal(t, "2", gotSkip)

	count, err := notices.NewSQLiteRepository(db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSync_FetchFailureLeavesStoreIntact(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.NoError(t, notices.NewSQLiteRepository(db).Put(ctx, sampleNotice("a", 1)))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"scraper down"}`, http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := NewNoticeService(db, api.NewClient(srv.URL, srv.URL), testLogger())
	err := svc.Sync(ctx)
	assert.ErrorIs(t, err, common.ErrNetwork)

	count, err := notices.NewSQLiteRepository(db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestApplyFilter(t *testing.T) {
	internship := *sampleNotice("a", 1)
	internship.Type = models.NoticeTypeInternship
	internship.Subject = "Summer Internship"

	placement := *sampleNotice("b", 2)
	placement.Subject = "Full Time Offer"

	list := []models.Notice{internship, placement}

	typeInternship := models.NoticeTypeInternship
	subjectOffer := "Full Time Offer"

	tests := []struct {
		name   string
		filter models.Filter
		want   []string
	}{
		{"zero filter keeps all", models.Filter{}, []string{"a", "b"}},
		{"by type", models.Filter{Type: &typeInternship}, []string{"a"}},
		{"by subject", models.Filter{Subject: &subjectOffer}, []string{"b"}},
		{"no match", models.Filter{Type: &typeInternship, Subject: &subjectOffer}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilter(list, tt.filter)
			ids := make([]string, 0, len(got))
			for _, n := range got {
				ids = append(ids, n.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
