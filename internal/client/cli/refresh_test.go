package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"noticeease/internal/client/api"
	"noticeease/internal/client/models"
	"noticeease/internal/client/repositories/notices"
	"noticeease/internal/client/services"
	"noticeease/internal/client/store"
	"noticeease/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupNoticesApp(t *testing.T, scraperURL string) (*App, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.RunMigrations(context.Background(), db))

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	app := &App{
		logger:  logger,
		notices: services.NewNoticeService(db, api.NewClient(scraperURL, scraperURL), logger),
	}
	return app, db
}

func captureOutput(t *testing.T) *strings.Builder {
	t.Helper()
	var buf strings.Builder
	orig := printfFn
	printfFn = func(format string, a ...any) (int, error) {
		return fmt.Fprintf(&buf, format, a...)
	}
	t.Cleanup(func() { printfFn = orig })
	return &buf
}

func cachedNotice(id string, sno int64) *models.Notice {
	return &models.Notice{
		ID:         id,
		CustomSno:  sno,
		Type:       models.NoticeTypePlacement,
		Subject:    "Drive " + id,
		Company:    "Acme",
		Notice:     "body",
		NoticeTime: time.Now().UTC(),
	}
}

func TestRefresh_RendersLocalViewThenMergedView(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/notices/getErpNotices", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("skip"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"notices": []*models.Notice{cachedNotice("b", 2)},
		})
	}))
	defer srv.Close()

	a, db := setupNoticesApp(t, srv.URL)
	ctx := context.Background()
	require.NoError(t, notices.NewSQLiteRepository(db).Put(ctx, cachedNotice("a", 1)))

	buf := captureOutput(t)
	require.NoError(t, a.Refresh(ctx))

	out := buf.String()
	// cached view is rendered before the fetch, merged view after it
	assert.Equal(t, 2, strings.Count(out, "notices, "))
	assert.Contains(t, out, "1 notices, 1 unread")
	assert.Contains(t, out, "1 new notices")
	assert.Contains(t, out, "2 notices, 2 unread")
	assert.Contains(t, out, "Drive b")
}

func TestRefresh_FetchFailureKeepsLocalRender(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	a, db := setupNoticesApp(t, srv.URL)
	ctx := context.Background()
	require.NoError(t, notices.NewSQLiteRepository(db).Put(ctx, cachedNotice("a", 1)))

	buf := captureOutput(t)
	require.Error(t, a.Refresh(ctx))

	out := buf.String()
	// the local view was shown exactly once and no merge summary printed
	assert.Equal(t, 1, strings.Count(out, "notices, "))
	assert.Contains(t, out, "1 notices, 1 unread")
	assert.NotContains(t, out, "new notices")
}

func TestRefresh_NoNewNoticesSkipsSecondRender(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"notices": []*models.Notice{}})
	}))
	defer srv.Close()

	a, db := setupNoticesApp(t, srv.URL)
	ctx := context.Background()
	require.NoError(t, notices.NewSQLiteRepository(db).Put(ctx, cachedNotice("a", 1)))

	buf := captureOutput(t)
	require.NoError(t, a.Refresh(ctx))

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "notices, "))
	assert.Contains(t, out, "0 new notices")
}
