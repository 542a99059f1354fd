package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"noticeease/internal/client/api"
	"noticeease/internal/client/config"
	"noticeease/internal/client/models"
	"noticeease/internal/client/services"
	"noticeease/internal/client/session"
	"noticeease/internal/client/store"
	"noticeease/internal/filex"
	"noticeease/internal/logging"
	"noticeease/internal/push"

	_ "modernc.org/sqlite"
)

// App wires the services behind the REPL and holds per-session view
// state (the active notice filter).
type App struct {
	config  *config.Config
	logger  logging.Logger
	session *services.SessionManager
	notices *services.NoticeService
	filter  models.Filter
	reader  *bufio.Reader
	out     *os.File
}

// NewApp builds the full client: data directory, local database with
// migrations applied, cookie store, API client, push provider and the
// services on top of them.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	dataDir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, err
	}

	db, err := store.InitDatabase(ctx, filepath.Join(dataDir, "noticeease.db"))
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient := api.NewClient(c.BackendBaseURL, c.ScraperBaseURL)
	apiClient.SetTimeout(c.RequestTimeout)

	cookies := session.NewCookieStore(filepath.Join(dataDir, "cookie.json"))
	reader := bufio.NewReader(os.Stdin)

	provider := push.NewHTTPProvider(c.ProviderBaseURL, c.VAPIDPublicKey, dataDir, func() (bool, error) {
		answer, err := GetSimpleText(reader, "Enable notifications? (y/n)", os.Stdout)
		if err != nil {
			return false, err
		}
		return answer == "y" || answer == "yes", nil
	})

	pushService := services.NewPushService(apiClient, provider, logger)

	return &App{
		config:  c,
		logger:  logger,
		session: services.NewSessionManager(db, cookies, apiClient, pushService, logger),
		notices: services.NewNoticeService(db, apiClient, logger),
		reader:  reader,
		out:     os.Stdout,
	}, nil
}

// Run restores any persisted session and enters the REPL. It returns
// when the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	a.session.RestoreSession(ctx)
	if a.session.IsAuthenticated() {
		if info := a.session.StudentInfo(); info != nil {
			fmt.Fprintf(a.out, "Welcome back, %s\n", info.Username)
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// status is rendered inside the REPL prompt.
func (a *App) status() string {
	if !a.isLoggedIn() {
		return ""
	}
	s := ""
	if info := a.session.StudentInfo(); info != nil {
		s = info.Username
	}
	if !a.filter.IsZero() {
		s += " [filtered]"
	}
	return s
}
