// Package worker runs the NoticeEase background process: the offline
// asset gateway and the push event loop. It installs the precache on
// startup, handles graceful shutdown, and reconnects to the provider
// stream when it drops.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"noticeease/internal/filex"
	"noticeease/internal/logging"
	"noticeease/internal/push"
	"noticeease/internal/worker/assetcache"
	"noticeease/internal/worker/config"
	"noticeease/internal/worker/notifier"
)

// reconnectDelay paces retries of the provider event stream.
const reconnectDelay = 5 * time.Second

type App struct {
	config   *config.Config
	logger   logging.Logger
	gateway  *assetcache.Gateway
	handler  *notifier.Handler
	provider push.Provider
}

func NewApp(c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	dataDir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, err
	}

	manifest, err := assetcache.LoadManifest(c.ManifestPath)
	if err != nil {
		return nil, err
	}

	cache, err := assetcache.NewCache(filepath.Join(dataDir, "assets"))
	if err != nil {
		return nil, err
	}

	gateway := assetcache.NewGateway(c.AppBaseURL, cache, manifest, logger)
	provider := push.NewHTTPProvider(c.ProviderBaseURL, c.VAPIDPublicKey, dataDir, nil)

	var sender notifier.Sender
	if c.NotifyURL != "" {
		sender, err = notifier.NewShoutrrrSender(c.NotifyURL)
		if err != nil {
			return nil, err
		}
	} else {
		sender = logSender{logger: logger}
	}

	return &App{
		config:   c,
		logger:   logger,
		gateway:  gateway,
		handler:  notifier.NewHandler(sender, provider, logger),
		provider: provider,
	}, nil
}

// logSender is the fallback when no notification URL is configured.
type logSender struct {
	logger logging.Logger
}

func (s logSender) Send(title, body, link string) error {
	s.logger.Info(context.Background(), "notification", "title", title, "body", body, "link", link)
	return nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGateway(ctx context.Context, cancelFunc context.CancelFunc) {
	e := app.gateway.Echo()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	if err := e.Start(app.config.GatewayAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// startEventLoop consumes the provider stream, dispatching each event to
// the notifier. A dropped stream is reopened after reconnectDelay.
func (app *App) startEventLoop(ctx context.Context) {
	events := make(chan push.Event)

	go func() {
		for ev := range events {
			app.handler.HandleEvent(ctx, ev)
		}
	}()

	for {
		if err := app.provider.Listen(ctx, events); err != nil {
			app.logger.Warn(ctx, "provider stream dropped", "error", err)
		}

		select {
		case <-ctx.Done():
			close(events)
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting worker...")

	app.initSignalHandler(cancelFunc)

	if err := app.gateway.Install(ctx); err != nil {
		app.logger.Error(ctx, "precache install failed", "error", err)
		cancelFunc()
		return
	}
	if err := app.gateway.Activate(ctx); err != nil {
		app.logger.Error(ctx, "precache activation failed", "error", err)
		cancelFunc()
		return
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGateway(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startEventLoop(ctx)
	}()

	wg.Wait()
}
