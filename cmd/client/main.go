package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"

	"noticeease/internal/buildinfo"
	"noticeease/internal/client/cli"
	"noticeease/internal/client/config"
	"noticeease/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	// keep the REPL clean; structured logs are opt-in via NOTICEEASE_DEBUG
	logOut := io.Discard
	if os.Getenv("NOTICEEASE_DEBUG") != "" {
		logOut = os.Stderr
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(logOut, nil)))

	app, err := cli.NewApp(ctx, cfg, logger)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
