package config

import (
	"flag"
	"os"
	"time"

	"noticeease/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   account backend base URL (default from Config)
//	-s string   scraper base URL (default from Config)
//	-p string   push provider base URL (default from Config)
//	-k string   VAPID application key (default from Config)
//	-d string   data directory (default from Config)
//	-t int      request timeout in seconds (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-s", "-p", "-k", "-d", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendBaseURL, "b", cfg.BackendBaseURL, "base URL of the account backend")
	fs.StringVar(&cfg.ScraperBaseURL, "s", cfg.ScraperBaseURL, "base URL of the notice scraper API")
	fs.StringVar(&cfg.ProviderBaseURL, "p", cfg.ProviderBaseURL, "base URL of the push messaging provider")
	fs.StringVar(&cfg.VAPIDPublicKey, "k", cfg.VAPIDPublicKey, "VAPID application key")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
