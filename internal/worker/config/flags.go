package config

import (
	"flag"
	"os"

	"noticeease/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   app origin to proxy and cache
//	-p string   push provider base URL
//	-k string   VAPID application key
//	-d string   data directory
//	-g string   gateway listen address
//	-m string   precache manifest path
//	-n string   shoutrrr notification URL
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-p", "-k", "-d", "-g", "-m", "-n"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.AppBaseURL, "a", cfg.AppBaseURL, "app origin to proxy and cache")
	fs.StringVar(&cfg.ProviderBaseURL, "p", cfg.ProviderBaseURL, "base URL of the push messaging provider")
	fs.StringVar(&cfg.VAPIDPublicKey, "k", cfg.VAPIDPublicKey, "VAPID application key")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.GatewayAddr, "g", cfg.GatewayAddr, "gateway listen address")
	fs.StringVar(&cfg.ManifestPath, "m", cfg.ManifestPath, "precache manifest path")
	fs.StringVar(&cfg.NotifyURL, "n", cfg.NotifyURL, "shoutrrr notification URL")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
