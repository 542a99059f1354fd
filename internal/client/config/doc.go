// Package config loads runtime configuration for the NoticeEase CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-b string   base URL of the account backend
//	-s string   base URL of the notice scraper API
//	-p string   base URL of the push messaging provider
//	-k string   VAPID application key for token registration
//	-d string   data directory for database, cookie and token state
//	-t int      outbound request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "10s" or integer nanoseconds:
//
//	{
//	  "backend_base_url": "http://127.0.0.1:4000",
//	  "scraper_base_url": "http://127.0.0.1:5000",
//	  "provider_base_url": "http://127.0.0.1:7000",
//	  "vapid_public_key": "BI6v...",
//	  "data_dir": ".noticeease",
//	  "request_timeout": "10s"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
