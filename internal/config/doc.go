// Package config loads roster's startup configuration.
//
// # Overview
//
// Configuration comes from three layers, later layers winning:
//
//  1. Built-in defaults
//  2. The TOML file (~/.config/roster/config.toml unless a path is given)
//  3. Environment variables, optionally seeded from a .env file by LoadEnv
//
// Command-line flags are applied on top by the caller.
//
// # Default Values
//
//   - Server: 127.0.0.1:8000
//   - Schema: structured
//   - Poll interval: 10s
//   - Request timeout: 5s
//   - Log file: ~/.local/state/roster/roster.log
//   - Settings file: ~/.config/roster/settings.toml
//
// # TOML Format
//
//	server_url = "127.0.0.1:8000"
//	schema = "flat"
//	poll_interval_seconds = 10
//	request_timeout_seconds = 5
//	log_file = "~/.local/state/roster/roster.log"
//	log_level = "info"
//	settings_file = "~/.config/roster/settings.toml"
//
// Every field is optional. Blank strings and non-positive durations keep the
// default. Tilde expansion is performed for paths.
//
// # Environment
//
//   - ROSTER_SERVER_URL overrides server_url
//   - ROSTER_SCHEMA overrides schema
//   - ROSTER_LOG_LEVEL overrides log_level
//
// LoadEnv never replaces a variable that is already set, so the real
// environment beats .env.
//
// # Error Handling
//
// A missing config file is not an error. Load returns errors for path
// expansion failures, unreadable files and TOML parse errors.
package config
