// Package app is the composition root for roster.
//
// # Overview
//
// Run wires configuration, logging, the settings file, the API client, the
// connectivity poller and the UI, then blocks until the UI exits.
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.LoadEnv()    Optional .env
//	       ├─────> config.Load()       TOML config + environment
//	       ├─────> logging.OpenFile()  zerolog to the log file
//	       ├─────> prefs.Load()        Saved window/server settings
//	       ├─────> resolveEndpoint()   Flag > settings > config
//	       ├─────> StartPoller()       Background connectivity checks
//	       ├─────> ui.Run()            TUI (blocks)
//	       └─────> prefs.Save()        Persist final settings
//
// # Polling Behavior
//
// The poller probes the current endpoint once at start and then every poll
// interval (default 10 seconds). Results land in a state.Store that the
// UI reads on its own tick, so a slow probe never stalls input.
//
// Retarget switches the poller to a new endpoint and probes it at once. The
// endpoint travels by value over a channel; the poller goroutine is the only
// reader of its current endpoint. A pending retarget that has not been picked
// up yet is replaced by a newer one.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Invalid config file or .env
//   - Unknown schema or unparsable server address
//   - Log file that cannot be opened
//   - Bubble Tea program failure
//
// Recoverable errors (logged, polling continues):
//   - Probe failures and timeouts
//   - A settings file that cannot be read or saved
package app
