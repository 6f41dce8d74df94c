// Package app is the composition root for dnsdeck.
//
// # Wiring
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─> config.Load()                 TOML config + CLI overrides
//	       ├─> logging.New()                 slog over zap, console or JSON
//	       ├─> transport.NewInstrumented()   start/end signals per call
//	       │     ├─> busy.Counter            in-flight count for the spinner
//	       │     └─> metrics.Metrics         prometheus collectors
//	       ├─> resolvex.NewClient()          typed /api client
//	       ├─> notify.New()                  self-expiring alerts
//	       ├─> syncer.New()                  fetch, sort, aggregate, publish
//	       ├─> engine.changes()              store, alert, busy and phase hooks
//	       │                                 coalesced into one channel
//	       ├─> syncer.StartPoller()          one cycle now, then every interval
//	       └─> ui.Run()                      Bubble Tea dashboard (blocks),
//	                                         re-reads state on each change
//
// Once builds the same engine without the UI and runs a single cycle; the
// stats and export commands use it.
//
// # Error Handling
//
// Only setup fails Run: a bad config, an unusable log file or an invalid API
// address. Sync and mutation failures at runtime become alerts and log lines.
package app
