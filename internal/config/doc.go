// Package config loads dnsdeck's TOML configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/dnsdeck/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - API endpoint: 127.0.0.1:8080
//   - Poll interval: 5s
//   - Alert lifetime: 5s
//   - Request timeout: 5s
//   - Log file: ~/.local/state/dnsdeck/dnsdeck.log
//   - Log level: info
//   - Log format: console
//   - Metrics: disabled
//
// # TOML Format
//
//	api_url = "http://10.0.0.2:8080"
//	poll_interval = "10s"
//	alert_ttl = "5s"
//	request_timeout = "3s"
//	log_file = "~/.local/state/dnsdeck/dnsdeck.log"
//	log_level = "debug"
//	log_format = "json"
//	metrics_addr = "127.0.0.1:9464"
//
// Every field is optional. Durations use Go duration syntax and must be
// positive. Tilde expansion is performed on log_file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than a
// missing file, TOML syntax errors and invalid durations. A missing file is
// not an error.
package config
