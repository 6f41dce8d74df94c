// Package logging builds the application's slog logger on top of a zap core.
// The TUI owns the terminal, so interactive runs log to a file; the one-shot
// commands log to stderr.
package logging
