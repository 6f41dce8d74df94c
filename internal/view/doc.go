// Package view holds the presentation-side helpers shared by the TUI and the
// CLI: the substring filter over the published records and cell formatting.
package view
