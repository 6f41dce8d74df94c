// Package ui provides the Bubble Tea terminal dashboard for dnsdeck.
//
// # Layout
//
//	┌ header: logo, values, domains, resolved/records, sync phase, spinner     ┐
//	│ command bar (or the filter input while editing)                          │
//	│ ┌──────────────────────── Records N ──────────────────────────┐          │
//	│ │ Domain          Uniq/All   Addresses            Expires     │          │
//	│ │ ...                                                         │          │
//	│ └─────────────────────────────────────────────────────────────┘          │
//	└ one line per live alert                                                  ┘
//
// # Data Flow
//
// The model never talks to the API for reads. Each signal on
// Options.Changes re-reads the published snapshot, the alert queue, the
// in-flight counter and the sync phase. Without a change channel a tick does
// the same every DefaultUIInterval. Refreshes and mutations run as tea.Cmds so they never
// block the event loop and never wait on each other.
//
// Deleting a domain asks for confirmation through ConfirmBridge: the
// mutation goroutine blocks in Confirm while the model shows a y/n dialog.
//
// # Filtering
//
// "/" opens the filter input. Every keystroke replaces the shared
// view.Predicate, so the table always reflects the current text. Enter keeps
// the filter, esc clears it.
package ui
