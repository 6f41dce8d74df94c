// Package state holds the published record snapshot shared by the
// synchronizer, the UI and the CLI.
//
// # Overview
//
// A Snapshot is the full record list as of the last successful sync plus the
// aggregates derived from it: total value count, unique value count,
// per-value occurrence counts, record count and distinct domain count.
// Build computes all of them together from one input list; nothing is ever
// patched incrementally.
//
//	Producer (Synchronizer):        Consumer (UI / CLI):
//	┌─────────────────────┐        ┌──────────────────────┐
//	│ client.List()       │        │                      │
//	│      ↓              │        │                      │
//	│ state.Build()       │        │                      │
//	│      ↓              │        │                      │
//	│ store.Publish(n, s) │───────→│ store.Snapshot()     │
//	│ or store.Fail(n, e) │(mutex) │      ↓               │
//	└─────────────────────┘        │ view.Filter / render │
//	                               └──────────────────────┘
//
// # Ordering
//
// SortRecords puts records with more values first and breaks ties by name
// using root-locale collation from golang.org/x/text/collate, then by byte
// order. The sort is stable.
//
// # Publish semantics
//
//	// Success: replace everything
//	store.Publish(cycle, state.Build(list, now))
//	→ Records, aggregates, Cycle replaced
//	→ LastError = nil, ConsecutiveFailures = 0
//
//	// Failure: keep old data, record error
//	store.Fail(cycle, err)
//	→ Records, aggregates unchanged
//	→ LastError = err, ConsecutiveFailures++
//
// Publish and Fail ignore cycles older than the one already published, so a
// slow cycle can neither overwrite a newer result nor mark the store offline.
//
// # Copying
//
// Snapshot() deep-copies records, value slices, the occurrence map and the
// error so callers may mutate what they get back. The zero Store is ready to
// use.
package state
