package ui

import "time"

// LayoutCompactWidth is the terminal width below which the table drops the
// address and expiry columns.
const LayoutCompactWidth = 80

// DefaultUIInterval is how often the model re-reads the store, the alert
// queue and the busy counter.
const DefaultUIInterval = 250 * time.Millisecond
