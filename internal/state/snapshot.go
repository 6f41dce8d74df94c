package state

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/five82/dnsdeck/internal/resolvex"
)

// Snapshot is the published record set plus aggregates derived from it.
type Snapshot struct {
	Records      []resolvex.Record
	TotalValues  int
	UniqueValues int
	RecordCount  int
	Domains      int
	Resolved     int // records with at least one value
	Occurrence   map[string]int

	HasData             bool
	Cycle               uint64
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// UniqueFor counts the values of r that occur exactly once across the whole
// snapshot.
func (s Snapshot) UniqueFor(r resolvex.Record) int {
	n := 0
	for _, v := range r.Record {
		if s.Occurrence[v] <= 1 {
			n++
		}
	}
	return n
}

// Build sorts a copy of records and derives every aggregate from it in one
// pass. The input slice is not modified.
func Build(records []resolvex.Record, now time.Time) Snapshot {
	sorted := cloneRecords(records)
	if sorted == nil {
		sorted = []resolvex.Record{}
	}
	SortRecords(sorted)

	snap := Snapshot{
		Records:     sorted,
		RecordCount: len(sorted),
		Occurrence:  make(map[string]int),
		HasData:     true,
		LastUpdated: now,
	}
	names := make(map[string]struct{}, len(sorted))
	for _, r := range sorted {
		names[r.Domain] = struct{}{}
		snap.TotalValues += len(r.Record)
		if len(r.Record) > 0 {
			snap.Resolved++
		}
		for _, v := range r.Record {
			snap.Occurrence[v]++
		}
	}
	snap.UniqueValues = len(snap.Occurrence)
	snap.Domains = len(names)
	return snap
}

// SortRecords orders records in place: more values first, then by name.
// Names compare with root-locale collation and fall back to byte order so
// the result is deterministic. The sort is stable.
func SortRecords(records []resolvex.Record) {
	cmp := NewComparator()
	slices.SortStableFunc(records, cmp.Compare)
}

// Comparator implements the record ordering. It is not safe for concurrent
// use because the collator keeps internal buffers.
type Comparator struct {
	collator *collate.Collator
}

// NewComparator returns a Comparator using the root locale.
func NewComparator() *Comparator {
	return &Comparator{collator: collate.New(language.Und)}
}

// Compare returns a negative number when a sorts before b.
func (c *Comparator) Compare(a, b resolvex.Record) int {
	if la, lb := len(a.Record), len(b.Record); la != lb {
		return lb - la
	}
	return c.CompareNames(a.Domain, b.Domain)
}

// CompareNames orders two record names.
func (c *Comparator) CompareNames(a, b string) int {
	if n := c.collator.CompareString(a, b); n != 0 {
		return n
	}
	return strings.Compare(a, b)
}

func cloneRecords(records []resolvex.Record) []resolvex.Record {
	if records == nil {
		return nil
	}
	dup := make([]resolvex.Record, len(records))
	for i, r := range records {
		dup[i] = r.Clone()
	}
	return dup
}

func cloneOccurrence(in map[string]int) map[string]int {
	if in == nil {
		return nil
	}
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
