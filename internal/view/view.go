package view

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/net/idna"

	"github.com/five82/dnsdeck/internal/resolvex"
)

// Missing is shown in cells whose value is absent.
const Missing = "—"

// ExpireLayout formats expiry timestamps in the table.
const ExpireLayout = "2006-01-02 15:04:05"

// Filter returns the records whose name contains predicate. Matching is
// case-sensitive. An empty predicate returns every record. The input slice is
// never modified; the result shares record values with it.
func Filter(records []resolvex.Record, predicate string) []resolvex.Record {
	if predicate == "" {
		out := make([]resolvex.Record, len(records))
		copy(out, records)
		return out
	}
	out := make([]resolvex.Record, 0, len(records))
	for _, r := range records {
		if strings.Contains(r.Domain, predicate) {
			out = append(out, r)
		}
	}
	return out
}

// Predicate holds the current filter text. Set replaces it wholesale.
type Predicate struct {
	mu   sync.RWMutex
	text string
}

// Set replaces the filter text.
func (p *Predicate) Set(text string) {
	p.mu.Lock()
	p.text = text
	p.mu.Unlock()
}

// String returns the filter text.
func (p *Predicate) String() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.text
}

// Apply filters records with the current text.
func (p *Predicate) Apply(records []resolvex.Record) []resolvex.Record {
	return Filter(records, p.String())
}

// DisplayName renders punycode labels in their Unicode form. Names that do
// not convert are returned as is.
func DisplayName(domain string) string {
	if !strings.Contains(domain, "xn--") {
		return domain
	}
	out, err := idna.Display.ToUnicode(domain)
	if err != nil {
		return domain
	}
	return out
}

// FormatExpire renders an expiry in local time, or Missing when absent.
func FormatExpire(exp *time.Time) string {
	if exp == nil || exp.IsZero() {
		return Missing
	}
	return exp.Local().Format(ExpireLayout)
}

// FormatValues joins a record's values for a table cell.
func FormatValues(values []string) string {
	if len(values) == 0 {
		return Missing
	}
	return strings.Join(values, ", ")
}
