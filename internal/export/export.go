package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/five82/dnsdeck/internal/state"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "txt"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrNoData is returned when there is nothing to export.
var ErrNoData = errors.New("no data")

// ParseFormat maps a flag value to a Format. "yml" is accepted as yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "txt", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// Domains returns the distinct record names of snap in snapshot order. It
// returns ErrNoData when the snapshot was never populated.
func Domains(snap state.Snapshot) ([]string, error) {
	if !snap.HasData {
		return nil, ErrNoData
	}
	seen := make(map[string]struct{}, len(snap.Records))
	out := make([]string, 0, len(snap.Records))
	for _, r := range snap.Records {
		if _, ok := seen[r.Domain]; ok {
			continue
		}
		seen[r.Domain] = struct{}{}
		out = append(out, r.Domain)
	}
	return out, nil
}

// Write encodes domains to w. Text output is a single comma-joined line.
func Write(w io.Writer, domains []string, format Format) error {
	if domains == nil {
		domains = []string{}
	}
	switch format {
	case FormatText, "":
		if _, err := io.WriteString(w, strings.Join(domains, ",")); err != nil {
			return fmt.Errorf("write text: %w", err)
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(domains); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(domains); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
