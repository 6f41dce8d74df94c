// Package export writes the tracked domain names of a snapshot to a file or
// stream as a comma-joined line, a JSON array or a YAML sequence.
package export
