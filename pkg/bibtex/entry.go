// Package bibtex reads bibliography source text into entries with ordered
// fields, and tokenizes single entry-header lines for in-place editing.
package bibtex

import (
	"strings"

	"github.com/agentstation/venuemap/pkg/fields"
)

// Entry is one parsed bibliography record.
type Entry struct {
	// ID is the citation key, unique within a source file.
	ID string
	// Kind is the lower-cased entry type, e.g. "inproceedings".
	Kind string
	// Fields holds the field values in source order, names lower-cased.
	Fields *fields.Map
	// Line is the 1-based line of the entry's '@'.
	Line int
	// Offset is the byte offset of the entry's '@'.
	Offset int
}

// Venue returns booktitle when present and non-empty, otherwise journal.
func (e Entry) Venue() string {
	if v := e.Fields.Value("booktitle"); strings.TrimSpace(v) != "" {
		return v
	}
	return e.Fields.Value("journal")
}

// Year returns the raw year field.
func (e Entry) Year() string {
	return e.Fields.Value("year")
}

// Metadata returns the entry's fields without identity/citation fields.
func (e Entry) Metadata() *fields.Map {
	return e.Fields.Without(fields.Excluded)
}
