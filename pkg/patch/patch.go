// Package patch inserts field lines into bibliography source text without
// touching anything else. Every original line is copied byte-for-byte; new
// lines go directly after the header line of the entry they belong to.
package patch

import (
	"fmt"
	"os"
	"strings"

	"github.com/agentstation/venuemap/internal/persistence"
	"github.com/agentstation/venuemap/pkg/bibtex"
	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/reconcile"
)

// Result is the outcome of applying patches to a source.
type Result struct {
	Lines []string
	// Applied lists the ids that were patched, in source order.
	Applied []string
	// Unresolved lists the ids with no usable header line, in patch order.
	Unresolved []string
	// Inserted is the number of field lines added.
	Inserted int
}

// Err returns an *errors.UnresolvedPatchError when some patches were not
// applied, and nil otherwise.
func (r Result) Err() error {
	if len(r.Unresolved) == 0 {
		return nil
	}
	return errors.NewUnresolvedPatchError(r.Unresolved)
}

// String joins the output lines.
func (r Result) String() string {
	return strings.Join(r.Lines, "")
}

// SplitLines splits text after each "\n", keeping line endings.
func SplitLines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// FormatField renders one inserted field line without its line ending.
func FormatField(name, value string) string {
	return fmt.Sprintf("  %-*s = {%s},", constants.PatchFieldWidth, name, value)
}

// Apply streams lines, inserting each patch after the first header line
// whose citation key matches. Lines keep their endings; inserted lines use
// the ending of the header they follow.
//
// A patch whose first matching header also closes the entry on the same line
// is not applied, since the new lines would land outside the entry. Nor is
// one whose header line leaves a field value open, since the new lines would
// land inside that value. Both are reported as unresolved, like a patch
// whose header never appears.
func Apply(lines []string, patches []reconcile.Patch) Result {
	pending := make(map[string]reconcile.Patch, len(patches))
	for _, p := range patches {
		if _, dup := pending[p.EntryID]; !dup && p.Fields.Len() > 0 {
			pending[p.EntryID] = p
		}
	}
	blocked := make(map[string]bool)

	result := Result{Lines: make([]string, 0, len(lines))}
	for _, line := range lines {
		result.Lines = append(result.Lines, line)

		h, ok := bibtex.ScanHeader(line)
		if !ok {
			continue
		}
		p, ok := pending[h.ID]
		if !ok {
			continue
		}
		delete(pending, h.ID)
		if !h.Insertable() {
			blocked[h.ID] = true
			continue
		}

		eol := lineEnding(line)
		if eol == "" {
			// Last line of a file without a final newline.
			eol = "\n"
			result.Lines = append(result.Lines, eol)
		}
		for _, f := range p.Fields.Fields() {
			result.Lines = append(result.Lines, FormatField(f.Name, f.Value)+eol)
			result.Inserted++
		}
		result.Applied = append(result.Applied, h.ID)
	}

	seen := make(map[string]bool, len(patches))
	for _, p := range patches {
		if seen[p.EntryID] {
			continue
		}
		seen[p.EntryID] = true
		if _, still := pending[p.EntryID]; still || blocked[p.EntryID] {
			result.Unresolved = append(result.Unresolved, p.EntryID)
		}
	}
	return result
}

// ApplyFile patches the source at input and writes the result atomically to
// output. Unresolved patches are reported through the result, not the error.
func ApplyFile(input, output string, patches []reconcile.Patch) (Result, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return Result{}, errors.NewSourceReadError(input, err)
	}
	result := Apply(SplitLines(string(data)), patches)
	if err := persistence.WriteFile(output, []byte(result.String())); err != nil {
		return result, err
	}
	return result, nil
}

func lineEnding(line string) string {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return "\r\n"
	case strings.HasSuffix(line, "\n"):
		return "\n"
	default:
		return ""
	}
}
