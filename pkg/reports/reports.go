// Package reports writes the per-run conflict and missing-template logs.
// Both are plain tab-separated text: a header line, one row per record or
// "(none)", and a trailing newline. Values are written unquoted.
package reports

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/agentstation/venuemap/internal/persistence"
	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/reconcile"
)

const (
	// ConflictHeader is the first line of the conflict log.
	ConflictHeader = "conflicts: entry_id\tfield\texisting\ttemplate"
	// MissingHeader is the first line of the missing-template log.
	MissingHeader = "missing templates: venue\tyear"
)

// Paths are the log files for one input.
type Paths struct {
	Conflicts string
	Missing   string
}

// PathsFor derives the log paths for input under logDir, named after the
// input's base name. An empty logDir means the current directory.
func PathsFor(logDir, input string) Paths {
	if logDir == "" {
		logDir = constants.DefaultLogDir
	}
	base := filepath.Base(input)
	return Paths{
		Conflicts: filepath.Join(logDir, base+constants.ConflictLogSuffix),
		Missing:   filepath.Join(logDir, base+constants.MissingLogSuffix),
	}
}

// ConflictRows renders conflicts as `id\tfield\tEXISTING=v\tTEMPLATE=v`.
func ConflictRows(conflicts []reconcile.Conflict) []string {
	rows := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		rows = append(rows, fmt.Sprintf("%s\t%s\tEXISTING=%s\tTEMPLATE=%s", c.EntryID, c.Field, c.Existing, c.Template))
	}
	return rows
}

// MissingRows renders missing keys as `venue\tyear` in their first-seen raw
// form.
func MissingRows(missing []reconcile.MissingKey) []string {
	rows := make([]string, 0, len(missing))
	for _, m := range missing {
		rows = append(rows, m.Venue+"\t"+m.Year)
	}
	return rows
}

// Render builds a log document.
func Render(header string, rows []string) string {
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteByte('\n')
	if len(rows) == 0 {
		sb.WriteString(constants.NoRows)
		sb.WriteByte('\n')
		return sb.String()
	}
	for _, row := range rows {
		sb.WriteString(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Write writes both logs for result and returns their paths.
func Write(logDir, input string, result *reconcile.Result) (Paths, error) {
	paths := PathsFor(logDir, input)
	if err := persistence.WriteFile(paths.Conflicts, []byte(Render(ConflictHeader, ConflictRows(result.Conflicts)))); err != nil {
		return paths, err
	}
	if err := persistence.WriteFile(paths.Missing, []byte(Render(MissingHeader, MissingRows(result.Missing)))); err != nil {
		return paths, err
	}
	return paths, nil
}
