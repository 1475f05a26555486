// Package lint holds two standalone checks over parsed entries: entries
// missing a month, and title terms that lose their capitalization unless
// brace-protected.
package lint

import (
	"slices"
	"strings"

	"github.com/agentstation/venuemap/pkg/bibtex"
	"github.com/agentstation/venuemap/pkg/constants"
)

// MonthKinds are the entry kinds expected to carry a month.
var MonthKinds = []string{"inproceedings", "article", "proceedings", "conference"}

// MissingMonth is an entry without a usable month field.
type MissingMonth struct {
	ID   string
	Kind string
	// Year is constants.UnknownYear when the entry has no year field.
	Year string
}

// MissingMonths returns the entries of a MonthKinds kind whose month is
// absent or blank, in source order.
func MissingMonths(entries []bibtex.Entry) []MissingMonth {
	var out []MissingMonth
	for _, e := range entries {
		if !slices.Contains(MonthKinds, strings.ToLower(e.Kind)) {
			continue
		}
		if strings.TrimSpace(e.Fields.Value("month")) != "" {
			continue
		}
		year, ok := e.Fields.Get("year")
		if !ok {
			year = constants.UnknownYear
		}
		out = append(out, MissingMonth{ID: e.ID, Kind: e.Kind, Year: year})
	}
	return out
}
