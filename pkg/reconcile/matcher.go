package reconcile

import (
	"strings"

	"github.com/agentstation/venuemap/pkg/bibtex"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/templates"
)

// Matcher resolves entries against the store's normalized index and records
// every key it could not resolve.
type Matcher struct {
	store   *templates.Store
	missing *MissingSet
}

// NewMatcher creates a matcher over store.
func NewMatcher(store *templates.Store) *Matcher {
	return &Matcher{store: store, missing: NewMissingSet()}
}

// Match finds the template for e. An entry without venue or year yields a
// *errors.MissingKeyError; an unknown key yields a *errors.NoTemplateMatchError.
// Both are recorded in the missing set.
func (m *Matcher) Match(e bibtex.Entry) (templates.Template, error) {
	venue, year := e.Venue(), e.Year()
	if strings.TrimSpace(venue) == "" || strings.TrimSpace(year) == "" {
		m.missing.Add(venue, year)
		return templates.Template{}, errors.NewMissingKeyError(e.ID, venue, year)
	}

	tmpl, ok := m.store.Lookup(templates.NewNormalizedKey(venue, year))
	if !ok {
		m.missing.Add(venue, year)
		return templates.Template{}, errors.NewNoTemplateMatchError(e.ID, venue, year)
	}
	return tmpl, nil
}

// Missing returns the keys that failed to match so far.
func (m *Matcher) Missing() *MissingSet {
	return m.missing
}
