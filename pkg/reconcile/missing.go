package reconcile

import "github.com/agentstation/venuemap/pkg/templates"

// MissingKey is a (venue, year) with no template, kept in the raw form it
// was first seen in.
type MissingKey struct {
	Venue      string
	Year       string
	Normalized templates.NormalizedKey
	// Count is how many entries carried this normalized key.
	Count int
}

// MissingSet collects missing keys, deduplicated by normalized key.
type MissingSet struct {
	order []templates.NormalizedKey
	items map[templates.NormalizedKey]*MissingKey
}

// NewMissingSet returns an empty set.
func NewMissingSet() *MissingSet {
	return &MissingSet{items: make(map[templates.NormalizedKey]*MissingKey)}
}

// Add records a raw (venue, year). It reports whether the normalized key was
// new; a repeated key only bumps the count and keeps the first raw form.
func (s *MissingSet) Add(venue, year string) bool {
	nk := templates.NewNormalizedKey(venue, year)
	if mk, ok := s.items[nk]; ok {
		mk.Count++
		return false
	}
	s.order = append(s.order, nk)
	s.items[nk] = &MissingKey{Venue: venue, Year: year, Normalized: nk, Count: 1}
	return true
}

// Len returns the number of distinct keys.
func (s *MissingSet) Len() int {
	return len(s.order)
}

// List returns the keys in first-seen order.
func (s *MissingSet) List() []MissingKey {
	out := make([]MissingKey, 0, len(s.order))
	for _, nk := range s.order {
		out = append(out, *s.items[nk])
	}
	return out
}
