// Package templates holds the canonical template store: field mappings keyed
// by raw (venue, year), with a normalized index for lookups and a
// deterministic export order.
package templates

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agentstation/venuemap/pkg/fields"
)

// Template is the canonical field mapping for one (venue, year).
type Template struct {
	Key    Key
	Fields *fields.Map
}

// Clone returns an independent copy.
func (t Template) Clone() Template {
	return Template{Key: t.Key, Fields: t.Fields.Clone()}
}

// Ambiguity records two raw keys that normalize to the same value. The index
// resolves the normalized key to Kept; Shadowed is unreachable by lookup.
type Ambiguity struct {
	Normalized NormalizedKey
	Kept       Key
	Shadowed   Key
}

// Order compares two templates for export.
type Order func(a, b Template) int

// ByYearDesc orders templates by descending YearValue, then venue ascending
// ignoring case. Years without digits sort last.
func ByYearDesc(a, b Template) int {
	if c := cmp.Compare(YearValue(b.Key.Year), YearValue(a.Key.Year)); c != 0 {
		return c
	}
	return cmp.Compare(strings.ToLower(a.Key.Venue), strings.ToLower(b.Key.Venue))
}

// Store is the in-memory canonical template store. It is not safe for
// concurrent use.
type Store struct {
	order       []Key
	templates   map[Key]*Template
	index       map[NormalizedKey]Key
	ambiguities []Ambiguity
	dirty       map[Key]bool
}

// New returns an empty store.
func New() *Store {
	return &Store{
		templates: make(map[Key]*Template),
		index:     make(map[NormalizedKey]Key),
		dirty:     make(map[Key]bool),
	}
}

// Len returns the number of templates.
func (s *Store) Len() int {
	return len(s.order)
}

// Lookup resolves a normalized key through the index. The returned template
// is a copy.
func (s *Store) Lookup(nk NormalizedKey) (Template, bool) {
	k, ok := s.index[nk]
	if !ok {
		return Template{}, false
	}
	return s.templates[k].Clone(), true
}

// Get returns a copy of the template stored under a raw key.
func (s *Store) Get(k Key) (Template, bool) {
	t, ok := s.templates[k]
	if !ok {
		return Template{}, false
	}
	return t.Clone(), true
}

// Upsert stores f under k, replacing an existing template in place or
// appending a new one, and keeps the index current. It reports whether the
// key was new. The template is marked dirty when its content changed.
func (s *Store) Upsert(k Key, f *fields.Map) bool {
	f = f.Clone()
	if existing, ok := s.templates[k]; ok {
		if !sameFields(existing.Fields, f) {
			existing.Fields = f
			s.dirty[k] = true
		}
		return false
	}
	s.insert(k, f)
	s.dirty[k] = true
	return true
}

// insert appends a template and registers it in the index. The first raw key
// registered for a normalized key wins.
func (s *Store) insert(k Key, f *fields.Map) {
	s.order = append(s.order, k)
	s.templates[k] = &Template{Key: k, Fields: f}

	nk := k.Normalized()
	if kept, ok := s.index[nk]; ok {
		s.ambiguities = append(s.ambiguities, Ambiguity{Normalized: nk, Kept: kept, Shadowed: k})
		return
	}
	s.index[nk] = k
}

// Dirty returns the keys changed since load, in insertion order.
func (s *Store) Dirty() []Key {
	var out []Key
	for _, k := range s.order {
		if s.dirty[k] {
			out = append(out, k)
		}
	}
	return out
}

// Changed reports whether any template was added or modified since load.
func (s *Store) Changed() bool {
	return len(s.dirty) > 0
}

// Ambiguities returns the normalized-key collisions seen so far.
func (s *Store) Ambiguities() []Ambiguity {
	return slices.Clone(s.ambiguities)
}

// Export returns copies of all templates sorted by order, ByYearDesc when
// order is nil. Templates that compare equal keep insertion order.
func (s *Store) Export(order Order) []Template {
	if order == nil {
		order = ByYearDesc
	}
	out := make([]Template, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.templates[k].Clone())
	}
	slices.SortStableFunc(out, order)
	return out
}

func sameFields(a, b *fields.Map) bool {
	return slices.Equal(a.Fields(), b.Fields())
}
