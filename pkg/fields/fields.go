// Package fields provides the insertion-ordered field mapping shared by
// bibliography entries, templates, and patches.
package fields

import "strings"

// Field is a single name/value pair.
type Field struct {
	Name  string
	Value string
}

// Map is a field mapping that remembers insertion order. Names are compared
// case-insensitively and stored lower-cased. The zero value is ready to use.
type Map struct {
	names  []string
	values map[string]string
}

// New builds a Map from pairs, in order.
func New(pairs ...Field) *Map {
	m := &Map{}
	for _, p := range pairs {
		m.Set(p.Name, p.Value)
	}
	return m
}

// Set stores value under name. A new name is appended; an existing name keeps
// its position.
func (m *Map) Set(name, value string) {
	key := Key(name)
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[key]; !ok {
		m.names = append(m.names, key)
	}
	m.values[key] = value
}

// Get returns the value stored under name.
func (m *Map) Get(name string) (string, bool) {
	if m == nil || m.values == nil {
		return "", false
	}
	v, ok := m.values[Key(name)]
	return v, ok
}

// Value returns the value stored under name or the empty string.
func (m *Map) Value(name string) string {
	v, _ := m.Get(name)
	return v
}

// Has reports whether name is present.
func (m *Map) Has(name string) bool {
	_, ok := m.Get(name)
	return ok
}

// Len returns the number of fields.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// Names returns the field names in insertion order.
func (m *Map) Names() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Fields returns the pairs in insertion order.
func (m *Map) Fields() []Field {
	if m == nil {
		return nil
	}
	out := make([]Field, 0, len(m.names))
	for _, n := range m.names {
		out = append(out, Field{Name: n, Value: m.values[n]})
	}
	return out
}

// Clone returns an independent copy.
func (m *Map) Clone() *Map {
	c := &Map{}
	if m == nil {
		return c
	}
	for _, f := range m.Fields() {
		c.Set(f.Name, f.Value)
	}
	return c
}

// Without returns a copy without the fields drop reports true for.
func (m *Map) Without(drop func(name string) bool) *Map {
	c := &Map{}
	for _, f := range m.Fields() {
		if !drop(f.Name) {
			c.Set(f.Name, f.Value)
		}
	}
	return c
}

// Key canonicalizes a field name.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
