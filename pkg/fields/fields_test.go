package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapOrder(t *testing.T) {
	m := New(
		Field{Name: "acronym", Value: "NeurIPS"},
		Field{Name: "Location", Value: "Vancouver"},
		Field{Name: "rank", Value: "A*"},
	)
	m.Set("ACRONYM", "NIPS")

	assert.Equal(t, []string{"acronym", "location", "rank"}, m.Names())
	assert.Equal(t, "NIPS", m.Value("acronym"))
	assert.Equal(t, 3, m.Len())
}

func TestMapZeroValue(t *testing.T) {
	var m Map
	assert.False(t, m.Has("x"))
	m.Set("x", "1")
	v, ok := m.Get("X")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	var nilMap *Map
	assert.Equal(t, 0, nilMap.Len())
	assert.Nil(t, nilMap.Fields())
	assert.Equal(t, 0, nilMap.Clone().Len())
}

func TestMapClone(t *testing.T) {
	m := New(Field{Name: "a", Value: "1"})
	c := m.Clone()
	c.Set("a", "2")
	c.Set("b", "3")
	assert.Equal(t, "1", m.Value("a"))
	assert.False(t, m.Has("b"))
}

func TestMapWithout(t *testing.T) {
	m := New(
		Field{Name: "title", Value: "T"},
		Field{Name: "acronym", Value: "ICML"},
		Field{Name: "doi", Value: "10.1/x"},
		Field{Name: "publisher", Value: "PMLR"},
	)
	got := m.Without(Excluded)
	assert.Equal(t, []Field{{"acronym", "ICML"}, {"publisher", "PMLR"}}, got.Fields())
}

func TestExcluded(t *testing.T) {
	for _, n := range []string{"ID", "ENTRYTYPE", "booktitle", "Journal", "year", "note", "articleno"} {
		assert.True(t, Excluded(n), n)
	}
	for _, n := range []string{"acronym", "rank", "location", "month", "publisher"} {
		assert.False(t, Excluded(n), n)
	}
	assert.Len(t, ExcludedNames(), 16)
}
