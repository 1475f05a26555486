package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"braces and case", "{ICML} 2020", "icml 2020"},
		{"nested braces", "{{NeurIPS}}", "neurips"},
		{"surrounding space", "  Some New Workshop \t", "some new workshop"},
		{"space inside braces", "{ ACL }", "acl"},
		{"only braces", "{}", ""},
		{"unicode", "Ümlaut ÉCOLE", "ümlaut école"},
		{"line continuation", "Conference on\n\tEmpirical  Methods", "conference on empirical methods"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}

func TestTextIdempotent(t *testing.T) {
	inputs := []string{"", "{ICML} 2020", " {A} {b} ", "Proc. of {IEEE} CVPR", "{ x }"}
	for _, in := range inputs {
		once := Text(in)
		assert.Equal(t, once, Text(once), "input %q", in)
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("{ICML} 2020", "icml 2020"))
	assert.True(t, Equal("{NeurIPS}", "NeurIPS"))
	assert.True(t, Equal("Proc. of\n  {ACL}", "Proc. of ACL"))
	assert.False(t, Equal("NIPS", "NeurIPS"))
}
