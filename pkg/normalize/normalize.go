// Package normalize reduces venue, year, and field values to a comparison
// form. Normalized text is only ever compared, never written back out.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Func transforms a value before equality comparison.
type Func func(string) string

var braces = strings.NewReplacer("{", "", "}", "")

// Text strips every brace, collapses whitespace runs to one space, trims,
// and lower-cases. Empty input yields the empty string. Text is idempotent.
func Text(s string) string {
	if s == "" {
		return ""
	}
	s = strings.Join(strings.Fields(braces.Replace(s)), " ")
	return cases.Lower(language.Und).String(s)
}

// Equal reports whether a and b are the same after normalization.
func Equal(a, b string) bool {
	return Text(a) == Text(b)
}
