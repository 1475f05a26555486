package templates

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentstation/venuemap/pkg/normalize"
)

// Key is the raw (venue, year) pair a template is stored under.
type Key struct {
	Venue string
	Year  string
}

// String renders the key for messages.
func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.Venue, k.Year)
}

// Normalized returns the comparison form of the key.
func (k Key) Normalized() NormalizedKey {
	return NewNormalizedKey(k.Venue, k.Year)
}

// NormalizedKey is a (venue, year) pair after normalize.Text. It is only
// used for equality and is never stored as a template's identity.
type NormalizedKey struct {
	Venue string
	Year  string
}

// NewNormalizedKey normalizes a raw venue and year.
func NewNormalizedKey(venue, year string) NormalizedKey {
	return NormalizedKey{Venue: normalize.Text(venue), Year: normalize.Text(year)}
}

// YearValue is the numeric sort value of a year string: all of its digits
// read as one number, or -1 when it has none.
func YearValue(year string) int {
	var b strings.Builder
	for i := 0; i < len(year); i++ {
		if c := year[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	if b.Len() == 0 {
		return -1
	}
	v, err := strconv.Atoi(b.String())
	if err != nil {
		return -1
	}
	return v
}
