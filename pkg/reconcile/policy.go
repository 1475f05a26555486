package reconcile

import (
	"fmt"
	"strings"

	"github.com/agentstation/venuemap/pkg/errors"
)

// Policy selects the merge direction between an entry and its template.
type Policy string

const (
	// PolicyCompletion adds template fields the entry lacks. Conflicts are
	// reported and never applied; the store is not touched.
	PolicyCompletion Policy = "completion"
	// PolicyIngestion merges entry fields into the store. On conflict the
	// entry's value replaces the template's.
	PolicyIngestion Policy = "ingestion"
)

// String returns the string representation of a policy.
func (p Policy) String() string {
	return string(p)
}

// Name returns the title-cased policy name.
func (p Policy) Name() string {
	s := p.String()
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Description returns a human-readable description.
func (p Policy) Description() string {
	switch p {
	case PolicyCompletion:
		return "Adds missing template fields to entries; conflicts are reported only"
	case PolicyIngestion:
		return "Merges entry fields into templates; entry values win on conflict"
	default:
		return "unknown policy"
	}
}

// WritesStore reports whether the policy mutates the template store.
func (p Policy) WritesStore() bool {
	return p == PolicyIngestion
}

// ParsePolicy parses a policy name.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyCompletion:
		return PolicyCompletion, nil
	case PolicyIngestion:
		return PolicyIngestion, nil
	default:
		return "", errors.NewValidationError("policy", s, fmt.Sprintf("must be %q or %q", PolicyCompletion, PolicyIngestion))
	}
}
