package lint

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agentstation/venuemap/pkg/bibtex"
)

// Reason explains why a title term should be protected.
type Reason string

// Reasons reported by UnprotectedTerms.
const (
	ReasonMixedCase Reason = "Mixed Case"
	ReasonAcronym   Reason = "Acronym"
	ReasonNumber    Reason = "Contains Number"
)

// ShoutingRatio is the share of uppercase characters above which a title is
// treated as all caps and skipped.
const ShoutingRatio = 0.7

var (
	protectedSpan = regexp.MustCompile(`\{.*?\}`)

	// LoRA, ResNet, iPhone; plain title case such as "Learning" is not matched.
	mixedCase = regexp.MustCompile(`\b(?:[a-z]+[A-Z][a-zA-Z]*)|(?:[A-Z][a-z]*[A-Z][a-zA-Z]*)\b`)
	// BERT, LLM
	allCaps = regexp.MustCompile(`\b[A-Z]{2,}\b`)
	// GPT-4, Llama3, VGG16
	numeric = regexp.MustCompile(`\b[A-Za-z]*\d+[A-Za-z0-9\-]*\b`)
)

// Term is a title word that needs brace protection.
type Term struct {
	EntryID string
	Term    string
	Reason  Reason
}

// UnprotectedTerms scans entry titles for terms whose case a bibliography
// style would fold. Brace-protected spans are ignored. When one finding
// contains another, only the longer is kept.
func UnprotectedTerms(entries []bibtex.Entry) []Term {
	var out []Term
	for _, e := range entries {
		title := e.Fields.Value("title")
		if title == "" {
			continue
		}
		for _, t := range ScanTitle(title) {
			t.EntryID = e.ID
			out = append(out, t)
		}
	}
	return out
}

// ScanTitle returns the unprotected terms of one title, without entry ids.
func ScanTitle(title string) []Term {
	clean := protectedSpan.ReplaceAllStringFunc(title, func(m string) string {
		return strings.Repeat(" ", utf8.RuneCountInString(m))
	})
	if shouting(clean) {
		return nil
	}

	var found []Term
	for _, p := range []struct {
		re     *regexp.Regexp
		reason Reason
	}{
		{mixedCase, ReasonMixedCase},
		{allCaps, ReasonAcronym},
		{numeric, ReasonNumber},
	} {
		for _, m := range p.re.FindAllString(clean, -1) {
			found = append(found, Term{Term: m, Reason: p.reason})
		}
	}
	return longest(found)
}

func shouting(s string) bool {
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return false
	}
	upper := 0
	for _, r := range s {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return float64(upper)/float64(n) > ShoutingRatio
}

// longest drops findings contained in a longer one. A repeated term keeps
// its first position and takes the latest reason.
func longest(found []Term) []Term {
	var out []Term
	for _, f := range found {
		contained := false
		kept := out[:0:0]
		for _, existing := range out {
			switch {
			case existing.Term != f.Term && strings.Contains(existing.Term, f.Term):
				contained = true
				kept = append(kept, existing)
			case existing.Term != f.Term && strings.Contains(f.Term, existing.Term):
				// shorter than f; dropped
			default:
				kept = append(kept, existing)
			}
		}
		out = kept
		if contained {
			continue
		}
		replaced := false
		for i := range out {
			if out[i].Term == f.Term {
				out[i].Reason = f.Reason
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, f)
		}
	}
	return out
}
