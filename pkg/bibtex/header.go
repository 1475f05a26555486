package bibtex

import "strings"

// Header is an entry header found on a single source line, the shape
// `@kind{id,` optionally followed by more text.
type Header struct {
	Kind string
	ID   string
	// Rest is the text after the comma that ends the citation key.
	Rest string
	// Closed is true when Rest also closes the entry, so nothing can be
	// inserted on the following line without landing outside it.
	Closed bool
	// Unterminated is true when Rest leaves a braced or quoted value open,
	// so the following line is still inside that value.
	Unterminated bool
}

// Insertable reports whether field lines may go directly after the header.
func (h Header) Insertable() bool {
	return !h.Closed && !h.Unterminated
}

// ScanHeader tokenizes one source line as an entry header.
//
// A line is a header when its first non-blank character is '@', followed by
// an entry kind, optional blanks, '{' or '(', optional blanks, a citation key,
// and a comma. Lines that fail this shape are not headers; that includes
// headers split over several lines, '%' comment lines, and @string, @comment
// and @preamble blocks. Callers relying on a header that ScanHeader rejects
// must treat that entry as unresolved.
func ScanHeader(line string) (Header, bool) {
	s := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(s, "@") {
		return Header{}, false
	}
	s = s[1:]

	i := 0
	for i < len(s) && isNameChar(s[i]) {
		i++
	}
	kind := strings.ToLower(s[:i])
	if kind == "" || kind == "string" || kind == "comment" || kind == "preamble" {
		return Header{}, false
	}
	s = strings.TrimLeft(s[i:], " \t")
	if s == "" {
		return Header{}, false
	}

	var closer byte
	switch s[0] {
	case '{':
		closer = '}'
	case '(':
		closer = ')'
	default:
		return Header{}, false
	}
	s = s[1:]

	comma := strings.IndexByte(s, ',')
	if comma < 0 {
		return Header{}, false
	}
	id := strings.TrimSpace(s[:comma])
	if !ValidID(id) {
		return Header{}, false
	}
	rest := s[comma+1:]

	closed, open := scanRest(rest, closer)
	return Header{
		Kind:         kind,
		ID:           id,
		Rest:         rest,
		Closed:       closed,
		Unterminated: open,
	}, true
}

// ValidID reports whether id can be a citation key.
func ValidID(id string) bool {
	if id == "" {
		return false
	}
	for i := 0; i < len(id); i++ {
		switch c := id[i]; {
		case isSpace(c):
			return false
		case c == ',' || c == '{' || c == '}' || c == '(' || c == ')' || c == '=' || c == '"' || c == '#' || c == '%':
			return false
		}
	}
	return true
}

// scanRest reports whether rest ends the entry that was opened just before
// the citation key, and otherwise whether it stops inside a braced or quoted
// value.
func scanRest(rest string, closer byte) (closed, open bool) {
	depth := 0
	inQuote := false
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		switch {
		case c == '"' && depth == 0 && (i == 0 || rest[i-1] != '\\'):
			inQuote = !inQuote
		case inQuote:
		case c == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		case c == closer && depth == 0:
			return true, false
		}
	}
	return false, depth > 0 || inQuote
}
