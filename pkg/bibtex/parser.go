package bibtex

import (
	"fmt"
	"os"
	"strings"

	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/fields"
)

// monthMacros are the predefined month strings.
var monthMacros = map[string]string{
	"jan": "January",
	"feb": "February",
	"mar": "March",
	"apr": "April",
	"may": "May",
	"jun": "June",
	"jul": "July",
	"aug": "August",
	"sep": "September",
	"oct": "October",
	"nov": "November",
	"dec": "December",
}

// ParseFile reads and parses the file at path.
func ParseFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	entries, err := Parse(string(data))
	if err != nil {
		if pe, ok := err.(*errors.ParseError); ok {
			pe.File = path
		}
		return nil, err
	}
	return entries, nil
}

// Parse parses bibliography source text. Text outside entries is ignored,
// @comment and @preamble blocks are skipped, and @string definitions are
// expanded in later values.
func Parse(src string) ([]Entry, error) {
	p := &parser{src: src, line: 1, macros: make(map[string]string, len(monthMacros))}
	for k, v := range monthMacros {
		p.macros[k] = v
	}
	return p.parse()
}

type parser struct {
	src    string
	pos    int
	line   int
	macros map[string]string
}

func (p *parser) parse() ([]Entry, error) {
	var entries []Entry
	for {
		if !p.seekEntry() {
			return entries, nil
		}
		start, startLine := p.pos, p.line
		p.advance() // '@'

		kind := strings.ToLower(p.readWhile(isNameChar))
		if kind == "" {
			continue
		}
		p.skipSpace()
		closer, ok := p.openDelim()
		if !ok {
			// Not an entry after all, e.g. an address in free text.
			continue
		}

		switch kind {
		case "comment", "preamble":
			if err := p.skipBlock(closer, startLine); err != nil {
				return nil, err
			}
		case "string":
			if err := p.parseString(closer, startLine); err != nil {
				return nil, err
			}
		default:
			entry, err := p.parseEntry(kind, closer, startLine)
			if err != nil {
				return nil, err
			}
			entry.Line, entry.Offset = startLine, start
			entries = append(entries, entry)
		}
	}
}

// seekEntry moves to the next '@' that is not inside a '%' comment line.
func (p *parser) seekEntry() bool {
	lineStart := true
	commented := false
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '\n':
			lineStart, commented = true, false
		case lineStart && (c == ' ' || c == '\t' || c == '\r'):
		case lineStart && c == '%':
			commented, lineStart = true, false
		case c == '@' && !commented:
			return true
		default:
			lineStart = false
		}
		p.advance()
	}
	return false
}

func (p *parser) parseEntry(kind string, closer byte, startLine int) (Entry, error) {
	p.skipSpace()
	key := strings.TrimSpace(p.readWhile(func(r byte) bool { return r != ',' && r != closer && r != '\n' }))
	p.skipSpace()
	if p.eof() {
		return Entry{}, p.errorf(startLine, "unterminated entry")
	}
	if key == "" || !ValidID(key) {
		return Entry{}, p.errorf(startLine, "invalid citation key %q", key)
	}

	entry := Entry{ID: key, Kind: kind, Fields: &fields.Map{}}
	if p.peek() == closer {
		p.advance()
		return entry, nil
	}
	if p.peek() != ',' {
		return Entry{}, p.errorf(p.line, "expected ',' after citation key %q", key)
	}
	p.advance()

	for {
		p.skipSpace()
		if p.eof() {
			return Entry{}, p.errorf(startLine, "unterminated entry %q", key)
		}
		if p.peek() == closer {
			p.advance()
			return entry, nil
		}

		name, value, err := p.parseAssignment(closer)
		if err != nil {
			return Entry{}, err
		}
		entry.Fields.Set(name, value)

		p.skipSpace()
		switch {
		case p.eof():
			return Entry{}, p.errorf(startLine, "unterminated entry %q", key)
		case p.peek() == ',':
			p.advance()
		case p.peek() == closer:
			p.advance()
			return entry, nil
		default:
			return Entry{}, p.errorf(p.line, "expected ',' or end of entry after field %q", name)
		}
	}
}

func (p *parser) parseString(closer byte, startLine int) error {
	p.skipSpace()
	name, value, err := p.parseAssignment(closer)
	if err != nil {
		return err
	}
	p.skipSpace()
	if p.eof() || p.peek() != closer {
		return p.errorf(startLine, "unterminated @string")
	}
	p.advance()
	p.macros[strings.ToLower(name)] = value
	return nil
}

// parseAssignment reads `name = value`.
func (p *parser) parseAssignment(closer byte) (string, string, error) {
	line := p.line
	name := p.readWhile(isNameChar)
	if name == "" {
		return "", "", p.errorf(line, "expected field name")
	}
	p.skipSpace()
	if p.eof() || p.peek() != '=' {
		return "", "", p.errorf(line, "expected '=' after field %q", name)
	}
	p.advance()

	var parts []string
	for {
		p.skipSpace()
		part, err := p.parseValuePart(closer)
		if err != nil {
			return "", "", err
		}
		parts = append(parts, part)
		p.skipSpace()
		if p.eof() || p.peek() != '#' {
			break
		}
		p.advance()
	}
	return strings.ToLower(name), strings.Join(parts, ""), nil
}

func (p *parser) parseValuePart(closer byte) (string, error) {
	if p.eof() {
		return "", p.errorf(p.line, "expected value")
	}
	line := p.line
	switch c := p.peek(); {
	case c == '{':
		p.advance()
		start := p.pos
		depth := 1
		for !p.eof() {
			switch p.peek() {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					v := p.src[start:p.pos]
					p.advance()
					return v, nil
				}
			}
			p.advance()
		}
		return "", p.errorf(line, "unbalanced braces in value")
	case c == '"':
		p.advance()
		start := p.pos
		depth := 0
		for !p.eof() {
			switch p.peek() {
			case '{':
				depth++
			case '}':
				depth--
			case '"':
				if depth == 0 && p.src[p.pos-1] != '\\' {
					v := p.src[start:p.pos]
					p.advance()
					return v, nil
				}
			}
			p.advance()
		}
		return "", p.errorf(line, "unterminated quoted value")
	default:
		word := p.readWhile(func(r byte) bool {
			return r != ',' && r != '#' && r != closer && !isSpace(r)
		})
		if word == "" {
			return "", p.errorf(line, "expected value")
		}
		if v, ok := p.macros[strings.ToLower(word)]; ok {
			return v, nil
		}
		return word, nil
	}
}

// skipBlock skips a balanced block whose opening delimiter was consumed.
func (p *parser) skipBlock(closer byte, startLine int) error {
	depth := 0
	for !p.eof() {
		c := p.peek()
		p.advance()
		switch {
		case c == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		case c == closer && depth == 0:
			return nil
		}
	}
	return p.errorf(startLine, "unterminated block")
}

func (p *parser) openDelim() (byte, bool) {
	if p.eof() {
		return 0, false
	}
	switch p.peek() {
	case '{':
		p.advance()
		return '}', true
	case '(':
		p.advance()
		return ')', true
	}
	return 0, false
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte { return p.src[p.pos] }

func (p *parser) advance() {
	if p.src[p.pos] == '\n' {
		p.line++
	}
	p.pos++
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.peek()) {
		p.advance()
	}
}

func (p *parser) readWhile(ok func(byte) bool) string {
	start := p.pos
	for !p.eof() && ok(p.peek()) {
		p.advance()
	}
	return p.src[start:p.pos]
}

func (p *parser) errorf(line int, format string, args ...any) error {
	return &errors.ParseError{
		Format:  "bibtex",
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isNameChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return c == '_' || c == '-' || c == ':' || c == '.' || c == '+' || c == '/'
}
