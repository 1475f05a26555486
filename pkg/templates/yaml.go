package templates

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/token"

	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/fields"
)

// Header is the comment written at the top of every encoded store.
const Header = " Canonical venue templates, newest year first."

// block is one template as it appears on disk. Venue and year are decoded
// loosely so unquoted numbers such as `year: 2020` are accepted.
type block struct {
	Venue  any           `yaml:"venue"`
	Year   any           `yaml:"year"`
	Fields yaml.MapSlice `yaml:"fields"`
}

// outBlock is the encoded form. Empty field mappings are omitted so the
// document decodes back into a block.
type outBlock struct {
	Venue  any           `yaml:"venue"`
	Year   any           `yaml:"year"`
	Fields yaml.MapSlice `yaml:"fields,omitempty"`
}

// quoted is a scalar that must be written double-quoted to decode back as
// the same string.
type quoted string

// MarshalYAML implements yaml.BytesMarshaler.
func (q quoted) MarshalYAML() ([]byte, error) {
	return []byte(strconv.Quote(string(q))), nil
}

// Load reads a store from path. A missing or malformed file is a
// StoreLoadError.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewStoreLoadError(path, err)
	}
	s, err := Decode(data)
	if err != nil {
		return nil, errors.NewStoreLoadError(path, err)
	}
	return s, nil
}

// Decode builds a store from YAML. The normalized index is built here, once.
// A raw (venue, year) that appears twice is rejected.
func Decode(data []byte) (*Store, error) {
	s := New()
	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}

	var blocks []block
	if err := yaml.Unmarshal(data, &blocks); err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}

	for i, b := range blocks {
		k := Key{Venue: scalar(b.Venue), Year: scalar(b.Year)}
		if strings.TrimSpace(k.Venue) == "" {
			return nil, errors.NewValidationError(fmt.Sprintf("[%d].venue", i), b.Venue, "cannot be empty")
		}
		if strings.TrimSpace(k.Year) == "" {
			return nil, errors.NewValidationError(fmt.Sprintf("[%d].year", i), b.Year, "cannot be empty")
		}
		if _, dup := s.templates[k]; dup {
			return nil, errors.NewValidationError(fmt.Sprintf("[%d]", i), k.String(), "duplicate venue and year")
		}

		f := &fields.Map{}
		for _, item := range b.Fields {
			name := scalar(item.Key)
			if fields.Key(name) == "" {
				return nil, errors.NewValidationError(fmt.Sprintf("[%d].fields", i), item.Key, "field name cannot be empty")
			}
			switch item.Value.(type) {
			case map[string]any, []any, yaml.MapSlice:
				return nil, errors.NewValidationError(fmt.Sprintf("[%d].fields.%s", i, name), item.Value, "must be a scalar")
			}
			f.Set(name, scalar(item.Value))
		}
		s.insert(k, f)
	}
	return s, nil
}

// Encode renders templates as a YAML document in the given order.
func Encode(templates []Template) ([]byte, error) {
	blocks := make([]outBlock, 0, len(templates))
	comments := yaml.CommentMap{
		"$": []*yaml.Comment{yaml.HeadComment(Header)},
	}
	for i, t := range templates {
		blocks = append(blocks, newOutBlock(t))
		if i > 0 {
			comments[fmt.Sprintf("$[%d]", i)] = []*yaml.Comment{
				yaml.HeadComment(fmt.Sprintf(" %s %s", commentText(t.Key.Venue), commentText(t.Key.Year))),
			}
		}
	}

	if len(blocks) == 0 {
		return []byte("#" + Header + "\n[]\n"), nil
	}

	data, err := yaml.MarshalWithOptions(blocks,
		yaml.Indent(2),
		yaml.IndentSequence(false),
		yaml.WithComment(comments),
	)
	if err != nil {
		return nil, fmt.Errorf("marshaling templates: %w", err)
	}
	return []byte(addBlankLinesBetweenTemplates(string(data))), nil
}

// Snippet renders one template the way it would appear in the store, for
// report-only output.
func Snippet(t Template) (string, error) {
	data, err := yaml.MarshalWithOptions([]outBlock{newOutBlock(t)},
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return "", fmt.Errorf("marshaling template %s: %w", t.Key, err)
	}
	return string(data), nil
}

// Verify decodes data and checks that it holds exactly want, as Encode
// writes it: the same keys, and for each key the same fields in the same
// order with the same values.
func Verify(data []byte, want []Template) error {
	got, err := Decode(data)
	if err != nil {
		return err
	}
	if got.Len() != len(want) {
		return fmt.Errorf("decoded %d templates, want %d", got.Len(), len(want))
	}
	for _, t := range want {
		exp := Cleaned(t)
		dec, ok := got.Get(exp.Key)
		if !ok {
			return fmt.Errorf("template %s is missing after decoding", exp.Key)
		}
		if !slices.Equal(dec.Fields.Fields(), exp.Fields.Fields()) {
			return fmt.Errorf("template %s decodes with fields %v, want %v", exp.Key, dec.Fields.Fields(), exp.Fields.Fields())
		}
	}
	return nil
}

// Cleaned returns t as it reads back after Encode: key and values with
// line breaks and tabs folded to spaces and surrounding whitespace trimmed.
func Cleaned(t Template) Template {
	out := Template{
		Key:    Key{Venue: clean(t.Key.Venue), Year: clean(t.Key.Year)},
		Fields: &fields.Map{},
	}
	for _, f := range t.Fields.Fields() {
		out.Fields.Set(f.Name, clean(f.Value))
	}
	return out
}

func newOutBlock(t Template) outBlock {
	c := Cleaned(t)
	b := outBlock{Venue: scalarValue(c.Key.Venue), Year: scalarValue(c.Key.Year)}
	for _, f := range c.Fields.Fields() {
		b.Fields = append(b.Fields, yaml.MapItem{Key: f.Name, Value: scalarValue(f.Value)})
	}
	return b
}

// scalarValue returns s as a quoted scalar when a plain scalar would not
// decode back to s: control characters, and words YAML reads as numbers,
// infinities, NaN, booleans or null.
func scalarValue(s string) any {
	if strings.ContainsFunc(s, unicode.IsControl) {
		return quoted(s)
	}
	if token.IsNeedQuoted(s) {
		return s
	}
	if token.New(s, s, &token.Position{}).Type != token.StringType {
		return quoted(s)
	}
	return s
}

// commentText keeps a separator comment on one line.
func commentText(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, clean(s))
}

// addBlankLinesBetweenTemplates separates template sections with a blank line.
func addBlankLinesBetweenTemplates(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines)+len(lines)/4)
	for i, line := range lines {
		if strings.HasPrefix(line, "#") && i > 0 {
			result = append(result, "")
		}
		result = append(result, line)
	}
	return strings.Join(result, "\n")
}

// scalar stringifies a decoded YAML scalar. Null becomes the empty string.
func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

var folds = strings.NewReplacer("\r", "", "\n", " ", "\t", " ", "\v", " ", "\f", " ")

// clean folds line breaks and tabs into spaces, drops carriage returns, and
// trims the result.
func clean(s string) string {
	return strings.TrimSpace(folds.Replace(s))
}
