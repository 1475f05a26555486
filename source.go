package venuemap

import (
	"os"

	"github.com/agentstation/venuemap/pkg/bibtex"
	"github.com/agentstation/venuemap/pkg/errors"
)

// source is one bibliography file read fully into memory.
type source struct {
	path    string
	text    string
	entries []bibtex.Entry
}

// readSource reads and parses path. Both failures are fatal
// *errors.SourceReadError values.
func readSource(path string) (*source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewSourceReadError(path, err)
	}
	entries, err := bibtex.Parse(string(data))
	if err != nil {
		var perr *errors.ParseError
		if errors.As(err, &perr) {
			perr.File = path
		}
		return nil, errors.NewSourceReadError(path, err)
	}
	return &source{path: path, text: string(data), entries: entries}, nil
}

// ReadEntries reads and parses the bibliography file at path. Failures are
// *errors.SourceReadError values.
func ReadEntries(path string) ([]bibtex.Entry, error) {
	src, err := readSource(path)
	if err != nil {
		return nil, err
	}
	return src.entries, nil
}
