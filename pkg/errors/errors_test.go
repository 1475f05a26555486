package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/venuemap/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "template",
			ID:       "NeurIPS/2020",
		}
		assert.Equal(t, "template with ID NeurIPS/2020 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("template", "x")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("venue", "", "cannot be empty")
		assert.Equal(t, "validation failed for field venue: cannot be empty", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "bad document"}
		assert.Equal(t, "validation failed: bad document", err.Error())
	})
}

func TestMissingKeyError(t *testing.T) {
	tests := []struct {
		name  string
		venue string
		year  string
		want  string
	}{
		{name: "no venue", year: "2020", want: "entry e1: missing venue"},
		{name: "no year", venue: "ICML", want: "entry e1: missing year"},
		{name: "neither", want: "entry e1: missing venue and year"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pkgerrors.NewMissingKeyError("e1", tt.venue, tt.year)
			assert.Equal(t, tt.want, err.Error())
			assert.True(t, pkgerrors.IsMissingKey(err))
			assert.False(t, pkgerrors.IsFatal(err))
		})
	}
}

func TestPerEntryErrors(t *testing.T) {
	noMatch := pkgerrors.NewNoTemplateMatchError("e2", "Some New Workshop", "2099")
	assert.True(t, pkgerrors.IsNoTemplate(noMatch))
	assert.Contains(t, noMatch.Error(), `"Some New Workshop"`)

	conflict := pkgerrors.NewConflictError("abc123", "acronym", "NIPS", "NeurIPS")
	assert.True(t, pkgerrors.IsConflict(conflict))
	assert.Contains(t, conflict.Error(), "acronym")
	assert.False(t, pkgerrors.IsFatal(conflict))

	unresolved := pkgerrors.NewUnresolvedPatchError([]string{"a", "b"})
	assert.True(t, pkgerrors.IsUnresolvedPatch(unresolved))
	assert.Equal(t, "2 patch(es) not applied, no matching entry header for: a, b", unresolved.Error())
}

func TestFatalErrors(t *testing.T) {
	base := errors.New("disk full")

	tests := []struct {
		name string
		err  error
	}{
		{"source read", pkgerrors.NewSourceReadError("refs.bib", base)},
		{"store load", pkgerrors.NewStoreLoadError("templates.yaml", base)},
		{"destination write", pkgerrors.NewDestinationWriteError("templates.yaml", "templates.yaml.bak", base)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, pkgerrors.IsFatal(tt.err))
			assert.True(t, errors.Is(tt.err, base))

			wrapped := fmt.Errorf("run: %w", tt.err)
			assert.True(t, pkgerrors.IsFatal(wrapped))
		})
	}

	t.Run("destination write names backup", func(t *testing.T) {
		err := pkgerrors.NewDestinationWriteError("t.yaml", "t.yaml.bak", base)
		assert.Contains(t, err.Error(), "t.yaml.bak")
	})
}

func TestParseError(t *testing.T) {
	t.Run("with line only", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "bibtex", Line: 12, Message: "unterminated entry"}
		assert.Equal(t, "bibtex parse error at line 12: unterminated entry", err.Error())
	})

	t.Run("wrap", func(t *testing.T) {
		base := errors.New("mapping values are not allowed")
		err := pkgerrors.WrapParse("yaml", "templates.yaml", base)
		require.Error(t, err)
		assert.True(t, errors.Is(err, base))
		assert.Nil(t, pkgerrors.WrapParse("yaml", "x", nil))
	})
}

func TestIOError(t *testing.T) {
	base := errors.New("permission denied")
	err := pkgerrors.WrapIO("write", "/tmp/out.bib", base)
	require.Error(t, err)
	assert.Equal(t, "IO error during write of /tmp/out.bib: permission denied", err.Error())

	var ioErr *pkgerrors.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "write", ioErr.Operation)
	assert.Nil(t, pkgerrors.WrapIO("write", "x", nil))
}

func TestResourceError(t *testing.T) {
	err := pkgerrors.WrapResource("load", "store", "templates.yaml", errors.New("boom"))
	assert.Equal(t, "failed to load store templates.yaml: boom", err.Error())
}
