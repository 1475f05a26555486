package reports

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/venuemap/pkg/reconcile"
)

func TestPathsFor(t *testing.T) {
	p := PathsFor("logs", "/data/refs/main.bib")
	assert.Equal(t, filepath.Join("logs", "main.bib.conflicts.txt"), p.Conflicts)
	assert.Equal(t, filepath.Join("logs", "main.bib.missing_templates.txt"), p.Missing)

	p = PathsFor("", "main.bib")
	assert.Equal(t, "main.bib.conflicts.txt", p.Conflicts)
}

func TestRender(t *testing.T) {
	assert.Equal(t, "missing templates: venue\tyear\n(none)\n", Render(MissingHeader, nil))
	assert.Equal(t, "h\na\nb\n", Render("h", []string{"a", "b"}))
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	result := &reconcile.Result{
		Conflicts: []reconcile.Conflict{
			{EntryID: "abc123", Field: "acronym", Existing: "NIPS", Template: "NeurIPS"},
		},
		Missing: []reconcile.MissingKey{
			{Venue: "Some New Workshop", Year: "2099", Count: 3},
		},
	}

	paths, err := Write(dir, "refs.bib", result)
	require.NoError(t, err)

	conflicts, err := os.ReadFile(paths.Conflicts)
	require.NoError(t, err)
	assert.Equal(t, "conflicts: entry_id\tfield\texisting\ttemplate\nabc123\tacronym\tEXISTING=NIPS\tTEMPLATE=NeurIPS\n", string(conflicts))

	missing, err := os.ReadFile(paths.Missing)
	require.NoError(t, err)
	assert.Equal(t, "missing templates: venue\tyear\nSome New Workshop\t2099\n", string(missing))
}
