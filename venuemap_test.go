package venuemap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/venuemap/internal/persistence"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/reconcile"
	"github.com/agentstation/venuemap/pkg/templates"
)

const storeDoc = `# Canonical venue templates, newest year first.
- venue: NeurIPS
  year: "2020"
  fields:
    acronym: NeurIPS
    rank: A*
`

const sourceText = `% conference papers
@inproceedings{abc123,
  booktitle = {{NeurIPS}},
  year = {2020},
}

@inproceedings{nips,
  booktitle = {NeurIPS},
  year = {2020},
  acronym = {NIPS},
  rank = {A*},
}

@inproceedings{w1, booktitle = {Some New Workshop}, year = {2099}}
@inproceedings{w2, booktitle = {some new workshop}, year = {2099}}
`

type fixture struct {
	dir       string
	templates string
	input     string
	client    Client
}

func newFixture(t *testing.T, opts ...Option) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:       dir,
		templates: filepath.Join(dir, "templates.yaml"),
		input:     filepath.Join(dir, "refs.bib"),
	}
	require.NoError(t, os.WriteFile(f.templates, []byte(storeDoc), 0o644))
	require.NoError(t, os.WriteFile(f.input, []byte(sourceText), 0o644))

	opts = append([]Option{WithTemplatesPath(f.templates), WithLogDir(filepath.Join(dir, "logs"))}, opts...)
	c, err := New(opts...)
	require.NoError(t, err)
	f.client = c
	return f
}

func TestCompleteDryRun(t *testing.T) {
	f := newFixture(t)
	var conflicts []reconcile.Conflict
	f.client.OnConflict(func(c reconcile.Conflict) { conflicts = append(conflicts, c) })

	res, err := f.client.Complete(context.Background(), f.input)
	require.NoError(t, err)
	assert.True(t, res.DryRun)
	require.Len(t, res.Patches, 1)
	assert.Equal(t, "abc123", res.Patches[0].EntryID)
	assert.Len(t, conflicts, 1)
	assert.Empty(t, res.Patch.Lines)

	missing, err := os.ReadFile(res.Logs.Missing)
	require.NoError(t, err)
	assert.Equal(t, "missing templates: venue\tyear\nSome New Workshop\t2099\n", string(missing))

	conflictLog, err := os.ReadFile(res.Logs.Conflicts)
	require.NoError(t, err)
	assert.Contains(t, string(conflictLog), "nips\tacronym\tEXISTING=NIPS\tTEMPLATE=NeurIPS")

	data, err := os.ReadFile(f.input)
	require.NoError(t, err)
	assert.Equal(t, sourceText, string(data), "dry run must not touch the input")
}

func TestCompleteWritesOutput(t *testing.T) {
	f := newFixture(t)
	output := filepath.Join(f.dir, "out.bib")

	res, err := f.client.Complete(context.Background(), f.input, WithOutput(output), WithLogs(false))
	require.NoError(t, err)
	assert.False(t, res.DryRun)
	assert.Empty(t, res.Logs.Conflicts)
	assert.NoError(t, res.Unresolved())
	assert.Equal(t, 2, res.Patch.Inserted)

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(got), "@inproceedings{abc123,\n  acronym      = {NeurIPS},\n  rank         = {A*},\n  booktitle = {{NeurIPS}},\n")
	assert.Contains(t, string(got), "  acronym = {NIPS},\n")
}

func TestCompleteUnresolvedPatch(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.input, []byte("@inproceedings{one, booktitle = {NeurIPS}, year = {2020}}\n"), 0o644))

	var unresolved []string
	f.client.OnUnresolvedPatch(func(id string) { unresolved = append(unresolved, id) })

	res, err := f.client.Complete(context.Background(), f.input, WithOutput(filepath.Join(f.dir, "out.bib")))
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, unresolved)
	assert.True(t, errors.IsUnresolvedPatch(res.Unresolved()))
}

func TestCompleteFatalErrors(t *testing.T) {
	t.Run("missing store", func(t *testing.T) {
		f := newFixture(t, WithTemplatesPath(filepath.Join(t.TempDir(), "none.yaml")))
		output := filepath.Join(f.dir, "out.bib")
		_, err := f.client.Complete(context.Background(), f.input, WithOutput(output))
		require.Error(t, err)
		assert.True(t, errors.IsFatal(err))
		assert.NoFileExists(t, output)
	})

	t.Run("unparsable source", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, os.WriteFile(f.input, []byte("@article{a, title = {x}\n"), 0o644))
		output := filepath.Join(f.dir, "out.bib")
		_, err := f.client.Complete(context.Background(), f.input, WithOutput(output))
		require.Error(t, err)
		assert.True(t, errors.IsFatal(err))
		assert.NoFileExists(t, output)
	})
}

func TestCompleteOutputFailureWritesNoLogs(t *testing.T) {
	f := newFixture(t)
	output := filepath.Join(f.dir, "out.bib")
	require.NoError(t, os.Mkdir(output, 0o755))

	_, err := f.client.Complete(context.Background(), f.input, WithOutput(output))
	require.Error(t, err)
	assert.NoDirExists(t, filepath.Join(f.dir, "logs"))
}

func TestIngestReportOnly(t *testing.T) {
	f := newFixture(t)
	var added []templates.Key
	f.client.OnTemplateAdded(func(k templates.Key) { added = append(added, k) })

	res, err := f.client.Ingest(context.Background(), f.input)
	require.NoError(t, err)
	assert.Nil(t, res.Regenerated)
	assert.Equal(t, "new=1, skipped_missing=0, skipped_existing=2, existing_updated=1", res.Summary())
	assert.Equal(t, []templates.Key{{Venue: "Some New Workshop", Year: "2099"}}, added)

	require.Len(t, res.Snippets, 2)
	assert.True(t, res.Snippets[0].New)
	assert.Contains(t, res.Snippets[1].YAML, "acronym: NIPS")

	data, err := os.ReadFile(f.templates)
	require.NoError(t, err)
	assert.Equal(t, storeDoc, string(data))
}

func TestIngestUpdate(t *testing.T) {
	f := newFixture(t)

	res, err := f.client.Ingest(context.Background(), f.input, WithUpdate(true))
	require.NoError(t, err)
	require.NotNil(t, res.Regenerated)
	assert.Equal(t, f.templates+".bak", res.Regenerated.Backup)

	backup, err := os.ReadFile(res.Regenerated.Backup)
	require.NoError(t, err)
	assert.Equal(t, storeDoc, string(backup))

	store, err := templates.Load(f.templates)
	require.NoError(t, err)
	exported := store.Export(nil)
	require.Len(t, exported, 2)
	assert.Equal(t, "Some New Workshop", exported[0].Key.Venue)
	assert.Equal(t, "NIPS", exported[1].Fields.Value("acronym"))
}

func TestIngestLineContinuationVenue(t *testing.T) {
	f := newFixture(t)
	input := "@inproceedings{emnlp,\n" +
		"  booktitle = {Proceedings of the 2020 Conference on\n\tEmpirical Methods},\n" +
		"  year = {2020},\n" +
		"  address = {Online},\n" +
		"}\n"
	require.NoError(t, os.WriteFile(f.input, []byte(input), 0o644))

	for run := 1; run <= 3; run++ {
		res, err := f.client.Ingest(context.Background(), f.input, WithUpdate(true))
		require.NoError(t, err, "run %d", run)
		if run == 1 {
			assert.Equal(t, 1, res.Stats.Added)
		} else {
			assert.Equal(t, 0, res.Stats.Added, "run %d", run)
		}
	}

	store, err := templates.Load(f.templates)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())
	_, ok := store.Get(templates.Key{Venue: "Proceedings of the 2020 Conference on  Empirical Methods", Year: "2020"})
	assert.True(t, ok)

	res, err := f.client.Complete(context.Background(), f.input, WithLogs(false))
	require.NoError(t, err)
	assert.Empty(t, res.Missing)
	assert.Equal(t, 1, res.Stats.Matched)
}

func TestIngestLocked(t *testing.T) {
	f := newFixture(t)
	lock, err := persistence.Acquire(f.templates)
	require.NoError(t, err)
	defer lock.Release()

	_, err = f.client.Ingest(context.Background(), f.input, WithUpdate(true))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrLocked))

	c, err := New(WithTemplatesPath(f.templates), WithStoreLock(false))
	require.NoError(t, err)
	_, err = c.Ingest(context.Background(), f.input, WithUpdate(true))
	assert.NoError(t, err)
}

func TestNewValidation(t *testing.T) {
	_, err := New(WithTemplatesPath(""))
	assert.Error(t, err)
	_, err = New(WithBackupSuffix(""))
	assert.Error(t, err)
	_, err = New(WithNormalizer(nil))
	assert.Error(t, err)
}
