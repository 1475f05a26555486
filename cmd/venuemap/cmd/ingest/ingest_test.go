package ingest

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/venuemap"
	"github.com/agentstation/venuemap/internal/cmd/application"
	"github.com/agentstation/venuemap/internal/cmd/output"
)

const storeDoc = `- venue: NeurIPS
  year: "2020"
  fields:
    acronym: NeurIPS
`

const source = `@inproceedings{abc123, booktitle = {NeurIPS}, year = {2020}}
@inproceedings{nips, booktitle = {NeurIPS}, year = {2020}, acronym = {NIPS}}
@inproceedings{w1, booktitle = {Some New Workshop}, year = {2099}, address = {Online}}
`

func setup(t *testing.T, format string) (*application.Mock, string, string) {
	t.Helper()
	dir := t.TempDir()
	store := filepath.Join(dir, "templates.yaml")
	input := filepath.Join(dir, "new.bib")
	require.NoError(t, os.WriteFile(store, []byte(storeDoc), 0o644))
	require.NoError(t, os.WriteFile(input, []byte(source), 0o644))

	mock := &application.Mock{
		ClientFunc: func() (venuemap.Client, error) {
			return venuemap.New(venuemap.WithTemplatesPath(store))
		},
		OutputFormatFunc: func() string { return format },
	}
	return mock, store, input
}

func TestExecuteIngestReportOnly(t *testing.T) {
	mock, store, input := setup(t, "table")

	var out, errOut bytes.Buffer
	require.NoError(t, ExecuteIngest(context.Background(), mock, input, &Flags{}, &out, &errOut))

	assert.Contains(t, out.String(), "# + new Some New Workshop/2099")
	assert.Contains(t, out.String(), "address: Online")
	assert.Contains(t, out.String(), "# ~ updated NeurIPS/2020")
	assert.Contains(t, out.String(), "Conflicts:")
	assert.Contains(t, errOut.String(), "report only")
	assert.Contains(t, errOut.String(), "new=1, skipped_missing=0, skipped_existing=1, existing_updated=1")
	assert.Contains(t, errOut.String(), "venuemap ingest "+input+" --update")

	data, err := os.ReadFile(store)
	require.NoError(t, err)
	assert.Equal(t, storeDoc, string(data))
}

func TestExecuteIngestUpdate(t *testing.T) {
	mock, store, input := setup(t, "table")

	var out, errOut bytes.Buffer
	require.NoError(t, ExecuteIngest(context.Background(), mock, input, &Flags{Update: true}, &out, &errOut))

	assert.Contains(t, errOut.String(), "wrote "+store+" (2 templates)")
	assert.Contains(t, errOut.String(), "backup: "+store+".bak")
	assert.FileExists(t, store+".bak")

	data, err := os.ReadFile(store)
	require.NoError(t, err)
	assert.Contains(t, string(data), "acronym: NIPS")
	assert.Contains(t, string(data), "venue: Some New Workshop")
}

func TestExecuteIngestYAML(t *testing.T) {
	mock, _, input := setup(t, "yaml")

	var out, errOut bytes.Buffer
	require.NoError(t, ExecuteIngest(context.Background(), mock, input, &Flags{}, &out, &errOut))

	var report output.IngestReport
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &report))
	assert.False(t, report.Update)
	require.Len(t, report.Templates, 2)
	assert.True(t, report.Templates[0].New)
	assert.Equal(t, "NeurIPS", report.Templates[1].Venue)
	require.Len(t, report.Conflicts, 1)
	assert.True(t, report.Conflicts[0].Applied)
}

func TestExecuteIngestBadStore(t *testing.T) {
	mock, store, input := setup(t, "table")
	require.NoError(t, os.WriteFile(store, []byte("- venue: [unclosed\n"), 0o644))

	var out, errOut bytes.Buffer
	err := ExecuteIngest(context.Background(), mock, input, &Flags{Update: true}, &out, &errOut)
	require.Error(t, err)
	assert.Contains(t, errOut.String(), "ingestion failed")
}
