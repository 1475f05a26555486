package check

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/venuemap/internal/cmd/application"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/lint"
)

const source = `@inproceedings{p1, title = {Training BERT on GPT-4 Outputs}, year = {2023}}
@article{a1, title = {A {ResNet} Study}, year = {2021}, month = {jun}}
@misc{m1, title = {Notes}}
@article{a2, title = {LoRA for Everyone}}
`

func writeSource(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "refs.bib")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

func TestExecuteMonths(t *testing.T) {
	input := writeSource(t)
	mock := &application.Mock{OutputFormatFunc: func() string { return "json" }}

	var out bytes.Buffer
	require.NoError(t, ExecuteMonths(mock, input, &out))

	var found []lint.MissingMonth
	require.NoError(t, json.Unmarshal(out.Bytes(), &found))
	assert.Equal(t, []lint.MissingMonth{
		{ID: "p1", Kind: "inproceedings", Year: "2023"},
		{ID: "a2", Kind: "article", Year: "N/A"},
	}, found)
}

func TestExecuteProtectTable(t *testing.T) {
	input := writeSource(t)

	var out bytes.Buffer
	require.NoError(t, ExecuteProtect(&application.Mock{}, input, &out))

	text := out.String()
	assert.Contains(t, text, "Unprotected title terms:")
	assert.Contains(t, text, "BERT")
	assert.Contains(t, text, "GPT")
	assert.Contains(t, text, "LoRA")
	assert.NotContains(t, text, "ResNet")
}

func TestExecuteMissingInput(t *testing.T) {
	err := ExecuteMonths(&application.Mock{}, filepath.Join(t.TempDir(), "absent.bib"), &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
}

func TestNewCommandHasSubcommands(t *testing.T) {
	cmd := NewCommand(&application.Mock{})
	names := []string{}
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"months", "protect"}, names)
}
