package alerts

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/venuemap/internal/cmd/output"
)

func TestAlertString(t *testing.T) {
	a := NewWarning("2 patch(es) not applied").WithError(errors.New("no header"))
	assert.Equal(t, "! 2 patch(es) not applied: no header", a.String())
	assert.Equal(t, "✓ done", NewSuccess("done").String())
}

func TestFormatWriter(t *testing.T) {
	tests := []struct {
		name   string
		format output.Format
		want   []string
	}{
		{"table", output.FormatTable, []string{"✗ store load failed", "   templates.yaml"}},
		{"json", output.FormatJSON, []string{`"level": "error"`, `"details": [`}},
		{"yaml", output.FormatYAML, []string{"level: error", "- templates.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewFormatWriter(&buf, tt.format)
			require.NoError(t, w.WriteAlert(NewError("store load failed").WithDetails("templates.yaml")))
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestMultiWriter(t *testing.T) {
	var a, b bytes.Buffer
	w := MultiWriter(NewWriterTo(&a), NewWriterTo(&b), DiscardWriter)
	require.NoError(t, w.WriteAlert(NewInfo("dry run")))
	assert.Equal(t, "i dry run\n", a.String())
	assert.Equal(t, a.String(), b.String())
}
