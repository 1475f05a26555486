package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/venuemap/pkg/logging"
)

func TestSetDefault(t *testing.T) {
	original := *logging.Default()
	defer logging.SetDefault(original)

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf))

	logging.FromContext(context.Background()).Warn().Str("field", "acronym").Msg("warning message")
	assert.Contains(t, buf.String(), "warning message")
	assert.Contains(t, buf.String(), `"field":"acronym"`)
}

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithRunID(ctx, "run-1")
	ctx = logging.WithOperation(logging.WithInput(ctx, "refs.bib"), "complete")
	ctx = logging.WithVenue(logging.WithEntry(ctx, "abc123"), "NeurIPS", "2020")

	logging.FromContext(ctx).Info().Msg("matched")

	for _, want := range []string{
		`"run_id":"run-1"`,
		`"input":"refs.bib"`,
		`"operation":"complete"`,
		`"entry_id":"abc123"`,
		`"venue":"NeurIPS"`,
		`"year":"2020"`,
	} {
		testLogger.AssertContains(t, want)
	}
	assert.Equal(t, "run-1", logging.RunID(ctx))
	assert.Len(t, testLogger.Lines(), 1)
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Equal(t, logging.Default(), logging.FromContext(nil))
	assert.Equal(t, "", logging.RunID(context.Background()))
}

func TestNewLoggerFromConfig(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(originalLevel)

	path := filepath.Join(t.TempDir(), "run.log")
	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:     "warn",
		Format:    "auto",
		Output:    path,
		AddCaller: true,
	})

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"message":"shown"`, "a file is not a terminal, so auto means json")
	assert.Contains(t, out, `"caller":`)
}

func TestNewLoggerFromConfigLevels(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(originalLevel)

	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{"WARNING", zerolog.WarnLevel},
		{"off", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := logging.NewLoggerFromConfig(&logging.Config{Level: tt.level, Output: "discard"})
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := logging.DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.False(t, cfg.AddCaller)
}
