package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/venuemap/pkg/bibtex"
)

func TestMissingMonths(t *testing.T) {
	entries, err := bibtex.Parse(`@inproceedings{a, year = 2020}
@article{b, year = 2021, month = jan}
@misc{c, year = 2019}
@Conference{d, month = { }}
@book{e}
`)
	require.NoError(t, err)

	got := MissingMonths(entries)
	assert.Equal(t, []MissingMonth{
		{ID: "a", Kind: "inproceedings", Year: "2020"},
		{ID: "d", Kind: "conference", Year: "N/A"},
	}, got)
}

func TestScanTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  []Term
	}{
		{
			name:  "mixed case",
			title: "LoRA: Low-Rank Adaptation of Large Language Models",
			want:  []Term{{Term: "LoRA", Reason: ReasonMixedCase}},
		},
		{
			name:  "acronym wins over mixed case for the same term",
			title: "BERT: Pre-training of Deep Bidirectional Transformers",
			want:  []Term{{Term: "BERT", Reason: ReasonAcronym}},
		},
		{
			name:  "numbers",
			title: "Scaling GPT-4 and Llama3",
			want: []Term{
				{Term: "GPT", Reason: ReasonAcronym},
				{Term: "4", Reason: ReasonNumber},
				{Term: "Llama3", Reason: ReasonNumber},
			},
		},
		{
			name:  "longer finding replaces contained one",
			title: "Serving S3LoRA Adapters",
			want:  []Term{{Term: "S3LoRA", Reason: ReasonNumber}},
		},
		{
			name:  "protected spans are ignored",
			title: "{BERT} and {GPT-4} in practice",
		},
		{
			name:  "all caps title is skipped",
			title: "ALL CAPS TITLE",
		},
		{
			name:  "plain title case",
			title: "Learning to Rank",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScanTitle(tt.title))
		})
	}
}

func TestUnprotectedTerms(t *testing.T) {
	entries, err := bibtex.Parse(`@article{x, title = {Training {ResNet} and VGG16}}
@article{y, journal = {J}}
`)
	require.NoError(t, err)

	got := UnprotectedTerms(entries)
	assert.Equal(t, []Term{{EntryID: "x", Term: "VGG16", Reason: ReasonNumber}}, got)
}
