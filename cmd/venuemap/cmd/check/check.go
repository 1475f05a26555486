package check

import (
	"io"

	"github.com/agentstation/venuemap"
	"github.com/agentstation/venuemap/internal/cmd/application"
	"github.com/agentstation/venuemap/internal/cmd/output"
	"github.com/agentstation/venuemap/pkg/lint"
)

// ExecuteMonths reports the entries of input that lack a month.
func ExecuteMonths(app application.Application, input string, out io.Writer) error {
	entries, err := venuemap.ReadEntries(input)
	if err != nil {
		return err
	}

	found := lint.MissingMonths(entries)
	app.Logger().Debug().Str("input", input).Int("entries", len(entries)).Int("found", len(found)).Msg("Checked months")

	return render(app, out, found, output.MissingMonthsTable(found))
}

// ExecuteProtect reports the title terms of input that need brace protection.
func ExecuteProtect(app application.Application, input string, out io.Writer) error {
	entries, err := venuemap.ReadEntries(input)
	if err != nil {
		return err
	}

	found := lint.UnprotectedTerms(entries)
	app.Logger().Debug().Str("input", input).Int("entries", len(entries)).Int("found", len(found)).Msg("Checked titles")

	return render(app, out, found, output.TermsTable(found))
}

func render(app application.Application, out io.Writer, raw any, table output.Data) error {
	format := output.Format(app.OutputFormat())
	if format.IsTable() {
		return output.Tables(out, format, table)
	}
	return output.NewFormatter(format).Format(out, raw)
}
