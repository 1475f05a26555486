package ingest

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/agentstation/venuemap"
	"github.com/agentstation/venuemap/internal/cmd/alerts"
	"github.com/agentstation/venuemap/internal/cmd/application"
	"github.com/agentstation/venuemap/internal/cmd/emoji"
	"github.com/agentstation/venuemap/internal/cmd/hints"
	"github.com/agentstation/venuemap/internal/cmd/output"
)

// ExecuteIngest runs an ingestion of input and renders the outcome. Template
// snippets and tables go to out; alerts go to errOut.
func ExecuteIngest(ctx context.Context, app application.Application, input string, flags *Flags, out, errOut io.Writer) error {
	logger := app.Logger()
	format := output.Format(app.OutputFormat())
	notify := alerts.NewFormatWriter(errOut, format)

	client, err := app.Client()
	if err != nil {
		return err
	}

	res, err := client.Ingest(ctx, input, flags.Options()...)
	if err != nil {
		_ = notify.WriteAlert(alerts.NewError("ingestion failed").WithError(err))
		if format.IsTable() {
			_ = hints.Write(errOut, hints.Default().GetHints(hints.Context{Command: "ingest", Input: input, Err: err}))
		}
		return err
	}
	logger.Debug().Str("summary", res.Summary()).Dur("duration", res.Duration).Msg("Ingestion finished")

	report := output.NewIngestReport(res)
	if !format.IsTable() {
		return output.NewFormatter(format).Format(out, report)
	}

	if err := writeSnippets(out, report.Templates); err != nil {
		return err
	}
	if len(report.Conflicts) > 0 {
		if err := output.Tables(out, format, output.ConflictsTable(report.Conflicts)); err != nil {
			return err
		}
	}

	if err := notify.WriteAlert(summaryAlert(res)); err != nil {
		return err
	}
	return hints.Write(errOut, hints.Default().GetHints(hints.Context{
		Command:   "ingest",
		Input:     input,
		Succeeded: true,
		Update:    res.Update,
		Changes:   len(report.Templates),
	}))
}

// writeSnippets prints each template block under a one-line marker.
func writeSnippets(w io.Writer, rows []output.SnippetRow) error {
	for _, s := range rows {
		marker, label := emoji.Changed, "updated"
		if s.New {
			marker, label = emoji.Added, "new"
		}
		if _, err := fmt.Fprintf(w, "# %s %s %s/%s\n%s\n", marker, label, s.Venue, s.Year, strings.TrimRight(s.YAML, "\n")); err != nil {
			return err
		}
	}
	return nil
}

func summaryAlert(res *venuemap.IngestResult) *alerts.Alert {
	var a *alerts.Alert
	if res.Regenerated != nil {
		a = alerts.NewSuccess(fmt.Sprintf("wrote %s (%d templates)", res.Regenerated.Path, res.Regenerated.Templates))
		if res.Regenerated.Backup != "" {
			a.WithDetails("backup: " + res.Regenerated.Backup)
		}
	} else {
		a = alerts.NewInfo("report only, store not modified")
	}

	a.WithDetails(res.Summary())
	for _, w := range res.Warnings {
		a.WithDetails("warning: " + w)
	}
	return a
}
