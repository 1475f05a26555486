package complete

import (
	"context"
	"fmt"
	"io"

	"github.com/agentstation/venuemap"
	"github.com/agentstation/venuemap/internal/cmd/alerts"
	"github.com/agentstation/venuemap/internal/cmd/application"
	"github.com/agentstation/venuemap/internal/cmd/hints"
	"github.com/agentstation/venuemap/internal/cmd/output"
)

// ExecuteComplete runs a completion of input and renders the outcome.
// Tables and the patched-file status go to out; alerts go to errOut.
// Per-entry problems are reported but do not fail the command.
func ExecuteComplete(ctx context.Context, app application.Application, input string, flags *Flags, out, errOut io.Writer) error {
	logger := app.Logger()
	format := output.Format(app.OutputFormat())
	notify := alerts.NewFormatWriter(errOut, format)

	client, err := app.Client()
	if err != nil {
		return err
	}

	res, err := client.Complete(ctx, input, flags.Options()...)
	if err != nil {
		_ = notify.WriteAlert(alerts.NewError("completion failed").WithError(err))
		if format.IsTable() {
			_ = hints.Write(errOut, hints.Default().GetHints(hints.Context{Command: "complete", Input: input, Err: err}))
		}
		return err
	}
	logger.Debug().Str("summary", res.Summary()).Dur("duration", res.Duration).Msg("Completion finished")

	report := output.NewCompleteReport(res)
	if !format.IsTable() {
		return output.NewFormatter(format).Format(out, report)
	}

	if res.DryRun {
		if err := output.Tables(out, format,
			output.AdditionsTable(report.Additions),
			output.ConflictsTable(report.Conflicts),
			output.MissingTable(report.Missing),
		); err != nil {
			return err
		}
	}

	if err := notify.WriteAlert(summaryAlert(res)); err != nil {
		return err
	}
	return hints.Write(errOut, hints.Default().GetHints(hints.Context{
		Command:    "complete",
		Input:      input,
		Succeeded:  true,
		DryRun:     res.DryRun,
		Missing:    len(res.Missing),
		Conflicts:  len(res.Conflicts),
		Unresolved: len(res.Patch.Unresolved),
	}))
}

func summaryAlert(res *venuemap.CompleteResult) *alerts.Alert {
	var a *alerts.Alert
	switch {
	case res.DryRun:
		a = alerts.NewInfo("dry run, no output written")
	case len(res.Patch.Unresolved) > 0:
		a = alerts.NewWarning(fmt.Sprintf("wrote %s", res.Output)).WithError(res.Unresolved())
	default:
		a = alerts.NewSuccess(fmt.Sprintf("wrote %s", res.Output))
	}

	a.WithDetails(res.Summary())
	if !res.DryRun {
		a.WithDetails(fmt.Sprintf("inserted %d field(s) into %d entries", res.Patch.Inserted, len(res.Patch.Applied)))
	}
	if res.Logs.Conflicts != "" {
		a.WithDetails("logs: "+res.Logs.Conflicts, "      "+res.Logs.Missing)
	}
	for _, w := range res.Warnings {
		a.WithDetails("warning: " + w)
	}
	return a
}
