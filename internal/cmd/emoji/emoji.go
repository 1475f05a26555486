// Package emoji provides symbol constants for CLI output.
// These symbols keep run summaries and alerts visually consistent across commands.
package emoji

// Status symbols used by alerts and run summaries.
const (
	// Success marks a completed run or a written file.
	Success = "✓"

	// Error marks a fatal failure.
	Error = "✗"

	// Warning marks per-entry problems that did not stop the run:
	// conflicts, missing templates, unresolved patches.
	Warning = "!"

	// Info marks informational lines such as dry-run notices.
	Info = "i"

	// Added marks a template created by ingestion or a field added by completion.
	Added = "+"

	// Changed marks a template updated by ingestion.
	Changed = "~"

	// Skipped marks entries skipped for lack of a venue or year.
	Skipped = "-"

	// Unknown marks an unrecognized state.
	Unknown = "?"
)
