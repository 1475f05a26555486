package venuemap

import (
	"context"

	"github.com/agentstation/venuemap/internal/persistence"
	"github.com/agentstation/venuemap/pkg/logging"
	"github.com/agentstation/venuemap/pkg/patch"
	"github.com/agentstation/venuemap/pkg/reconcile"
	"github.com/agentstation/venuemap/pkg/reports"
)

type completeOptions struct {
	output    string
	writeLogs bool
}

// CompleteOption configures a single completion run.
type CompleteOption func(*completeOptions)

// WithOutput sets the file the patched source is written to. Without it the
// run is a dry run.
func WithOutput(path string) CompleteOption {
	return func(o *completeOptions) {
		o.output = path
	}
}

// WithLogs configures whether the conflict and missing-template logs are
// written. They are by default.
func WithLogs(enabled bool) CompleteOption {
	return func(o *completeOptions) {
		o.writeLogs = enabled
	}
}

// CompleteResult is the outcome of a completion run.
type CompleteResult struct {
	Input  string
	Output string
	DryRun bool

	*reconcile.Result

	// Patch is empty on a dry run.
	Patch patch.Result
	// Logs is empty when logs were disabled.
	Logs reports.Paths
}

// Unresolved returns an *errors.UnresolvedPatchError when some patches could
// not be applied, and nil otherwise.
func (r *CompleteResult) Unresolved() error {
	return r.Patch.Err()
}

// Complete fills missing template fields into the entries of input.
//
// The store and the source are read first; failing either aborts the run
// before anything is written. Then the logs are written, and finally the
// patched source when an output is set. Patches that find no entry header
// are reported through the result and the OnUnresolvedPatch hooks; they do
// not fail the run.
func (c *client) Complete(ctx context.Context, input string, opts ...CompleteOption) (*CompleteResult, error) {
	o := &completeOptions{writeLogs: true}
	for _, opt := range opts {
		opt(o)
	}

	ctx = logging.WithOperation(logging.WithInput(ctx, input), "complete")
	logger := logging.FromContext(ctx)

	store, err := c.LoadStore()
	if err != nil {
		return nil, err
	}
	src, err := readSource(input)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("entries", len(src.entries)).Int("templates", store.Len()).Msg("Loaded input")
	for _, amb := range store.Ambiguities() {
		logger.Warn().Str("kept", amb.Kept.String()).Str("shadowed", amb.Shadowed.String()).Msg("Templates share a normalized key")
	}

	r, err := reconcile.New(store,
		reconcile.WithPolicy(reconcile.PolicyCompletion),
		reconcile.WithNormalizer(c.config.normalize),
	)
	if err != nil {
		return nil, err
	}
	result := r.Run(ctx, src.entries)
	c.triggerResult(result)

	res := &CompleteResult{
		Input:  input,
		Output: o.output,
		DryRun: o.output == "",
		Result: result,
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The patched source goes first so a failed write leaves no logs behind.
	if !res.DryRun {
		res.Patch = patch.Apply(patch.SplitLines(src.text), result.Patches)
		if err := persistence.WriteFile(o.output, []byte(res.Patch.String())); err != nil {
			return nil, err
		}
		if len(res.Patch.Unresolved) > 0 {
			logger.Warn().Strs("entries", res.Patch.Unresolved).Msg("Patches not applied")
			c.triggerUnresolved(res.Patch.Unresolved)
		}
		logger.Info().
			Str("output", o.output).
			Int("patched", len(res.Patch.Applied)).
			Int("fields", res.Patch.Inserted).
			Msg("Wrote patched source")
	}

	if o.writeLogs {
		paths, err := reports.Write(c.config.logDir, input, result)
		if err != nil {
			return nil, err
		}
		res.Logs = paths
		logger.Debug().Str("conflicts", paths.Conflicts).Str("missing", paths.Missing).Msg("Wrote logs")
	}

	return res, nil
}
