package hints

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	pkgerrors "github.com/agentstation/venuemap/pkg/errors"
)

// Default returns a registry with the standard venuemap providers.
func Default() *Registry {
	r := NewRegistry()
	RegisterProviders(r)
	return r
}

// RegisterProviders registers all standard hint providers.
func RegisterProviders(registry *Registry) {
	registry.RegisterFunc("errors", errorHintProvider)
	registry.RegisterFunc("complete", completeHintProvider)
	registry.RegisterFunc("ingest", ingestHintProvider)
}

// errorHintProvider suggests recovery steps for fatal errors.
func errorHintProvider(ctx Context) []*Hint {
	if ctx.Succeeded || ctx.Err == nil {
		return nil
	}

	var (
		loadErr  *pkgerrors.StoreLoadError
		writeErr *pkgerrors.DestinationWriteError
	)
	switch {
	case errors.Is(ctx.Err, pkgerrors.ErrLocked):
		return []*Hint{New(
			"Another ingestion holds the template store; wait for it to finish",
		).WithTags("troubleshooting", "lock")}
	case errors.As(ctx.Err, &loadErr):
		return []*Hint{NewCommand(
			"Point at another template store",
			fmt.Sprintf("venuemap %s %s --templates PATH", ctx.Command, ctx.Input),
		).WithTags("troubleshooting", "store")}
	case errors.As(ctx.Err, &writeErr) && writeErr.Backup != "":
		return []*Hint{New(
			"The store may be partially written; restore it from " + writeErr.Backup,
		).WithTags("troubleshooting", "store")}
	}
	return nil
}

// completeHintProvider suggests follow-ups after a completion run.
func completeHintProvider(ctx Context) []*Hint {
	if ctx.Command != "complete" || !ctx.Succeeded {
		return nil
	}

	var hints []*Hint
	if ctx.DryRun {
		hints = append(hints, NewCommand(
			"Write the completed bibliography",
			fmt.Sprintf("venuemap complete %s --output %s", ctx.Input, outputName(ctx.Input)),
		).WithTags("next-step"))
	}
	if ctx.Missing > 0 {
		hints = append(hints, NewCommand(
			fmt.Sprintf("%d venue/year pair(s) have no template; add them from this file", ctx.Missing),
			fmt.Sprintf("venuemap ingest %s --update", ctx.Input),
		).WithTags("next-step", "store"))
	}
	if ctx.Unresolved > 0 {
		hints = append(hints, New(
			"Some entries were not patched because their header line was not found; check that each entry starts its own line",
		).WithTags("troubleshooting"))
	}
	return hints
}

// ingestHintProvider suggests follow-ups after an ingestion run.
func ingestHintProvider(ctx Context) []*Hint {
	if ctx.Command != "ingest" || !ctx.Succeeded || ctx.Update || ctx.Changes == 0 {
		return nil
	}
	return []*Hint{NewCommand(
		"Apply these templates to the store",
		fmt.Sprintf("venuemap ingest %s --update", ctx.Input),
	).WithTags("next-step", "store")}
}

// outputName suggests refs.out.bib for refs.bib.
func outputName(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + ".out" + ext
}
