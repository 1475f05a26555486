package reconcile

import (
	"fmt"
	"time"

	"github.com/agentstation/venuemap/pkg/fields"
	"github.com/agentstation/venuemap/pkg/templates"
)

// Patch is the set of fields to insert into one entry.
type Patch struct {
	EntryID string
	Fields  *fields.Map
}

// Result accumulates the per-entry outcomes of one run. Per-entry problems
// land in Errors and Warnings; they never abort the run.
type Result struct {
	Policy Policy

	// Patches are in source order, at most one per entry id.
	Patches   []Patch
	Conflicts []Conflict
	Missing   []MissingKey

	// Added and Updated list the template keys ingestion created or changed,
	// first-seen order. A key created in this run is not repeated in Updated.
	Added   []templates.Key
	Updated []templates.Key

	Stats Statistics

	// Errors holds per-entry errors: missing keys, unmatched keys and
	// conflicts.
	Errors   []error
	Warnings []string

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Statistics counts what happened to each entry.
type Statistics struct {
	Entries int
	Matched int
	// Patched is the number of entries with a non-empty patch.
	Patched int
	// PatchedFields is the total number of fields across all patches.
	PatchedFields int
	Conflicts     int
	NoTemplate    int
	Duplicates    int

	// Ingestion counters.
	Added          int
	Updated        int
	Unchanged      int
	SkippedMissing int
}

// NewResult creates an empty result.
func NewResult(policy Policy) *Result {
	return &Result{
		Policy:    policy,
		Errors:    []error{},
		Warnings:  []string{},
		StartTime: time.Now(),
	}
}

// Finalize records the end time.
func (r *Result) Finalize() {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
}

// PatchMap returns the patches keyed by entry id.
func (r *Result) PatchMap() map[string]*fields.Map {
	out := make(map[string]*fields.Map, len(r.Patches))
	for _, p := range r.Patches {
		out[p.EntryID] = p.Fields
	}
	return out
}

// HasConflicts reports whether any conflict was found.
func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// HasChanges reports whether the run produced patches or store changes.
func (r *Result) HasChanges() bool {
	return len(r.Patches) > 0 || len(r.Added) > 0 || len(r.Updated) > 0
}

// Summary returns a one-line description of the run.
func (r *Result) Summary() string {
	s := r.Stats
	if r.Policy == PolicyIngestion {
		return fmt.Sprintf("new=%d, skipped_missing=%d, skipped_existing=%d, existing_updated=%d",
			s.Added, s.SkippedMissing, s.Unchanged, s.Updated)
	}
	return fmt.Sprintf("entries=%d, patched=%d, fields=%d, conflicts=%d, missing=%d",
		s.Entries, s.Patched, s.PatchedFields, s.Conflicts, len(r.Missing))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}
