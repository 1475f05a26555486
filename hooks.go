package venuemap

import (
	"sync"

	"github.com/agentstation/venuemap/pkg/reconcile"
	"github.com/agentstation/venuemap/pkg/templates"
)

// Hook function types for reconciliation events
type (
	// TemplateAddedHook is called when ingestion creates a template
	TemplateAddedHook func(key templates.Key)

	// TemplateUpdatedHook is called when ingestion changes a template
	TemplateUpdatedHook func(key templates.Key)

	// ConflictHook is called for each field conflict
	ConflictHook func(conflict reconcile.Conflict)

	// UnresolvedPatchHook is called for each patch that found no entry header
	UnresolvedPatchHook func(entryID string)
)

// hooks manages event callbacks for run outcomes
type hooks struct {
	mu                sync.RWMutex
	onTemplateAdded   []TemplateAddedHook
	onTemplateUpdated []TemplateUpdatedHook
	onConflict        []ConflictHook
	onUnresolved      []UnresolvedPatchHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnTemplateAdded registers a callback for when templates are added
func (h *hooks) OnTemplateAdded(fn TemplateAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onTemplateAdded = append(h.onTemplateAdded, fn)
}

// OnTemplateUpdated registers a callback for when templates are updated
func (h *hooks) OnTemplateUpdated(fn TemplateUpdatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onTemplateUpdated = append(h.onTemplateUpdated, fn)
}

// OnConflict registers a callback for field conflicts
func (h *hooks) OnConflict(fn ConflictHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onConflict = append(h.onConflict, fn)
}

// OnUnresolvedPatch registers a callback for unresolved patches
func (h *hooks) OnUnresolvedPatch(fn UnresolvedPatchHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onUnresolved = append(h.onUnresolved, fn)
}

// triggerResult fires the hooks for a reconciliation result
func (h *hooks) triggerResult(result *reconcile.Result) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range result.Conflicts {
		for _, fn := range h.onConflict {
			fn(c)
		}
	}
	for _, k := range result.Added {
		for _, fn := range h.onTemplateAdded {
			fn(k)
		}
	}
	for _, k := range result.Updated {
		for _, fn := range h.onTemplateUpdated {
			fn(k)
		}
	}
}

// triggerUnresolved fires the unresolved patch hooks
func (h *hooks) triggerUnresolved(ids []string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, id := range ids {
		for _, fn := range h.onUnresolved {
			fn(id)
		}
	}
}
