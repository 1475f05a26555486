// Package hints suggests the next command after a run, such as writing the
// patched file after a dry run or ingesting entries whose venue has no
// template.
package hints

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Hint represents actionable user guidance.
type Hint struct {
	Message string   // Human-readable guidance message
	Command string   // Optional specific command to run
	Tags    []string // For context-aware filtering
}

// New creates a new hint with the given message.
func New(message string) *Hint {
	return &Hint{Message: message}
}

// NewCommand creates a new hint with a specific command.
func NewCommand(message, command string) *Hint {
	return &Hint{Message: message, Command: command}
}

// WithTags adds tags to the hint for context-aware filtering.
func (h *Hint) WithTags(tags ...string) *Hint {
	h.Tags = append(h.Tags, tags...)
	return h
}

// HasTag checks if the hint has a specific tag.
func (h *Hint) HasTag(tag string) bool {
	return slices.Contains(h.Tags, tag)
}

// String returns the hint message and, when set, the command on its own line.
func (h *Hint) String() string {
	parts := []string{"hint: " + h.Message}
	if h.Command != "" {
		parts = append(parts, "   Run: "+h.Command)
	}
	return strings.Join(parts, "\n")
}

// Context describes the run that just finished.
type Context struct {
	Command   string // complete, ingest, check
	Input     string
	Succeeded bool
	Err       error

	// Completion
	DryRun     bool
	Missing    int
	Conflicts  int
	Unresolved int

	// Ingestion
	Update  bool
	Changes int
}

// Provider generates contextual hints based on the current context.
type Provider interface {
	GetHints(ctx Context) []*Hint
	Name() string
}

// ProviderFunc is an adapter to allow functions to be used as Providers.
type ProviderFunc func(Context) []*Hint

// GetHints calls the function.
func (f ProviderFunc) GetHints(ctx Context) []*Hint {
	return f(ctx)
}

// Name returns the function name (generic).
func (f ProviderFunc) Name() string {
	return "func"
}

// Registry manages hint providers and generates contextual hints.
type Registry struct {
	providers []Provider
	config    RegistryConfig
}

// RegistryConfig configures hint generation behavior.
type RegistryConfig struct {
	MaxHints    int      // Maximum number of hints to return
	ExcludeTags []string // Exclude hints with these tags
	Enabled     bool     // Whether hints are enabled
}

// NewRegistry creates a new hint registry.
func NewRegistry() *Registry {
	return &Registry{
		config: RegistryConfig{
			MaxHints: 2,
			Enabled:  true,
		},
	}
}

// WithConfig sets the registry configuration.
func (r *Registry) WithConfig(config RegistryConfig) *Registry {
	r.config = config
	return r
}

// Register adds a hint provider to the registry.
func (r *Registry) Register(provider Provider) {
	r.providers = append(r.providers, provider)
}

// RegisterFunc registers a function as a hint provider.
func (r *Registry) RegisterFunc(name string, fn func(Context) []*Hint) {
	r.Register(&namedProvider{name: name, fn: ProviderFunc(fn)})
}

// GetHints generates hints for the given context, in provider order.
func (r *Registry) GetHints(ctx Context) []*Hint {
	if !r.config.Enabled {
		return nil
	}

	var out []*Hint
	for _, provider := range r.providers {
		for _, h := range provider.GetHints(ctx) {
			if !r.excluded(h) {
				out = append(out, h)
			}
		}
	}

	if r.config.MaxHints > 0 && len(out) > r.config.MaxHints {
		out = out[:r.config.MaxHints]
	}
	return out
}

func (r *Registry) excluded(h *Hint) bool {
	for _, tag := range r.config.ExcludeTags {
		if h.HasTag(tag) {
			return true
		}
	}
	return false
}

// Write prints hints to w, one block per hint.
func Write(w io.Writer, hints []*Hint) error {
	for _, h := range hints {
		if _, err := fmt.Fprintln(w, h.String()); err != nil {
			return err
		}
	}
	return nil
}

// namedProvider wraps a ProviderFunc with a name.
type namedProvider struct {
	name string
	fn   ProviderFunc
}

func (p *namedProvider) GetHints(ctx Context) []*Hint {
	return p.fn.GetHints(ctx)
}

func (p *namedProvider) Name() string {
	return p.name
}
