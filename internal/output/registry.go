package output

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds a Formatter bound to a rendering config.
type Factory func(cfg *FormatterConfig) Formatter

// Registry maps format identifiers to formatter factories. The zero value is
// not usable; call NewRegistry, which pre-registers the built-in formats.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns a registry with the five built-in formats registered:
// terminal, markdown, json, html, and template.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.Register("terminal", func(cfg *FormatterConfig) Formatter { return &TerminalFormatter{cfg: cfg} })
	r.Register("markdown", func(cfg *FormatterConfig) Formatter { return &MarkdownFormatter{cfg: cfg} })
	r.Register("json", func(cfg *FormatterConfig) Formatter { return &JSONFormatter{cfg: cfg} })
	r.Register("html", func(cfg *FormatterConfig) Formatter { return &HTMLFormatter{cfg: cfg} })
	r.Register("template", func(cfg *FormatterConfig) Formatter { return &TemplateFormatter{cfg: cfg} })
	return r
}

// Register adds or replaces the factory for a format identifier. The last
// registration for an identifier wins.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// New resolves a format identifier to a formatter instance. A nil cfg is
// replaced with defaults.
func (r *Registry) New(name string, cfg *FormatterConfig) (Formatter, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	if cfg == nil {
		cfg = DefaultFormatterConfig()
	}
	return factory(cfg), nil
}

// Formats returns the registered format identifiers in sorted order.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
