package plugin

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/meaigood001/panda-quantflow/pkg/schema"
)

// Defaults applied to a Spec when the author leaves a field empty.
const (
	DefaultGroup    = "General"
	DefaultCategory = "general"
	DefaultColor    = "#5470c6"
)

// Spec is the explicit registration configuration a work node declares:
// its identity, where it appears in the editor palette, and how it is drawn.
type Spec struct {
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	Group       string `json:"group" yaml:"group"`
	Category    string `json:"category" yaml:"category"`
	Color       string `json:"color" yaml:"color"`
}

// GroupPath splits the slash-separated group into path segments.
// Blank segments are dropped; an empty group falls back to DefaultGroup
// so every node has a non-empty placement in the palette.
func (s Spec) GroupPath() []string {
	var path []string
	for _, seg := range strings.Split(s.Group, "/") {
		if seg = strings.TrimSpace(seg); seg != "" {
			path = append(path, seg)
		}
	}
	if len(path) == 0 {
		return []string{DefaultGroup}
	}
	return path
}

// Title returns the display name, falling back to the identity.
func (s Spec) Title() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return s.Name
}

// The registry validates candidates against this capability set. A contract
// provider may return nil (the node declares no contract for that
// direction), but the provider methods themselves must exist.

// SpecProvider exposes the node's registration configuration.
type SpecProvider interface {
	Spec() Spec
}

// InputProvider exposes the node's input contract.
type InputProvider interface {
	InputContract() *schema.Contract
}

// OutputProvider exposes the node's output contract.
type OutputProvider interface {
	OutputContract() *schema.Contract
}

// Executor is the execution entry point. The catalog core never calls it;
// it exists for the workflow engine, and its presence is part of the
// capability set the registry enforces.
type Executor interface {
	Execute(ctx context.Context, inputs map[string]any) (map[string]any, error)
}

// Node is the full authoring contract a work node implements.
type Node interface {
	SpecProvider
	InputProvider
	OutputProvider
	Executor
}

// HandlerFunc is the execution binding for declaratively defined nodes.
type HandlerFunc func(ctx context.Context, inputs map[string]any) (map[string]any, error)

// Handlers is a named table of execution bindings that manifest units
// reference by name.
type Handlers struct {
	mu  sync.RWMutex
	fns map[string]HandlerFunc
}

// NewHandlers creates an empty handler table.
func NewHandlers() *Handlers {
	return &Handlers{fns: make(map[string]HandlerFunc)}
}

// Register adds a handler under the given name.
// An existing handler with the same name is overwritten.
func (h *Handlers) Register(name string, fn HandlerFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fns[name] = fn
}

// Resolve looks up a handler by name.
func (h *Handlers) Resolve(name string) (HandlerFunc, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	fn, ok := h.fns[name]
	return fn, ok
}

// Names returns the registered handler names, sorted.
func (h *Handlers) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := make([]string, 0, len(h.fns))
	for name := range h.fns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
