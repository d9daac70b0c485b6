package registry

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/meaigood001/panda-quantflow/internal/logging"
	"github.com/meaigood001/panda-quantflow/pkg/domain"
	"github.com/meaigood001/panda-quantflow/pkg/plugin"
	"github.com/meaigood001/panda-quantflow/pkg/schema"
)

// Registry maps node identities to their descriptors. It is the single
// owner of all descriptors in the process; every read surface (catalog
// service, HTTP API, MCP adapter) works from its snapshots.
//
// All methods are safe for concurrent use. Writes take an exclusive lock,
// so units loading in parallel serialize on insert.
type Registry struct {
	mu     sync.RWMutex
	nodes  map[string]domain.Descriptor
	logger *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger injects the logger used for registration warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		nodes:  make(map[string]domain.Descriptor),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register validates the candidate's capability set, projects its contracts
// into schema documents, and stores the resulting descriptor under identity.
//
// A candidate missing any capability fails with domain.ErrInvalidPlugin.
// A contract that cannot be extracted (cyclic, too deep) fails the
// registration; the node is omitted from the catalog and the error is the
// caller's to log. Registering an identity that already exists replaces the
// previous descriptor and logs a warning: last write wins.
func (r *Registry) Register(identity string, candidate any) error {
	if identity == "" {
		return fmt.Errorf("%w: empty identity", domain.ErrInvalidPlugin)
	}

	sp, ok := candidate.(plugin.SpecProvider)
	if !ok {
		return fmt.Errorf("%w: %s does not provide a spec", domain.ErrInvalidPlugin, identity)
	}
	in, ok := candidate.(plugin.InputProvider)
	if !ok {
		return fmt.Errorf("%w: %s does not provide an input contract", domain.ErrInvalidPlugin, identity)
	}
	out, ok := candidate.(plugin.OutputProvider)
	if !ok {
		return fmt.Errorf("%w: %s does not provide an output contract", domain.ErrInvalidPlugin, identity)
	}
	if _, ok := candidate.(plugin.Executor); !ok {
		return fmt.Errorf("%w: %s does not provide an execution entry point", domain.ErrInvalidPlugin, identity)
	}

	inDoc, err := schema.Extract(in.InputContract())
	if err != nil {
		return fmt.Errorf("node %s: input contract: %w", identity, err)
	}
	outDoc, err := schema.Extract(out.OutputContract())
	if err != nil {
		return fmt.Errorf("node %s: output contract: %w", identity, err)
	}

	spec := sp.Spec()
	category := spec.Category
	if category == "" {
		category = plugin.DefaultCategory
	}
	color := spec.Color
	if color == "" {
		color = plugin.DefaultColor
	}

	desc := domain.Descriptor{
		Identity:     identity,
		DisplayName:  spec.Title(),
		GroupPath:    spec.GroupPath(),
		Category:     category,
		Color:        color,
		InputSchema:  inDoc,
		OutputSchema: outDoc,
	}
	if desc.DisplayName == "" {
		desc.DisplayName = identity
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, exists := r.nodes[identity]; exists {
		r.logger.Warn("replacing registered node",
			"identity", identity,
			"previous_group", prev.Group(),
			"group", desc.Group(),
		)
	}
	r.nodes[identity] = desc
	return nil
}

// Get returns the descriptor registered under identity.
func (r *Registry) Get(identity string) (domain.Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	desc, ok := r.nodes[identity]
	if !ok {
		return domain.Descriptor{}, fmt.Errorf("%w: %s", domain.ErrNotFound, identity)
	}
	return desc, nil
}

// All returns a point-in-time copy of the registry. Loads that complete
// after the snapshot was taken do not affect it, so tree builds never
// observe a registry mid-write.
func (r *Registry) All() map[string]domain.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snapshot := make(map[string]domain.Descriptor, len(r.nodes))
	for identity, desc := range r.nodes {
		snapshot[identity] = desc
	}
	return snapshot
}

// Reset drops every registered descriptor. Reload paths call it before a
// rescan so units deleted from disk leave the catalog instead of lingering
// under last-write-wins.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes = make(map[string]domain.Descriptor)
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nodes)
}
