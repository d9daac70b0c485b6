// Package loader discovers plugin units under configured root directories
// and registers them as a side effect of a successful load.
//
// The central guarantee is failure isolation: one broken unit never
// prevents the rest of the catalog from loading. Every per-unit error is
// caught, logged with the file path, and counted in the aggregate report.
package loader

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/meaigood001/panda-quantflow/internal/logging"
	"github.com/meaigood001/panda-quantflow/internal/metrics"
	"github.com/meaigood001/panda-quantflow/pkg/plugin"
	"github.com/meaigood001/panda-quantflow/pkg/registry"
)

// reservedPrefix marks files and directories the walk skips. Unit authors
// use it for partials and disabled units.
const reservedPrefix = "_"

// defaultUnitTimeout bounds a single unit load. Parsing is fast; the
// timeout is a defensive guard against pathological input.
const defaultUnitTimeout = 5 * time.Second

// Loader walks plugin roots and pushes every successfully parsed unit
// through the registry. It also registers the compiled-in node table, so
// both unit kinds share one registration path.
type Loader struct {
	registry *registry.Registry
	handlers *plugin.Handlers
	logger   *slog.Logger
	timeout  time.Duration
	exts     map[string]bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger injects the loader's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithHandlers injects the execution-binding table manifest units resolve
// their handler names against.
func WithHandlers(handlers *plugin.Handlers) Option {
	return func(l *Loader) {
		l.handlers = handlers
	}
}

// WithUnitTimeout overrides the per-unit load deadline.
func WithUnitTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.timeout = d
	}
}

// WithExtensions replaces the file extensions treated as unit candidates.
// Extensions are matched case-insensitively and must include the dot.
func WithExtensions(exts ...string) Option {
	return func(l *Loader) {
		l.exts = make(map[string]bool, len(exts))
		for _, ext := range exts {
			l.exts[strings.ToLower(ext)] = true
		}
	}
}

// New creates a loader writing into the given registry.
func New(reg *registry.Registry, opts ...Option) *Loader {
	l := &Loader{
		registry: reg,
		handlers: plugin.NewHandlers(),
		logger:   logging.NewNop(),
		timeout:  defaultUnitTimeout,
		exts:     map[string]bool{".yaml": true, ".yml": true},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// RegisterBuiltins pushes the compiled-in node table through the same
// registration path as discovered units. Invalid builtins are isolated
// and reported exactly like broken files.
func (l *Loader) RegisterBuiltins(nodes []plugin.Node) *Report {
	report := &Report{}
	for _, n := range nodes {
		identity := n.Spec().Name
		if err := l.registry.Register(identity, n); err != nil {
			failure := report.fail("builtin:"+identity, err)
			l.logger.Error("builtin node rejected", "identity", identity, "err", failure.Err)
			metrics.UnitFailures.Inc()
			continue
		}
		report.success()
		metrics.UnitsLoaded.Inc()
	}
	metrics.RegisteredNodes.Set(float64(l.registry.Len()))
	return report
}

// LoadAll walks each root in order and loads every candidate unit it finds.
// It never returns an error: per-unit failures are contained, logged, and
// counted in the returned report. A missing root is logged and skipped.
//
// The walk order is the deterministic lexical order of filepath.WalkDir,
// and a unit loaded later replaces an earlier registration under the same
// identity (last-loaded-wins, per registry semantics).
func (l *Loader) LoadAll(ctx context.Context, roots []string) *Report {
	report := &Report{}
	for _, root := range roots {
		l.loadRoot(ctx, root, report)
	}

	metrics.RegisteredNodes.Set(float64(l.registry.Len()))
	l.logger.Info("plugin scan complete",
		"roots", len(roots),
		"scanned", report.Scanned,
		"loaded", report.Loaded,
		"failed", report.Failed,
	)
	return report
}

func (l *Loader) loadRoot(ctx context.Context, root string, report *Report) {
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entry below the root: isolate and continue.
			if path == root {
				return err
			}
			failure := report.fail(path, err)
			l.logger.Error("plugin path not readable", "path", path, "err", failure.Err)
			metrics.UnitFailures.Inc()
			return nil
		}
		if d.IsDir() {
			if path != root && hasReservedPrefix(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !l.candidate(d.Name()) {
			return nil
		}
		if !d.Type().IsRegular() {
			failure := report.fail(path, fmt.Errorf("not a regular file (mode %s)", d.Type()))
			l.logger.Error("plugin unit failed to load", "path", path, "err", failure.Err)
			metrics.UnitFailures.Inc()
			return nil
		}

		if err := l.loadUnit(ctx, path); err != nil {
			failure := report.fail(path, err)
			l.logger.Error("plugin unit failed to load", "path", path, "err", failure.Err)
			metrics.UnitFailures.Inc()
			return nil
		}
		report.success()
		metrics.UnitsLoaded.Inc()
		l.logger.Debug("plugin unit loaded", "path", path)
		return nil
	})
	if walkErr != nil {
		l.logger.Warn("plugin root not scanned", "root", root, "err", walkErr)
	}
}

// candidate reports whether a file name is a loadable unit: the expected
// extension and no reserved prefix.
func (l *Loader) candidate(name string) bool {
	if hasReservedPrefix(name) {
		return false
	}
	return l.exts[strings.ToLower(filepath.Ext(name))]
}

func hasReservedPrefix(name string) bool {
	return strings.HasPrefix(name, reservedPrefix) || strings.HasPrefix(name, ".")
}

// loadUnit parses one manifest unit and registers it, bounded by the
// per-unit deadline. The work runs in its own goroutine so a unit that
// blocks on I/O (a FIFO dropped into a scanned root, a file on a hung
// mount) fails with a timeout instead of stalling the whole scan.
func (l *Loader) loadUnit(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- l.registerUnit(path)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("unit load exceeded %v: %w", l.timeout, ctx.Err())
	}
}

// registerUnit does the blocking read-parse-register work for one unit.
// Panics from pathological input are recovered into errors so they stay
// contained to the unit that caused them.
func (l *Loader) registerUnit(path string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic while loading unit: %v", rec)
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	m, err := parseManifest(data)
	if err != nil {
		return err
	}

	input, err := buildContract(m.Name+"_input", m.Input)
	if err != nil {
		return fmt.Errorf("input contract: %w", err)
	}
	output, err := buildContract(m.Name+"_output", m.Output)
	if err != nil {
		return fmt.Errorf("output contract: %w", err)
	}

	if m.Handler == "" {
		return fmt.Errorf("manifest missing handler")
	}
	handler, ok := l.handlers.Resolve(m.Handler)
	if !ok {
		return fmt.Errorf("unknown handler %q (available: %s)",
			m.Handler, strings.Join(l.handlers.Names(), ", "))
	}

	node := &plugin.Declared{
		NodeSpec: plugin.Spec{
			Name:        m.Name,
			DisplayName: m.DisplayName,
			Group:       m.Group,
			Category:    m.Category,
			Color:       m.Color,
		},
		Input:   input,
		Output:  output,
		Handler: handler,
	}
	return l.registry.Register(m.Name, node)
}
