package quantflow

import (
	"context"
	"log/slog"

	"github.com/meaigood001/panda-quantflow/internal/loader"
	"github.com/meaigood001/panda-quantflow/internal/logging"
	"github.com/meaigood001/panda-quantflow/pkg/catalog"
	"github.com/meaigood001/panda-quantflow/pkg/domain"
	"github.com/meaigood001/panda-quantflow/pkg/nodes"
	"github.com/meaigood001/panda-quantflow/pkg/plugin"
	"github.com/meaigood001/panda-quantflow/pkg/ports"
	"github.com/meaigood001/panda-quantflow/pkg/registry"
)

// Version is the semantic version of the catalog core.
const Version = "0.4.0"

// App is the assembled catalog pipeline: registry, loader, and query
// service sharing one descriptor store.
type App struct {
	registry *registry.Registry
	loader   *loader.Loader
	service  *catalog.Service
	roots    []string
	builtins []plugin.Node
	handlers *plugin.Handlers
	exts     []string
	cache    ports.CatalogCache
	logger   *slog.Logger
}

// Option defines a functional option for configuring the App.
type Option func(*App)

// WithLogger sets the logger shared by the pipeline components.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithBuiltins replaces the default compiled-in node table.
func WithBuiltins(builtins []plugin.Node) Option {
	return func(a *App) {
		a.builtins = builtins
	}
}

// WithHandlers replaces the execution-binding table manifest units resolve
// against.
func WithHandlers(handlers *plugin.Handlers) Option {
	return func(a *App) {
		a.handlers = handlers
	}
}

// WithExtensions replaces the manifest file extensions the loader accepts.
func WithExtensions(exts ...string) Option {
	return func(a *App) {
		a.exts = exts
	}
}

// WithCache attaches a catalog response cache. Reload and rescan drop it
// so serving adapters never hand out a catalog from before the last scan.
func WithCache(cache ports.CatalogCache) Option {
	return func(a *App) {
		a.cache = cache
	}
}

// New builds the pipeline and performs the startup load: builtins first,
// then every unit discovered under roots, in order. It never fails; broken
// units are isolated and counted in the returned report, and an empty
// catalog is a valid state.
func New(ctx context.Context, roots []string, opts ...Option) (*App, *loader.Report) {
	a := &App{
		roots:    roots,
		builtins: nodes.Builtins(),
		handlers: nodes.Handlers(),
		logger:   logging.New(slog.LevelInfo),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.registry = registry.New(registry.WithLogger(a.logger))
	loaderOpts := []loader.Option{
		loader.WithLogger(a.logger),
		loader.WithHandlers(a.handlers),
	}
	if len(a.exts) > 0 {
		loaderOpts = append(loaderOpts, loader.WithExtensions(a.exts...))
	}
	a.loader = loader.New(a.registry, loaderOpts...)
	a.service = catalog.NewService(a.registry, catalog.WithLogger(a.logger))

	report := a.loader.RegisterBuiltins(a.builtins)
	report.Merge(a.loader.LoadAll(ctx, roots))
	return a, report
}

// Catalog returns the current group tree.
func (a *App) Catalog() []catalog.Node {
	return a.service.Catalog()
}

// Describe returns the descriptor registered under identity.
func (a *App) Describe(identity string) (domain.Descriptor, error) {
	return a.service.Describe(identity)
}

// Service exposes the catalog query surface for adapters.
func (a *App) Service() *catalog.Service {
	return a.service
}

// Registry exposes the descriptor store.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Reload rebuilds the catalog from scratch: the registry is cleared, the
// builtins re-registered, and the plugin roots rescanned, so units deleted
// from disk leave the catalog. Any attached response cache is dropped
// afterwards.
func (a *App) Reload(ctx context.Context) *loader.Report {
	a.registry.Reset()
	report := a.loader.RegisterBuiltins(a.builtins)
	report.Merge(a.loader.LoadAll(ctx, a.roots))
	if a.cache != nil {
		if err := a.cache.Invalidate(ctx); err != nil {
			a.logger.Warn("catalog cache not invalidated", "err", err)
		}
	}
	return report
}

// Watch blocks rescanning the plugin roots on file changes until ctx is
// cancelled. Each rescan runs the full Reload so deletions and cache
// invalidation behave the same as an explicit reload.
func (a *App) Watch(ctx context.Context) error {
	w := loader.NewWatcher(a.loader, a.roots, a.logger,
		loader.WithRescan(a.Reload),
	)
	return w.Run(ctx)
}
