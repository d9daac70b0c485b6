package loader

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/meaigood001/panda-quantflow/internal/logging"
)

// Watcher re-runs a load pass whenever files under the plugin roots change.
// Used by the dev server so the editor palette picks up manifest edits
// without a restart. Registry replace-on-duplicate keeps identities current.
type Watcher struct {
	loader   *Loader
	roots    []string
	logger   *slog.Logger
	debounce time.Duration
	rescan   func(context.Context) *Report
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithRescan replaces the scan run on each change. The default rescans the
// watched roots through the loader; the app passes its full reload so a
// rescan also drops deleted units and stale derived state.
func WithRescan(fn func(context.Context) *Report) WatcherOption {
	return func(w *Watcher) {
		w.rescan = fn
	}
}

// NewWatcher creates a watcher over the given roots.
func NewWatcher(l *Loader, roots []string, logger *slog.Logger, opts ...WatcherOption) *Watcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	w := &Watcher{
		loader:   l,
		roots:    roots,
		logger:   logger,
		debounce: 300 * time.Millisecond,
	}
	w.rescan = func(ctx context.Context) *Report {
		return w.loader.LoadAll(ctx, w.roots)
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run blocks watching the roots until ctx is cancelled. fsnotify watches
// are per-directory, so every non-reserved subdirectory is added up front
// and directories created later are added from their Create events. Rapid
// bursts of file events (editor saves, git checkouts) are debounced into
// one rescan.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	for _, root := range w.roots {
		w.watchTree(fw, root)
	}

	var rescan <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if !hasReservedPrefix(filepath.Base(ev.Name)) {
						w.watchTree(fw, ev.Name)
						rescan = time.After(w.debounce)
					}
					continue
				}
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("plugin change detected", "path", ev.Name, "op", ev.Op.String())
			rescan = time.After(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("plugin watch error", "err", err)

		case <-rescan:
			rescan = nil
			report := w.rescan(ctx)
			w.logger.Info("plugin rescan complete", "loaded", report.Loaded, "failed", report.Failed)
		}
	}
}

// watchTree adds root and every non-reserved directory under it. Missing
// or unreadable directories are logged and skipped; fsnotify drops watches
// for deleted directories on its own.
func (w *Watcher) watchTree(fw *fsnotify.Watcher, root string) {
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && hasReservedPrefix(d.Name()) {
			return fs.SkipDir
		}
		if err := fw.Add(path); err != nil {
			w.logger.Warn("plugin directory not watched", "path", path, "err", err)
		}
		return nil
	})
	if walkErr != nil {
		w.logger.Warn("plugin root not watched", "root", root, "err", walkErr)
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Base(ev.Name)
	if hasReservedPrefix(name) {
		return false
	}
	// A removed or renamed directory cannot be stat'ed anymore; treat
	// extensionless removals as directories so a deleted subtree still
	// clears from the catalog on the next rescan.
	if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 && filepath.Ext(name) == "" {
		return true
	}
	return w.loader.candidate(name)
}
