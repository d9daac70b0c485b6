package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meaigood001/panda-quantflow/pkg/nodes"
	"github.com/meaigood001/panda-quantflow/pkg/registry"
)

func TestWatcherPicksUpNewUnit(t *testing.T) {
	dir := t.TempDir()

	reg := registry.New()
	l := New(reg, WithHandlers(nodes.Handlers()))
	l.LoadAll(context.Background(), []string{dir})
	require.Equal(t, 0, reg.Len())

	w := NewWatcher(l, []string{dir}, nil)
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	// Give the watcher a moment to arm before writing.
	time.Sleep(50 * time.Millisecond)
	writeUnit(t, dir, "rsi.yaml", validUnit)

	require.Eventually(t, func() bool {
		return reg.Len() == 1
	}, 3*time.Second, 25*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatcherPicksUpUnitInNewSubdirectory(t *testing.T) {
	dir := t.TempDir()

	reg := registry.New()
	l := New(reg, WithHandlers(nodes.Handlers()))

	w := NewWatcher(l, []string{dir}, nil)
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	// Give the watcher a moment to arm, then create a subdirectory and
	// drop a unit into it once the new directory itself is watched.
	time.Sleep(50 * time.Millisecond)
	sub := filepath.Join(dir, "indicators")
	require.NoError(t, os.Mkdir(sub, 0o755))
	time.Sleep(100 * time.Millisecond)
	writeUnit(t, sub, "rsi.yaml", validUnit)

	require.Eventually(t, func() bool {
		return reg.Len() == 1
	}, 3*time.Second, 25*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatcherClearsDeletedSubtree(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "indicators")
	writeUnit(t, sub, "rsi.yaml", validUnit)

	reg := registry.New()
	l := New(reg, WithHandlers(nodes.Handlers()))
	l.LoadAll(context.Background(), []string{dir})
	require.Equal(t, 1, reg.Len())

	// Rescan the way the app does: clear first, so deletions take effect.
	w := NewWatcher(l, []string{dir}, nil, WithRescan(func(ctx context.Context) *Report {
		reg.Reset()
		return l.LoadAll(ctx, []string{dir})
	}))
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.RemoveAll(sub))

	require.Eventually(t, func() bool {
		return reg.Len() == 0
	}, 3*time.Second, 25*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatcherRelevance(t *testing.T) {
	reg := registry.New()
	w := NewWatcher(New(reg), nil, nil)

	assert.True(t, w.relevant(fsnotify.Event{Name: "/p/unit.yaml", Op: fsnotify.Write}))
	assert.True(t, w.relevant(fsnotify.Event{Name: "/p/unit.yml", Op: fsnotify.Create}))
	assert.True(t, w.relevant(fsnotify.Event{Name: "/p/unit.yaml", Op: fsnotify.Remove}))
	assert.True(t, w.relevant(fsnotify.Event{Name: "/p/indicators", Op: fsnotify.Remove}))
	assert.True(t, w.relevant(fsnotify.Event{Name: "/p/indicators", Op: fsnotify.Rename}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/p/unit.yaml", Op: fsnotify.Chmod}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/p/_draft.yaml", Op: fsnotify.Write}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/p/_scratch", Op: fsnotify.Remove}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/p/notes.txt", Op: fsnotify.Write}))
}
