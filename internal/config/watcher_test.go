package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestWatcher(t *testing.T) (string, *Manager, *Watcher) {
	t.Helper()

	dir := t.TempDir()
	mgr, err := NewManager(zap.NewNop())
	require.NoError(t, err)

	w, err := NewWatcher(dir, mgr, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	return dir, mgr, w
}

func TestWatcherInitialLoad(t *testing.T) {
	dir, mgr, w := newTestWatcher(t)
	doc := filepath.Join(dir, "aain.yaml")
	require.NoError(t, os.WriteFile(doc, []byte("learning_rate: 0.02\n"), 0o644))

	require.NoError(t, w.Start(context.Background()))
	assert.Equal(t, 0.02, mgr.Config().LearningRate)
}

func TestWatcherReload(t *testing.T) {
	dir, mgr, w := newTestWatcher(t)
	require.NoError(t, w.Start(context.Background()))

	doc := filepath.Join(dir, "aain.json")
	require.NoError(t, os.WriteFile(doc, []byte(`{"batch_size": 256}`), 0o644))

	assert.Eventually(t, func() bool {
		return mgr.Config().BatchSize == 256
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatcherRejectsInvalidDocument(t *testing.T) {
	dir, mgr, w := newTestWatcher(t)
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, mgr.Update(map[string]any{"batch_size": 64}))

	doc := filepath.Join(dir, "aain.yaml")
	require.NoError(t, os.WriteFile(doc, []byte("learning_rate: 2.0\n"), 0o644))

	// Give the watch loop time to see the write, then confirm the live
	// record was not touched.
	time.Sleep(300 * time.Millisecond)
	cfg := mgr.Config()
	assert.Equal(t, 64, cfg.BatchSize)
	assert.Equal(t, 0.001, cfg.LearningRate)
}

func TestWatcherRevertsOnDelete(t *testing.T) {
	dir, mgr, w := newTestWatcher(t)
	doc := filepath.Join(dir, "aain.yaml")
	require.NoError(t, os.WriteFile(doc, []byte("batch_size: 512\n"), 0o644))

	require.NoError(t, w.Start(context.Background()))
	require.Equal(t, 512, mgr.Config().BatchSize)

	require.NoError(t, os.Remove(doc))
	assert.Eventually(t, func() bool {
		return mgr.Config().BatchSize == 32
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatcherReloadHandlers(t *testing.T) {
	dir, _, w := newTestWatcher(t)

	seen := make(chan map[string]any, 1)
	w.OnReload(func(data map[string]any) {
		select {
		case seen <- data:
		default:
		}
	})

	require.NoError(t, w.Start(context.Background()))
	doc := filepath.Join(dir, "aain.yaml")
	require.NoError(t, os.WriteFile(doc, []byte("memory_capacity: 20000\n"), 0o644))

	select {
	case data := <-seen:
		assert.Equal(t, 20000, data["memory_capacity"])
	case <-time.After(3 * time.Second):
		t.Fatal("reload handler was not invoked")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir, mgr, w := newTestWatcher(t)
	require.NoError(t, w.Start(context.Background()))
	before := mgr.Config()

	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("batch_size: 9"), 0o644))

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, before, mgr.Config())
}

func TestNewWatcherValidation(t *testing.T) {
	mgr, err := NewManager(zap.NewNop())
	require.NoError(t, err)

	_, err = NewWatcher("", mgr, zap.NewNop())
	assert.Error(t, err)
}
