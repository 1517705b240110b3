package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/thom899g/autonomous-adaptive-integration-nexus--aain/internal/metrics"
)

// documentNames are the configuration documents the watcher reacts to.
// Anything else in the directory is ignored.
var documentNames = map[string]struct{}{
	"aain.yaml": {},
	"aain.yml":  {},
	"aain.json": {},
}

// ReloadHandler is called after a document has been applied, with the parsed
// mapping that produced the new record.
type ReloadHandler func(data map[string]any)

// Watcher hot-reloads the manager's record from a configuration directory.
// A valid document replaces the record wholesale; an invalid one is logged
// and the live record stays untouched. Deleting the document reverts the
// manager to defaults.
type Watcher struct {
	dir     string
	manager *Manager
	watcher *fsnotify.Watcher
	logger  *zap.Logger
	stopCh  chan struct{}

	mu       sync.Mutex
	handlers []ReloadHandler
	started  bool
}

// NewWatcher creates a watcher over dir for the given manager.
func NewWatcher(dir string, manager *Manager, logger *zap.Logger) (*Watcher, error) {
	if dir == "" {
		return nil, fmt.Errorf("config directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Watcher{
		dir:     dir,
		manager: manager,
		watcher: fw,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}, nil
}

// OnReload registers a handler invoked after every successful reload.
func (w *Watcher) OnReload(h ReloadHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, h)
}

// Start loads any existing document and begins watching for changes.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}
	w.started = true
	w.mu.Unlock()

	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	// Apply an existing document before watching so startup state matches
	// what is on disk.
	for name := range documentNames {
		path := filepath.Join(w.dir, name)
		if _, err := os.Stat(path); err == nil {
			if err := w.loadDocument(path, "initial_load"); err != nil {
				return err
			}
			break
		}
	}

	go w.watchLoop(ctx)

	w.logger.Info("Configuration watcher started", zap.String("config_dir", w.dir))
	return nil
}

// Stop stops watching for changes.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		return nil
	}
	w.started = false

	close(w.stopCh)
	if err := w.watcher.Close(); err != nil {
		w.logger.Error("Error closing file watcher", zap.Error(err))
		return err
	}

	w.logger.Info("Configuration watcher stopped")
	return nil
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("Watch loop panicked", zap.Any("panic", r))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if _, ok := documentNames[name]; !ok {
		return
	}

	w.logger.Debug("File system event",
		zap.String("file", name),
		zap.String("op", event.Op.String()),
	)

	switch {
	case event.Op&fsnotify.Remove == fsnotify.Remove,
		event.Op&fsnotify.Rename == fsnotify.Rename:
		w.manager.Reset()
		metrics.ConfigReloads.WithLabelValues("reverted").Inc()
	case event.Op&fsnotify.Chmod == fsnotify.Chmod:
		return
	default:
		// Small delay to handle rapid successive writes.
		time.Sleep(50 * time.Millisecond)
		if err := w.loadDocument(event.Name, event.Op.String()); err != nil {
			w.logger.Error("Failed to reload config document",
				zap.String("file", name),
				zap.Error(err),
			)
		}
	}
}

// loadDocument parses a document by extension and applies it to the manager.
func (w *Watcher) loadDocument(path, action string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		metrics.ConfigReloads.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to read config document %s: %w", path, err)
	}

	name := filepath.Base(path)
	doc := make(map[string]any)
	switch filepath.Ext(name) {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			metrics.ConfigReloads.WithLabelValues("error").Inc()
			return fmt.Errorf("failed to parse JSON config %s: %w", name, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			metrics.ConfigReloads.WithLabelValues("error").Inc()
			return fmt.Errorf("failed to parse YAML config %s: %w", name, err)
		}
	default:
		metrics.ConfigReloads.WithLabelValues("error").Inc()
		return fmt.Errorf("unsupported config format for %s", name)
	}

	if err := w.manager.Replace(doc); err != nil {
		metrics.ConfigReloads.WithLabelValues("rejected").Inc()
		return fmt.Errorf("config document %s rejected: %w", name, err)
	}

	metrics.ConfigReloads.WithLabelValues("ok").Inc()
	w.logger.Info("Configuration document applied",
		zap.String("file", name),
		zap.String("action", action),
		zap.Int("keys", len(doc)),
	)

	w.mu.Lock()
	handlers := make([]ReloadHandler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	for _, h := range handlers {
		h(doc)
	}
	return nil
}
