package config

import (
	"sync"

	"go.uber.org/zap"

	"github.com/thom899g/autonomous-adaptive-integration-nexus--aain/internal/metrics"
)

// Manager owns exactly one Config and keeps it valid: validation runs at
// construction and after every update. The mutex exists for the watcher and
// HTTP paths; the record itself is never handed out by reference.
type Manager struct {
	mu     sync.Mutex
	config *Config
	logger *zap.Logger
}

// NewManager builds a manager around the default configuration. A default
// configuration failing validation is a programming defect, so construction
// fails rather than returning a suspect manager.
func NewManager(logger *zap.Logger) (*Manager, error) {
	return NewManagerWith(DefaultConfig(), logger)
}

// NewManagerWith builds a manager around an already-loaded record.
func NewManagerWith(cfg *Config, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Info("Configuration validation passed")
	return &Manager{config: cfg, logger: logger}, nil
}

// Config returns a snapshot copy of the current record.
func (m *Manager) Config() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.config
}

// Update applies a partial update. Recognized keys are set in place; unknown
// keys are skipped with a warning. Validation runs once after all keys are
// processed, and a failure is returned with the already-applied values
// retained — callers holding a failed manager must re-update or discard it.
func (m *Manager) Update(updates map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, value := range updates {
		f, ok := fields[key]
		if !ok {
			metrics.ConfigUnknownKeys.Inc()
			m.logger.Warn("Ignoring unknown config key", zap.String("key", key))
			continue
		}
		if err := f.set(m.config, value); err != nil {
			metrics.ConfigUpdateFailures.Inc()
			return err
		}
	}

	if err := m.config.Validate(); err != nil {
		metrics.ConfigUpdateFailures.Inc()
		return err
	}

	metrics.ConfigUpdates.Inc()
	m.logger.Info("Configuration updated", zap.Any("updates", updates))
	return nil
}

// Replace swaps in a whole record built strictly from data. The live record
// is untouched when the document is rejected, which makes Replace safe for
// hot reload.
func (m *Manager) Replace(data map[string]any) error {
	cfg, err := FromMap(data)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	m.config = cfg
	m.mu.Unlock()

	m.logger.Info("Configuration replaced", zap.Int("keys", len(data)))
	return nil
}

// Reset restores the default configuration.
func (m *Manager) Reset() {
	m.mu.Lock()
	m.config = DefaultConfig()
	m.mu.Unlock()

	m.logger.Info("Reverted to default configuration")
}
