package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewManager(t *testing.T) {
	mgr, err := NewManager(zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, mgr)

	cfg := mgr.Config()
	assert.NoError(t, cfg.Validate())
}

func TestNewManagerWith(t *testing.T) {
	t.Run("Valid record", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.LearningRate = 0.5

		mgr, err := NewManagerWith(cfg, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, 0.5, mgr.Config().LearningRate)
	})

	t.Run("Invalid record fails construction", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.DiscountFactor = 0

		mgr, err := NewManagerWith(cfg, zap.NewNop())
		require.Error(t, err)
		assert.Nil(t, mgr)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "discount_factor", verr.Field)
	})
}

func TestManagerUpdate(t *testing.T) {
	t.Run("Valid update applies every key", func(t *testing.T) {
		mgr, err := NewManager(zap.NewNop())
		require.NoError(t, err)

		err = mgr.Update(map[string]any{
			"learning_rate":  0.01,
			"batch_size":     64,
			"model_path":     "models/v2.pkl",
			"min_throughput": 250.0,
		})
		require.NoError(t, err)

		cfg := mgr.Config()
		assert.Equal(t, 0.01, cfg.LearningRate)
		assert.Equal(t, 64, cfg.BatchSize)
		assert.Equal(t, "models/v2.pkl", cfg.ModelPath)
		assert.Equal(t, 250.0, cfg.MinThroughput)
	})

	t.Run("Unknown key skipped without error", func(t *testing.T) {
		mgr, err := NewManager(zap.NewNop())
		require.NoError(t, err)
		before := mgr.Config()

		err = mgr.Update(map[string]any{"nonexistent_field": 1})
		require.NoError(t, err)
		assert.Equal(t, before, mgr.Config())
	})

	t.Run("Out-of-range update fails but partial state is retained", func(t *testing.T) {
		mgr, err := NewManager(zap.NewNop())
		require.NoError(t, err)

		err = mgr.Update(map[string]any{
			"learning_rate":   2.0,
			"discount_factor": 0.5,
		})
		require.Error(t, err)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "learning_rate", verr.Field)

		// No rollback: both keys stay applied even though validation failed.
		cfg := mgr.Config()
		assert.Equal(t, 0.5, cfg.DiscountFactor)
		assert.Equal(t, 2.0, cfg.LearningRate)
	})

	t.Run("Manager is usable again after a corrective update", func(t *testing.T) {
		mgr, err := NewManager(zap.NewNop())
		require.NoError(t, err)

		require.Error(t, mgr.Update(map[string]any{"learning_rate": 2.0}))
		require.NoError(t, mgr.Update(map[string]any{"learning_rate": 0.002}))
		assert.Equal(t, 0.002, mgr.Config().LearningRate)
	})

	t.Run("Wrong value type rejected", func(t *testing.T) {
		mgr, err := NewManager(zap.NewNop())
		require.NoError(t, err)

		err = mgr.Update(map[string]any{"batch_size": "many"})
		require.Error(t, err)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "batch_size", verr.Field)
		assert.Equal(t, "many", verr.Value)
	})
}

func TestManagerReplace(t *testing.T) {
	t.Run("Valid document swaps the record", func(t *testing.T) {
		mgr, err := NewManager(zap.NewNop())
		require.NoError(t, err)

		err = mgr.Replace(map[string]any{
			"learning_rate": 0.05,
			"collection":    "aain_staging",
		})
		require.NoError(t, err)

		cfg := mgr.Config()
		assert.Equal(t, 0.05, cfg.LearningRate)
		assert.Equal(t, "aain_staging", cfg.Collection)
		// Unspecified fields come back as defaults, not as prior state.
		assert.Equal(t, 0.95, cfg.DiscountFactor)
	})

	t.Run("Rejected document leaves the record untouched", func(t *testing.T) {
		mgr, err := NewManager(zap.NewNop())
		require.NoError(t, err)
		require.NoError(t, mgr.Update(map[string]any{"batch_size": 64}))
		before := mgr.Config()

		require.Error(t, mgr.Replace(map[string]any{"learning_rate": 2.0}))
		require.Error(t, mgr.Replace(map[string]any{"mystery_field": 1}))
		assert.Equal(t, before, mgr.Config())
	})
}

func TestManagerReset(t *testing.T) {
	mgr, err := NewManager(zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, mgr.Update(map[string]any{"batch_size": 512}))

	mgr.Reset()
	assert.Equal(t, 32, mgr.Config().BatchSize)
}
