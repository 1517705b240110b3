package config

import (
	"os"
	"sort"
)

// Environment variables consumed at startup.
const (
	EnvProjectID  = "AAIN_PROJECT_ID"
	EnvConfigPath = "CONFIG_PATH"
)

const defaultProjectID = "evolution-ecosystem"

// Config is the AAIN configuration record: the flat set of named tunables
// controlling the runtime behavior of the integration ecosystem. Interval
// fields are integer seconds so the map round-trip stays lossless.
type Config struct {
	// Document store configuration (consumed externally)
	ProjectID  string `json:"project_id" yaml:"project_id"`
	Collection string `json:"collection" yaml:"collection"`

	// RL tuning
	LearningRate    float64 `json:"learning_rate" yaml:"learning_rate"`
	DiscountFactor  float64 `json:"discount_factor" yaml:"discount_factor"`
	ExplorationRate float64 `json:"exploration_rate" yaml:"exploration_rate"`
	BatchSize       int     `json:"batch_size" yaml:"batch_size"`
	MemoryCapacity  int     `json:"memory_capacity" yaml:"memory_capacity"`

	// Monitoring
	HealthCheckInterval  int     `json:"health_check_interval" yaml:"health_check_interval"`
	MetricsWindow        int     `json:"metrics_window" yaml:"metrics_window"`
	PerformanceThreshold float64 `json:"performance_threshold" yaml:"performance_threshold"`

	// Optimization
	MaxConnectionPool int     `json:"max_connection_pool" yaml:"max_connection_pool"`
	MinThroughput     float64 `json:"min_throughput" yaml:"min_throughput"`
	MaxLatency        float64 `json:"max_latency" yaml:"max_latency"`

	// ML
	ModelPath       string `json:"model_path" yaml:"model_path"`
	RetrainInterval int    `json:"retrain_interval" yaml:"retrain_interval"`
}

// DefaultConfig returns the default configuration. The project identifier
// honors AAIN_PROJECT_ID when set.
func DefaultConfig() *Config {
	projectID := os.Getenv(EnvProjectID)
	if projectID == "" {
		projectID = defaultProjectID
	}
	return &Config{
		ProjectID:  projectID,
		Collection: "aain_integrations",

		LearningRate:    0.001,
		DiscountFactor:  0.95,
		ExplorationRate: 0.1,
		BatchSize:       32,
		MemoryCapacity:  10000,

		HealthCheckInterval:  30,
		MetricsWindow:        300,
		PerformanceThreshold: 0.8,

		MaxConnectionPool: 100,
		MinThroughput:     100.0,
		MaxLatency:        2.0,

		ModelPath:       "models/integration_predictor.pkl",
		RetrainInterval: 86400,
	}
}

// fieldSpec binds a declared field name to its typed accessor pair. The
// registry below is the only place field names map to storage; there is no
// reflective access anywhere in the package.
type fieldSpec struct {
	get func(*Config) any
	set func(*Config, any) error
}

func stringField(name string, ptr func(*Config) *string) fieldSpec {
	return fieldSpec{
		get: func(c *Config) any { return *ptr(c) },
		set: func(c *Config, v any) error {
			s, ok := v.(string)
			if !ok {
				return &ValidationError{Field: name, Value: v, Reason: "expects a string"}
			}
			*ptr(c) = s
			return nil
		},
	}
}

func floatField(name string, ptr func(*Config) *float64) fieldSpec {
	return fieldSpec{
		get: func(c *Config) any { return *ptr(c) },
		set: func(c *Config, v any) error {
			f, ok := asFloat(v)
			if !ok {
				return &ValidationError{Field: name, Value: v, Reason: "expects a number"}
			}
			*ptr(c) = f
			return nil
		},
	}
}

func intField(name string, ptr func(*Config) *int) fieldSpec {
	return fieldSpec{
		get: func(c *Config) any { return *ptr(c) },
		set: func(c *Config, v any) error {
			n, ok := asInt(v)
			if !ok {
				return &ValidationError{Field: name, Value: v, Reason: "expects an integer"}
			}
			*ptr(c) = n
			return nil
		},
	}
}

// asFloat accepts the numeric shapes JSON and YAML decoders produce.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case float32:
		return int(n), true
	}
	return 0, false
}

var fields = map[string]fieldSpec{
	"project_id": stringField("project_id", func(c *Config) *string { return &c.ProjectID }),
	"collection": stringField("collection", func(c *Config) *string { return &c.Collection }),

	"learning_rate":    floatField("learning_rate", func(c *Config) *float64 { return &c.LearningRate }),
	"discount_factor":  floatField("discount_factor", func(c *Config) *float64 { return &c.DiscountFactor }),
	"exploration_rate": floatField("exploration_rate", func(c *Config) *float64 { return &c.ExplorationRate }),
	"batch_size":       intField("batch_size", func(c *Config) *int { return &c.BatchSize }),
	"memory_capacity":  intField("memory_capacity", func(c *Config) *int { return &c.MemoryCapacity }),

	"health_check_interval": intField("health_check_interval", func(c *Config) *int { return &c.HealthCheckInterval }),
	"metrics_window":        intField("metrics_window", func(c *Config) *int { return &c.MetricsWindow }),
	"performance_threshold": floatField("performance_threshold", func(c *Config) *float64 { return &c.PerformanceThreshold }),

	"max_connection_pool": intField("max_connection_pool", func(c *Config) *int { return &c.MaxConnectionPool }),
	"min_throughput":      floatField("min_throughput", func(c *Config) *float64 { return &c.MinThroughput }),
	"max_latency":         floatField("max_latency", func(c *Config) *float64 { return &c.MaxLatency }),

	"model_path":       stringField("model_path", func(c *Config) *string { return &c.ModelPath }),
	"retrain_interval": intField("retrain_interval", func(c *Config) *int { return &c.RetrainInterval }),
}

// FieldNames returns the declared field names in sorted order.
func FieldNames() []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ToMap serializes the record into a string-keyed mapping containing every
// declared field and nothing else.
func (c *Config) ToMap() map[string]any {
	m := make(map[string]any, len(fields))
	for name, f := range fields {
		m[name] = f.get(c)
	}
	return m
}

// FromMap builds a record from a string-keyed mapping. Fields absent from the
// mapping keep their defaults. Unlike Manager.Update, FromMap is strict: a
// key that does not name a declared field fails with UnknownFieldError, since
// the mapping is typically data an external collaborator persisted and a
// silent drop there would hide corruption.
func FromMap(data map[string]any) (*Config, error) {
	c := DefaultConfig()
	for name, value := range data {
		f, ok := fields[name]
		if !ok {
			return nil, &UnknownFieldError{Field: name}
		}
		if err := f.set(c, value); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Validate checks the range-constrained tunables in a fixed order (learning
// rate, discount factor, performance threshold) and reports the first
// out-of-range field.
func (c *Config) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"learning_rate", c.LearningRate},
		{"discount_factor", c.DiscountFactor},
		{"performance_threshold", c.PerformanceThreshold},
	}
	for _, ch := range checks {
		if ch.value <= 0 || ch.value > 1 {
			return &ValidationError{Field: ch.name, Value: ch.value, Reason: "must be in (0, 1]"}
		}
	}
	return nil
}
