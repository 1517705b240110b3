package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Configuration metrics
	ConfigUpdates = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aain_config_updates_total",
			Help: "Total number of configuration updates applied",
		},
	)

	ConfigUpdateFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aain_config_update_failures_total",
			Help: "Total number of configuration updates rejected by validation",
		},
	)

	ConfigUnknownKeys = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aain_config_unknown_keys_total",
			Help: "Total number of unrecognized keys ignored during updates",
		},
	)

	ConfigReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aain_config_reloads_total",
			Help: "Total number of configuration document reloads by outcome",
		},
		[]string{"status"},
	)
)
