package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/saturn/pkg/config"
)

const (
	namespace = "saturn"
	subsystem = "prune"
)

// Collector owns the Prometheus metrics describing retention runs.
//
// Saturn is a batch job, so every metric is a gauge carrying the most
// recent run's values, the shape a Pushgateway expects from short-lived
// jobs. All metrics share the {environment, status} label pair.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	deploymentsDeleted *prometheus.GaugeVec
	deploymentsErrors  *prometheus.GaugeVec
	deploymentsKept    *prometheus.GaugeVec
	runDuration        *prometheus.GaugeVec
	lastRunTimestamp   *prometheus.GaugeVec
}

// NewCollector creates a new metrics collector with the specified
// configuration and Prometheus registry. If registry is nil, a private
// registry is created.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	labels := []string{"environment", "status"}

	c := &Collector{
		config:   cfg,
		registry: registry,

		deploymentsDeleted: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "deployments_deleted",
				Help:      "Number of deployments deleted by the last retention run",
			},
			labels,
		),

		deploymentsErrors: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "deployments_errors",
				Help:      "Number of deletion attempts that failed in the last retention run",
			},
			labels,
		),

		deploymentsKept: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "deployments_kept",
				Help:      "Number of deployments retained by the last retention run",
			},
			labels,
		),

		runDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "duration_seconds",
				Help:      "Duration of the last retention run in seconds",
			},
			labels,
		),

		lastRunTimestamp: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix timestamp of the last retention run",
			},
			labels,
		),
	}

	registry.MustRegister(
		c.deploymentsDeleted,
		c.deploymentsErrors,
		c.deploymentsKept,
		c.runDuration,
		c.lastRunTimestamp,
	)

	return c
}

// RecordRun records the outcome of a completed retention run.
//
// Parameters:
//   - environment: environment the run targeted
//   - status: terminal run status ("completed", "dry_run", ...)
//   - deleted, errors, kept: the run's summary counts
//   - duration: total run duration
func (c *Collector) RecordRun(environment, status string, deleted, errors, kept int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.deploymentsDeleted.WithLabelValues(environment, status).Set(float64(deleted))
	c.deploymentsErrors.WithLabelValues(environment, status).Set(float64(errors))
	c.deploymentsKept.WithLabelValues(environment, status).Set(float64(kept))
	c.runDuration.WithLabelValues(environment, status).Set(duration.Seconds())
	c.lastRunTimestamp.WithLabelValues(environment, status).SetToCurrentTime()
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
