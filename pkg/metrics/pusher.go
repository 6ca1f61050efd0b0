package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"mercator-hq/saturn/pkg/config"
)

// Pusher sends collected run metrics to a Prometheus Pushgateway.
//
// Pushing is best-effort: a failed push is reported to the caller, which
// logs it as a warning. A push failure never fails the retention run.
type Pusher struct {
	config   *config.MetricsConfig
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// NewPusher creates a Pushgateway pusher for the given collector.
func NewPusher(cfg *config.MetricsConfig, collector *Collector) *Pusher {
	return &Pusher{
		config:   cfg,
		gatherer: collector.Registry(),
		logger:   slog.Default().With("component", "metrics.pusher"),
	}
}

// Push sends the current registry contents to the Pushgateway, grouped by
// job name and environment so that runs against different environments
// never overwrite each other. Returns nil immediately when metrics are
// disabled.
func (p *Pusher) Push(ctx context.Context, environment string) error {
	if !p.config.Enabled {
		return nil
	}

	jobName := p.config.JobName
	if jobName == "" {
		jobName = config.DefaultMetricsJobName
	}

	start := time.Now()
	err := push.New(p.config.PushgatewayURL, jobName).
		Gatherer(p.gatherer).
		Grouping("environment", environment).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", p.config.PushgatewayURL, err)
	}

	p.logger.Debug("metrics pushed",
		"pushgateway_url", p.config.PushgatewayURL,
		"job", jobName,
		"environment", environment,
		"duration", time.Since(start),
	)

	return nil
}
