package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertthunder/talink/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the reconciliation metrics and the registry they are registered with.
type Collector struct {
	registry *prometheus.Registry

	ItemsTotal       *prometheus.CounterVec
	PlaylistsTotal   prometheus.Counter
	LastRunTimestamp prometheus.Gauge
	LastRunDuration  prometheus.Gauge
	LastRunSuccess   prometheus.Gauge
}

// NewCollector creates a Collector backed by a fresh registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	c := &Collector{
		registry: reg,
		ItemsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "talink_items_total",
				Help: "Total number of playlist and entry decisions by outcome",
			},
			[]string{"outcome"},
		),
		PlaylistsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "talink_playlists_total",
				Help: "Total number of playlist documents processed",
			},
		),
		LastRunTimestamp: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "talink_last_run_timestamp_seconds",
				Help: "Unix timestamp of the last reconciliation run",
			},
		),
		LastRunDuration: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "talink_last_run_duration_seconds",
				Help: "Duration of the last reconciliation run in seconds",
			},
		),
		LastRunSuccess: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "talink_last_run_success",
				Help: "Whether the last reconciliation run finished without a fatal error (1 = success)",
			},
		),
	}

	// Pre-create one series per outcome.
	for _, o := range models.Outcomes {
		c.ItemsTotal.WithLabelValues(string(o))
	}

	return c
}

// Registry returns the registry holding the collectors.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveItem increments the counter for outcome.
func (c *Collector) ObserveItem(outcome models.Outcome) {
	c.ItemsTotal.WithLabelValues(string(outcome)).Inc()
}

// ObserveRun records run-level gauges from a finished report.
func (c *Collector) ObserveRun(report *models.Report, runErr error) {
	if report == nil {
		c.LastRunSuccess.Set(0)
		return
	}

	c.PlaylistsTotal.Add(float64(report.Playlists))
	if !report.FinishedAt.IsZero() {
		c.LastRunTimestamp.Set(float64(report.FinishedAt.Unix()))
	}
	c.LastRunDuration.Set(report.Duration().Seconds())

	if runErr != nil {
		c.LastRunSuccess.Set(0)
	} else {
		c.LastRunSuccess.Set(1)
	}
}

// WriteTextfile writes the current metric values to path in the Prometheus text format.
//
// The file is replaced atomically.
func (c *Collector) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
