// Package metrics exposes Prometheus instrumentation for the output router
// and the notification engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Render outcome labels.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Collector manages Prometheus metrics for rendering and notification
// dispatch. A nil *Collector is valid and records nothing.
type Collector struct {
	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	notifications  *prometheus.CounterVec
}

// NewCollector creates a collector and registers its metrics with reg. Pass
// prometheus.DefaultRegisterer outside of tests.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "facet_renders_total",
				Help: "Total render requests by format and outcome",
			},
			[]string{"format", "status"},
		),
		renderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "facet_render_duration_seconds",
				Help:    "Render duration in seconds by format",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format"},
		),
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "facet_notifications_total",
				Help: "Total notification dispatches by outcome",
			},
			[]string{"status"},
		),
	}
	reg.MustRegister(c.renders, c.renderDuration, c.notifications)
	return c
}

// ObserveRender records one render attempt.
func (c *Collector) ObserveRender(format, status string, d time.Duration) {
	if c == nil {
		return
	}
	c.renders.WithLabelValues(format, status).Inc()
	c.renderDuration.WithLabelValues(format).Observe(d.Seconds())
}

// ObserveNotification records one notification dispatch attempt.
func (c *Collector) ObserveNotification(status string) {
	if c == nil {
		return
	}
	c.notifications.WithLabelValues(status).Inc()
}
