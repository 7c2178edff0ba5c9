// Package metrics exposes submission and connectivity metrics for Prometheus.
package metrics

import (
	"context"

	"github.com/aretw0/sfsweb/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns the client's Prometheus collectors.
type Collector struct {
	Submissions  *prometheus.CounterVec
	Duration     *prometheus.HistogramVec
	Suppressed   *prometheus.CounterVec
	Connectivity *prometheus.GaugeVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sfsweb_submissions_total",
				Help: "Total number of resolved submissions by action and outcome",
			},
			[]string{"action", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sfsweb_submission_duration_seconds",
				Help:    "Round trip duration of submissions",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"action"},
		),
		Suppressed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sfsweb_submissions_suppressed_total",
				Help: "Triggers refused because the same action was still in flight",
			},
			[]string{"action"},
		),
		Connectivity: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sfsweb_backend_online",
				Help: "1 when the last health check succeeded, 0 otherwise",
			},
			[]string{"url"},
		),
	}
	reg.MustRegister(c.Submissions, c.Duration, c.Suppressed, c.Connectivity)
	return c
}

// Hooks returns lifecycle hooks that record into the collectors.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSettle: func(ctx context.Context, e *domain.SettleEvent) {
			if e.Outcome == domain.OutcomeSuppressed {
				c.Suppressed.WithLabelValues(e.Action).Inc()
				return
			}
			c.Submissions.WithLabelValues(e.Action, string(e.Outcome)).Inc()
			c.Duration.WithLabelValues(e.Action).Observe(e.Duration.Seconds())
		},
		OnConnectivity: func(ctx context.Context, e *domain.ConnectivityEvent) {
			v := 0.0
			if e.Connectivity == domain.ConnectivityOnline {
				v = 1
			}
			c.Connectivity.WithLabelValues(e.URL).Set(v)
		},
	}
}
