package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records draw metrics on its own registry
type Collector struct {
	registry *prometheus.Registry

	drawsTotal     *prometheus.CounterVec
	personsTotal   prometheus.Counter
	skippedTotal   prometheus.Counter
	drawDuration   prometheus.Histogram
	coverageScores prometheus.Histogram
}

// NewCollector creates a collector with a fresh registry, so tests can build as many as they like
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		drawsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wichtel_draws_total",
				Help: "Total number of draws by exhaustion policy and outcome",
			},
			[]string{"policy", "outcome"},
		),
		personsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "wichtel_persons_total",
				Help: "Total number of persons submitted to draws",
			},
		),
		skippedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "wichtel_persons_skipped_total",
				Help: "Total number of persons left without a recipient",
			},
		),
		drawDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "wichtel_draw_duration_seconds",
				Help:    "Duration of the draw itself, excluding storage",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8), // 10us .. ~160ms
			},
		),
		coverageScores: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "wichtel_coverage_score",
				Help:    "Percentage of persons that received a recipient",
				Buckets: prometheus.LinearBuckets(0, 10, 11), // 0, 10, ..., 100
			},
		),
	}
}

// ObserveDraw records one draw. outcome is "ok" or "exhausted".
func (c *Collector) ObserveDraw(policy, outcome string, persons, skipped int, coverage float64, d time.Duration) {
	c.drawsTotal.WithLabelValues(policy, outcome).Inc()
	c.personsTotal.Add(float64(persons))
	c.skippedTotal.Add(float64(skipped))
	c.drawDuration.Observe(d.Seconds())
	if outcome == "ok" {
		c.coverageScores.Observe(coverage)
	}
}

// Handler serves the collected metrics in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
