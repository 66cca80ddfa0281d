package metrics

import (
	"net/http"
	"time"

	"github.com/lysyi3m/deal-comb/app/affiliate"
	"github.com/lysyi3m/deal-comb/app/resolver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dealcomb"

// Metrics owns a private registry so several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	linksProcessed *prometheus.CounterVec
	resolutions    *prometheus.CounterVec
	postsScraped   *prometheus.CounterVec
	feedRuns       *prometheus.CounterVec
	runDuration    prometheus.Histogram
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		linksProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "links_processed_total",
			Help:      "Links run through affiliate processing, by injection outcome.",
		}, []string{"outcome"}),
		resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "URL resolutions, by how the final URL was obtained.",
		}, []string{"source"}),
		postsScraped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_scraped_total",
			Help:      "Blog posts scraped, by status.",
		}, []string{"status"}),
		feedRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_runs_total",
			Help:      "Feed runs, by status.",
		}, []string{"status"}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of feed runs.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
	}
}

func (m *Metrics) ObserveLink(source resolver.Source, outcome affiliate.Outcome) {
	m.resolutions.WithLabelValues(source.String()).Inc()
	m.linksProcessed.WithLabelValues(outcome.String()).Inc()
}

func (m *Metrics) ObservePost(failed bool) {
	m.postsScraped.WithLabelValues(status(failed)).Inc()
}

func (m *Metrics) ObserveRun(failed bool, duration time.Duration) {
	m.feedRuns.WithLabelValues(status(failed)).Inc()
	m.runDuration.Observe(duration.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func status(failed bool) string {
	if failed {
		return "error"
	}
	return "success"
}
