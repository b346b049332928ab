package serve

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the dev server collectors on an isolated registry.
type Metrics struct {
	Registry *prometheus.Registry

	RebuildsTotal          *prometheus.CounterVec
	RebuildDurationSeconds prometheus.Histogram
	Posts                  prometheus.Gauge
	Series                 prometheus.Gauge
	Warnings               prometheus.Gauge
	RequestsTotal          *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector())
	reg.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m := &Metrics{
		Registry: reg,
		RebuildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_rebuilds_total",
				Help: "Content reloads by result.",
			},
			[]string{"result"},
		),
		RebuildDurationSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "folio_rebuild_duration_seconds",
				Help:    "Time spent loading and resolving content.",
				Buckets: prometheus.DefBuckets,
			},
		),
		Posts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "folio_posts",
			Help: "Published posts in the current snapshot.",
		}),
		Series: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "folio_series",
			Help: "Series with at least one post.",
		}),
		Warnings: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "folio_content_warnings",
			Help: "Documents skipped or shadowed during the last load.",
		}),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_requests_total",
				Help: "Page requests by route kind and status code.",
			},
			[]string{"kind", "code"},
		),
	}

	reg.MustRegister(
		m.RebuildsTotal,
		m.RebuildDurationSeconds,
		m.Posts,
		m.Series,
		m.Warnings,
		m.RequestsTotal,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
