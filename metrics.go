package tagraph

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query outcomes recorded by Metrics.
const (
	OutcomeNarrowed  = "narrowed"
	OutcomeEarlyStop = "early_stop"
	OutcomeNoMatch   = "no_match"
)

// Metrics holds the Prometheus collectors of an Engine.
// A nil *Metrics records nothing.
type Metrics struct {
	queries       *prometheus.CounterVec
	candidates    prometheus.Histogram
	builds        *prometheus.CounterVec
	buildDuration prometheus.Histogram
	items         prometheus.Gauge
	tags          prometheus.Gauge
	edges         prometheus.Gauge
}

// NewMetrics creates the engine collectors and registers them with reg.
// A nil reg creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		queries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tagraph",
			Name:      "query_total",
			Help:      "Total queries by outcome",
		}, []string{"outcome"}),
		candidates: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tagraph",
			Name:      "query_candidates",
			Help:      "Size of the narrowed candidate set per query",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 1000},
		}),
		builds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tagraph",
			Name:      "build_total",
			Help:      "Total index builds by status",
		}, []string{"status"}),
		buildDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tagraph",
			Name:      "build_duration_seconds",
			Help:      "Index build latency",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
		items: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "tagraph",
			Name:      "index_items",
			Help:      "Item nodes in the published index",
		}),
		tags: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "tagraph",
			Name:      "index_tags",
			Help:      "Tag nodes in the published index",
		}),
		edges: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "tagraph",
			Name:      "index_edges",
			Help:      "Edges in the published index",
		}),
	}
}

func (m *Metrics) observeQuery(outcome string, candidates int) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(outcome).Inc()
	m.candidates.Observe(float64(candidates))
}

func (m *Metrics) observeBuild(elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.builds.WithLabelValues(status).Inc()
	m.buildDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) observeIndex(idx *Index) {
	if m == nil || idx == nil {
		return
	}
	m.items.Set(float64(idx.Graph.NumItems()))
	m.tags.Set(float64(idx.Graph.NumTags()))
	m.edges.Set(float64(idx.Graph.NumEdges()))
}
