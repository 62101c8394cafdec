// Package metrics tracks run statistics for cube-sniper with Prometheus
// collectors on a private registry.
//
// A CLI run is short lived, so nothing is served over HTTP. Instead the
// registry can be written to a node_exporter textfile after the run. Every
// method is safe to call on a nil *Metrics, which disables collection.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cube_sniper"

// Metrics holds the collectors updated during a run
type Metrics struct {
	registry      *prometheus.Registry
	pagesFetched  prometheus.Counter
	fetchDuration prometheus.Histogram
	eventsParsed  *prometheus.CounterVec
	eventsNearby  prometheus.Gauge
	lastRun       prometheus.Gauge
}

// New creates a Metrics instance with all collectors registered
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
	}

	m.pagesFetched = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pages_fetched_total",
		Help:      "Number of upstream pages fetched.",
	})
	m.fetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fetch_duration_seconds",
		Help:      "Duration of individual upstream fetches.",
		Buckets:   prometheus.DefBuckets,
	})
	m.eventsParsed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_parsed_total",
		Help:      "Competitions parsed from upstream payloads.",
	}, []string{"source"})
	m.eventsNearby = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_nearby",
		Help:      "Competitions within the search radius on the last run.",
	})
	m.lastRun = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time of the last completed run.",
	})

	m.registry.MustRegister(
		m.pagesFetched,
		m.fetchDuration,
		m.eventsParsed,
		m.eventsNearby,
		m.lastRun,
	)

	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// PageFetched records one upstream fetch and how long it took
func (m *Metrics) PageFetched(d time.Duration) {
	if m == nil {
		return
	}
	m.pagesFetched.Inc()
	m.fetchDuration.Observe(d.Seconds())
}

// EventsParsed adds n parsed events for the given source
func (m *Metrics) EventsParsed(source string, n int) {
	if m == nil {
		return
	}
	m.eventsParsed.WithLabelValues(source).Add(float64(n))
}

// RunCompleted records the number of nearby events and the completion time
func (m *Metrics) RunCompleted(nearby int, at time.Time) {
	if m == nil {
		return
	}
	m.eventsNearby.Set(float64(nearby))
	m.lastRun.Set(float64(at.Unix()))
}

// WriteTextfile writes the registry in the Prometheus text format to path
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
