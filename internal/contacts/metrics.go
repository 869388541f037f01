package contacts

import (
	"github.com/prometheus/client_golang/prometheus"
	"time"
)

var _ prometheus.Collector = &Metrics{}

// Metrics records the outcome of contact lookups. Metrics implements prometheus.Collector.
//
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	lookups       *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	empty         prometheus.Counter
}

// NewMetrics creates a new Metrics. Namespace and subsystem are prepended to each metric name.
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "contact_lookups_total",
			Help:      "Number of contact lookups, by outcome",
		}, []string{"outcome"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "directory_fetch_seconds",
			Help:      "Time taken to read the contacts directory",
			Buckets:   prometheus.DefBuckets,
		}),
		empty: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "directory_empty_total",
			Help:      "Number of directory reads that returned no rows",
		}),
	}
}

func (m *Metrics) observeLookup(outcome string) {
	if m != nil {
		m.lookups.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) observeFetch(duration time.Duration) {
	if m != nil {
		m.fetchDuration.Observe(duration.Seconds())
	}
}

func (m *Metrics) emptyDirectory() {
	if m != nil {
		m.empty.Inc()
	}
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.lookups.Describe(ch)
	m.fetchDuration.Describe(ch)
	m.empty.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.lookups.Collect(ch)
	m.fetchDuration.Collect(ch)
	m.empty.Collect(ch)
}
