package unzipper

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"
	statusSkipped = "skipped"
)

var (
	_ prometheus.Collector = &Metrics{}
)

// Metrics counts what a batch did. A nil *Metrics discards everything.
type Metrics struct {
	archives        *prometheus.CounterVec
	nested          *prometheus.CounterVec
	archiveDuration prometheus.Histogram
	batchCompleted  prometheus.Gauge
	batchTotal      prometheus.Gauge
}

func NewMetrics() *Metrics {
	return &Metrics{
		archives: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bulk_unzipper_archives_total",
			Help: "Total number of top-level archives processed, by outcome",
		}, []string{"status"}),
		nested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bulk_unzipper_nested_archives_total",
			Help: "Total number of nested archives found, by outcome",
		}, []string{"status"}),
		archiveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bulk_unzipper_archive_duration_seconds",
			Help:    "Time spent extracting a top-level archive including everything nested in it",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		batchCompleted: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bulk_unzipper_batch_completed",
			Help: "Number of archives of the current batch that were processed",
		}),
		batchTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bulk_unzipper_batch_total",
			Help: "Number of archives in the current batch",
		}),
	}
}

func (m *Metrics) Describe(descs chan<- *prometheus.Desc) {
	m.archives.Describe(descs)
	m.nested.Describe(descs)
	m.archiveDuration.Describe(descs)
	m.batchCompleted.Describe(descs)
	m.batchTotal.Describe(descs)
}

func (m *Metrics) Collect(metrics chan<- prometheus.Metric) {
	m.archives.Collect(metrics)
	m.nested.Collect(metrics)
	m.archiveDuration.Collect(metrics)
	m.batchCompleted.Collect(metrics)
	m.batchTotal.Collect(metrics)
}

// WriteToTextfile writes the metrics, together with any extra collectors,
// in the text exposition format used by the node exporter textfile
// collector.
func (m *Metrics) WriteToTextfile(path string, extra ...prometheus.Collector) error {
	registry := prometheus.NewRegistry()
	if err := registry.Register(m); err != nil {
		return err
	}

	for _, c := range extra {
		if err := registry.Register(c); err != nil {
			return err
		}
	}

	return prometheus.WriteToTextfile(path, registry)
}

func (m *Metrics) observeArchive(success bool, d time.Duration) {
	if m == nil {
		return
	}

	m.archives.WithLabelValues(status(success)).Inc()
	m.archiveDuration.Observe(d.Seconds())
}

func (m *Metrics) observeNested(status string) {
	if m == nil {
		return
	}

	m.nested.WithLabelValues(status).Inc()
}

func (m *Metrics) setBatch(completed, total int) {
	if m == nil {
		return
	}

	m.batchCompleted.Set(float64(completed))
	m.batchTotal.Set(float64(total))
}

func status(success bool) string {
	if success {
		return statusSuccess
	}
	return statusFailure
}
