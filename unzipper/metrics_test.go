//go:build !integration

package unzipper

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()

	inner := zipBytes(t, entry{name: "c.txt", data: []byte("c")})
	writeZip(t, filepath.Join(src, "a.zip"),
		entry{name: "inner.zip", data: inner},
		entry{name: "broken.zip", data: []byte("garbage")},
	)
	require.NoError(t, os.WriteFile(filepath.Join(src, "b.zip"), []byte("corrupt"), 0o600))

	metrics := NewMetrics()
	r := &Runner{
		Extractor: &Extractor{Metrics: metrics},
		Metrics:   metrics,
	}

	_, err := r.Run(context.Background(), src, dest)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.archives.WithLabelValues(statusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.archives.WithLabelValues(statusFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.nested.WithLabelValues(statusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.nested.WithLabelValues(statusFailure)))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.batchCompleted))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.batchTotal))
}

func TestNilMetrics(t *testing.T) {
	var metrics *Metrics

	assert.NotPanics(t, func() {
		metrics.observeArchive(true, 0)
		metrics.observeNested(statusSkipped)
		metrics.setBatch(1, 2)
	})
}

func TestMetricsWriteToTextfile(t *testing.T) {
	metrics := NewMetrics()
	metrics.observeArchive(true, 0)
	metrics.setBatch(1, 1)

	extra := prometheus.NewCounter(prometheus.CounterOpts{Name: "extra_total", Help: "extra"})
	extra.Inc()

	path := filepath.Join(t.TempDir(), "bulk-unzipper.prom")
	require.NoError(t, metrics.WriteToTextfile(path, extra))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `bulk_unzipper_archives_total{status="success"} 1`)
	assert.Contains(t, string(data), "bulk_unzipper_batch_total 1")
	assert.Contains(t, string(data), "extra_total 1")

	err = metrics.WriteToTextfile(path, metrics)
	assert.Error(t, err, "registering the same collector twice")
}
