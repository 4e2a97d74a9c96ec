package prometheus

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

var numErrorsDesc = prometheus.NewDesc(
	"bulk_unzipper_errors_total",
	"The number of logged errors and warnings.",
	[]string{"level"},
	nil,
)

// LogHook counts log entries of warning level and above so they can be
// exported along with other metrics.
type LogHook struct {
	lock         sync.RWMutex
	errorsNumber map[logrus.Level]float64
}

func (lh *LogHook) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
		logrus.WarnLevel,
	}
}

func (lh *LogHook) Fire(entry *logrus.Entry) error {
	lh.lock.Lock()
	defer lh.lock.Unlock()

	lh.errorsNumber[entry.Level]++
	return nil
}

func (lh *LogHook) Describe(ch chan<- *prometheus.Desc) {
	ch <- numErrorsDesc
}

func (lh *LogHook) Collect(ch chan<- prometheus.Metric) {
	lh.lock.RLock()
	defer lh.lock.RUnlock()

	for level, number := range lh.errorsNumber {
		ch <- prometheus.MustNewConstMetric(numErrorsDesc, prometheus.CounterValue, number, level.String())
	}
}

func NewLogHook() *LogHook {
	lh := &LogHook{}

	levels := lh.Levels()
	lh.errorsNumber = make(map[logrus.Level]float64, len(levels))
	for _, level := range levels {
		lh.errorsNumber[level] = 0
	}

	return lh
}
