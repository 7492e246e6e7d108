package publish

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts publish outcomes. A nil *Metrics records nothing.
type Metrics struct {
	publishes *prometheus.CounterVec
	duration  prometheus.Histogram
}

// NewMetrics creates the publish metrics and registers them with registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		publishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nearme",
			Subsystem: "publish",
			Name:      "total",
			Help:      "Publish attempts by final stage and success",
		}, []string{"stage", "ok"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nearme",
			Subsystem: "publish",
			Name:      "duration_seconds",
			Help:      "Wall time of a whole publish pipeline",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	registry.MustRegister(m.publishes, m.duration)
	return m
}

func (m *Metrics) observe(res Result, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.publishes.WithLabelValues(string(res.Stage), strconv.FormatBool(res.OK)).Inc()
	m.duration.Observe(elapsed.Seconds())
}
