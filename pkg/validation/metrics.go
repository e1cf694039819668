package validation

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultValid   = "valid"
	resultInvalid = "invalid"
	resultFault   = "fault"
)

// Metrics exposes pass counters and latencies to Prometheus. A nil *Metrics
// records nothing.
type Metrics struct {
	passes        *prometheus.CounterVec
	duration      prometheus.Histogram
	notifications prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg. Collectors
// that are already registered are reused, so several engines may share one
// registry.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		passes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forms",
			Subsystem: "validation",
			Name:      "passes_total",
			Help:      "Validation passes by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "forms",
			Subsystem: "validation",
			Name:      "pass_duration_seconds",
			Help:      "Duration of validation passes.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		notifications: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "forms",
			Subsystem: "validation",
			Name:      "error_notifications_total",
			Help:      "Errors-changed notifications emitted by validation passes.",
		}),
	}

	var err error
	m.passes, err = register(reg, m.passes)
	if err != nil {
		return nil, err
	}
	m.duration, err = register(reg, m.duration)
	if err != nil {
		return nil, err
	}
	m.notifications, err = register(reg, m.notifications)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *Metrics) observePass(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.passes.WithLabelValues(result).Inc()
	m.duration.Observe(d.Seconds())
}

func (m *Metrics) errorsChanged(n int) {
	if m == nil || n == 0 {
		return
	}
	m.notifications.Add(float64(n))
}
