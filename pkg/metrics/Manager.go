package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

type Counter struct {
	metric *prometheus.CounterVec
}

type Histogram struct {
	metric *prometheus.HistogramVec
}

func (c *Counter) Increment(labels ...string) {
	c.metric.WithLabelValues(labels...).Inc()
}

func (c *Counter) Get() *prometheus.CounterVec {
	return c.metric
}

func (h *Histogram) Observe(value float64, labels ...string) {
	h.metric.WithLabelValues(labels...).Observe(value)
}

func (h *Histogram) Get() *prometheus.HistogramVec {
	return h.metric
}

// register tolerates a collector already registered under the same descriptor
// and returns the existing one in that case.
func register(collector prometheus.Collector) prometheus.Collector {
	err := prometheus.Register(collector)

	if err != nil {
		var already prometheus.AlreadyRegisteredError

		if errors.As(err, &already) {
			return already.ExistingCollector
		}

		panic(err)
	}

	return collector
}
