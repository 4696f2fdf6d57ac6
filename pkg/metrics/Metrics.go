package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const NAMESPACE = "sapha"

func NewCounter(name string, help string, labels []string) *Counter {
	metric := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: NAMESPACE,
			Name:      name,
			Help:      help,
		},
		labels,
	)

	return &Counter{
		metric: register(metric).(*prometheus.CounterVec),
	}
}

func NewHistogram(name string, help string, labels []string, buckets []float64) *Histogram {
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}

	metric := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: NAMESPACE,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)

	return &Histogram{
		metric: register(metric).(*prometheus.HistogramVec),
	}
}
