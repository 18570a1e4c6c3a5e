package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los instrumentos de Prometheus del servicio.
type Metrics struct {
	InteractionsHandled  *prometheus.CounterVec
	InteractionsRejected *prometheus.CounterVec
	RecallLookups        *prometheus.CounterVec
	RecallRecords        prometheus.Gauge
	HandleLatency        prometheus.Histogram

	gatherer prometheus.Gatherer
}

// NewMetrics registra todo en reg. Con reg nil usa un registry propio.
func NewMetrics(reg *prometheus.Registry, namespace string) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		InteractionsHandled: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interactions_handled_total",
			Help:      "Interactions answered, by interaction type and response type.",
		}, []string{"type", "response"}),
		InteractionsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interactions_rejected_total",
			Help:      "Inbound interactions rejected before reaching the handler, by reason.",
		}, []string{"reason"}),
		RecallLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recall_lookups_total",
			Help:      "Recall store lookups by result.",
		}, []string{"result"}),
		RecallRecords: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "recall_records",
			Help:      "Records held by the recall store after the last read.",
		}),
		HandleLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "interaction_handle_latency_ms",
			Help:      "Time spent building an interaction response in milliseconds.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 25, 50, 100, 250},
		}),
		gatherer: reg,
	}
}

func (m *Metrics) ObserveHandle(d time.Duration) {
	m.HandleLatency.Observe(float64(d.Microseconds()) / 1000)
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
