package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SubmissionMetrics records gateway dispatch outcomes.
type SubmissionMetrics struct {
	dispatched *prometheus.CounterVec
	refused    *prometheus.CounterVec
	failed     *prometheus.CounterVec
	fallbacks  *prometheus.CounterVec
}

// NewSubmissionMetrics registers the submission metrics on the provided registerer.
func NewSubmissionMetrics(reg prometheus.Registerer) *SubmissionMetrics {
	if reg == nil {
		return &SubmissionMetrics{}
	}
	dispatched := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "submissions_dispatched_total",
		Help: "Submissions handed to a delivery channel.",
	}, []string{"kind", "channel"})
	refused := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "submissions_refused_total",
		Help: "Submissions rejected by the validation gate.",
	}, []string{"kind"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "submissions_failed_total",
		Help: "Submissions whose channel call returned an error.",
	}, []string{"kind", "channel"})
	fallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "submissions_bridge_fallback_total",
		Help: "Bridge failures that were retried through the link channel.",
	}, []string{"kind"})
	reg.MustRegister(dispatched, refused, failed, fallbacks)
	return &SubmissionMetrics{
		dispatched: dispatched,
		refused:    refused,
		failed:     failed,
		fallbacks:  fallbacks,
	}
}

func (m *SubmissionMetrics) IncDispatched(kind, channel string) {
	if m == nil || m.dispatched == nil {
		return
	}
	m.dispatched.WithLabelValues(normalizeLabel(kind), normalizeLabel(channel)).Inc()
}

func (m *SubmissionMetrics) IncRefused(kind string) {
	if m == nil || m.refused == nil {
		return
	}
	m.refused.WithLabelValues(normalizeLabel(kind)).Inc()
}

func (m *SubmissionMetrics) IncFailed(kind, channel string) {
	if m == nil || m.failed == nil {
		return
	}
	m.failed.WithLabelValues(normalizeLabel(kind), normalizeLabel(channel)).Inc()
}

func (m *SubmissionMetrics) IncFallback(kind string) {
	if m == nil || m.fallbacks == nil {
		return
	}
	m.fallbacks.WithLabelValues(normalizeLabel(kind)).Inc()
}

// QuoteMetrics counts calculator recomputations.
type QuoteMetrics struct {
	computed *prometheus.CounterVec
}

// NewQuoteMetrics registers the quote metrics on the provided registerer.
func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	if reg == nil {
		return &QuoteMetrics{}
	}
	computed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quotes_computed_total",
		Help: "Quotes computed, by product category.",
	}, []string{"category"})
	reg.MustRegister(computed)
	return &QuoteMetrics{computed: computed}
}

func (m *QuoteMetrics) IncComputed(category string) {
	if m == nil || m.computed == nil {
		return
	}
	m.computed.WithLabelValues(normalizeLabel(category)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
