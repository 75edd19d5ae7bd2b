package metrics

import "github.com/prometheus/client_golang/prometheus"

// ContactMetrics exposes counters/histograms for the contact pipeline.
type ContactMetrics struct {
	submissionsTotal *prometheus.CounterVec
	dispatchTotal    *prometheus.CounterVec
	dispatchLatency  *prometheus.HistogramVec
}

func NewContactMetrics(reg prometheus.Registerer) *ContactMetrics {
	m := &ContactMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gpucloud",
			Subsystem: "contact",
			Name:      "submissions_total",
			Help:      "Total contact form submissions by gateway outcome",
		}, []string{"status"}),
		dispatchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gpucloud",
			Subsystem: "contact",
			Name:      "dispatch_total",
			Help:      "Total outbound email dispatch attempts",
		}, []string{"provider", "status"}),
		dispatchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gpucloud",
			Subsystem: "contact",
			Name:      "dispatch_latency_seconds",
			Help:      "Latency of email provider calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.dispatchTotal, m.dispatchLatency)
	return m
}

// ObserveSubmission counts one gateway response.
func (m *ContactMetrics) ObserveSubmission(status string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(status).Inc()
}

// ObserveDispatch counts one provider call and records its latency.
func (m *ContactMetrics) ObserveDispatch(provider, status string, seconds float64) {
	if m == nil {
		return
	}
	m.dispatchTotal.WithLabelValues(provider, status).Inc()
	m.dispatchLatency.WithLabelValues(provider).Observe(seconds)
}
