// Package metrics exposes Prometheus instruments for the activity clients.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var durationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

// Metrics bundles the instruments. A nil *Metrics is valid and records
// nothing, so tests can leave it out.
type Metrics struct {
	ExtractionRequests   *prometheus.CounterVec
	ExtractionDuration   prometheus.Histogram
	VerificationRequests *prometheus.CounterVec
	VerificationDuration prometheus.Histogram
	OTPDeliveries        *prometheus.CounterVec
}

// New registers the instruments on the default registry. Call once per
// process.
func New() *Metrics {
	return &Metrics{
		ExtractionRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_extraction_requests_total",
			Help: "Document extraction calls by kind and outcome",
		}, []string{"kind", "outcome"}),
		ExtractionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "kyc_extraction_duration_seconds",
			Help:    "Duration of document extraction calls",
			Buckets: durationBuckets,
		}),
		VerificationRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_verification_requests_total",
			Help: "Dossier verification calls by outcome",
		}, []string{"outcome"}),
		VerificationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "kyc_verification_duration_seconds",
			Help:    "Duration of dossier verification calls",
			Buckets: durationBuckets,
		}),
		OTPDeliveries: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_otp_deliveries_total",
			Help: "One-time code deliveries by outcome",
		}, []string{"outcome"}),
	}
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) ObserveExtraction(kind string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.ExtractionRequests.WithLabelValues(kind, outcome(err)).Inc()
	m.ExtractionDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveVerification(start time.Time, err error) {
	if m == nil {
		return
	}
	m.VerificationRequests.WithLabelValues(outcome(err)).Inc()
	m.VerificationDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) CountOTPDelivery(err error) {
	if m == nil {
		return
	}
	m.OTPDeliveries.WithLabelValues(outcome(err)).Inc()
}
