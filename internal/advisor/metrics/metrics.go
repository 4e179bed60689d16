package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the advisor module.
type Metrics struct {
	// Generation pass latencies by pass
	PassLatency *prometheus.HistogramVec

	// Generation pass failures by pass
	PassFailures *prometheus.CounterVec

	// Advise outcomes by domain and risk level
	AdviseOutcome *prometheus.CounterVec

	// Recommendations returned per invocation
	Recommendations prometheus.Histogram

	// Overall advise latency including all passes
	AdviseLatency prometheus.Histogram

	// Result cache hits and misses
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Rejected advisory queries
	ValidationFailures prometheus.Counter
}

// New creates a new Metrics instance with all advisor module metrics registered.
func New() *Metrics {
	return &Metrics{
		PassLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "counsel_advisor_pass_duration_seconds",
			Help:    "Duration of candidate generation passes by pass",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}, []string{"pass"}), // pass: "domain_rules", "patterns", "optimization"

		PassFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "counsel_advisor_pass_failures_total",
			Help: "Total generation pass failures by pass",
		}, []string{"pass"}),

		AdviseOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "counsel_advisor_outcomes_total",
			Help: "Total advise outcomes by domain and risk level",
		}, []string{"domain", "risk_level"}),

		Recommendations: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "counsel_advisor_recommendations_returned",
			Help:    "Number of recommendations returned per advise invocation",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 10},
		}),

		AdviseLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "counsel_advisor_advise_duration_seconds",
			Help:    "Duration of full advise invocations including generation",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}),

		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "counsel_advisor_cache_hits_total",
			Help: "Total advise result cache hits",
		}),

		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "counsel_advisor_cache_misses_total",
			Help: "Total advise result cache misses",
		}),

		ValidationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "counsel_advisor_validation_failures_total",
			Help: "Total advisory queries rejected during resolution",
		}),
	}
}

// ObserveGenerationPass records the duration of one generation pass.
func (m *Metrics) ObserveGenerationPass(pass string, d time.Duration) {
	if m != nil {
		m.PassLatency.WithLabelValues(pass).Observe(d.Seconds())
	}
}

// IncGenerationPassFailure records a degraded generation pass.
func (m *Metrics) IncGenerationPassFailure(pass string) {
	if m != nil {
		m.PassFailures.WithLabelValues(pass).Inc()
	}
}

// ObserveAdvise records a completed advise invocation.
func (m *Metrics) ObserveAdvise(domain, riskLevel string, recommendations int, d time.Duration) {
	if m != nil {
		m.AdviseOutcome.WithLabelValues(domain, riskLevel).Inc()
		m.Recommendations.Observe(float64(recommendations))
		m.AdviseLatency.Observe(d.Seconds())
	}
}

// IncCacheHit records an advise result served from cache.
func (m *Metrics) IncCacheHit() {
	if m != nil {
		m.CacheHits.Inc()
	}
}

// IncCacheMiss records an advise invocation not served from cache.
func (m *Metrics) IncCacheMiss() {
	if m != nil {
		m.CacheMisses.Inc()
	}
}

// IncValidationFailure records a rejected advisory query.
func (m *Metrics) IncValidationFailure() {
	if m != nil {
		m.ValidationFailures.Inc()
	}
}
