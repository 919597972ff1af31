package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. Construct once in
// main; promauto registers against the default registry, so a second New in
// the same process panics.
type Metrics struct {
	ValidationsTotal     *prometheus.CounterVec
	ValidationDuration   prometheus.Histogram
	AccountsRegistered   prometheus.Counter
	RestoreIntegrityFail prometheus.Counter
	CacheHits            prometheus.Counter
	CacheMisses          prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ValidationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ibangate_validations_total",
			Help: "IBAN validations by outcome (valid, malformed, unknown_country, wrong_checksum)",
		}, []string{"outcome"}),
		ValidationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ibangate_validation_duration_seconds",
			Help:    "Latency of a single IBAN validation",
			Buckets: []float64{.000001, .00001, .0001, .001, .01},
		}),
		AccountsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ibangate_accounts_registered_total",
			Help: "Total number of validated accounts registered",
		}),
		RestoreIntegrityFail: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ibangate_restore_integrity_failures_total",
			Help: "Persisted account records that failed re-validation on restore",
		}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ibangate_account_cache_hits_total",
			Help: "Account reads served from the Redis cache",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ibangate_account_cache_misses_total",
			Help: "Account reads that fell through to the primary store",
		}),
	}
}

// ObserveValidation records one validation with its outcome label.
func (m *Metrics) ObserveValidation(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.ValidationsTotal.WithLabelValues(outcome).Inc()
	m.ValidationDuration.Observe(seconds)
}

// IncAccountsRegistered increments the registered accounts counter by 1.
func (m *Metrics) IncAccountsRegistered() {
	if m == nil {
		return
	}
	m.AccountsRegistered.Inc()
}

// IncRestoreIntegrityFail counts a restore that was aborted by re-validation.
func (m *Metrics) IncRestoreIntegrityFail() {
	if m == nil {
		return
	}
	m.RestoreIntegrityFail.Inc()
}

// IncCacheHit counts an account read served from cache.
func (m *Metrics) IncCacheHit() {
	if m == nil {
		return
	}
	m.CacheHits.Inc()
}

// IncCacheMiss counts an account read that missed the cache.
func (m *Metrics) IncCacheMiss() {
	if m == nil {
		return
	}
	m.CacheMisses.Inc()
}
