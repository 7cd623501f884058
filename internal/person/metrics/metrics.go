package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the person module.
// A nil *Metrics is valid and records nothing, so unit tests can skip
// registration against the global prometheus registry.
type Metrics struct {
	PersonsRegistered  prometheus.Counter
	PersonsDeleted     prometheus.Counter
	ValidationFailures prometheus.Counter
	RegisterDuration   prometheus.Histogram
	LookupDuration     prometheus.Histogram
	CacheHits          prometheus.Counter
	CacheMisses        prometheus.Counter
}

// New creates a Metrics instance with all person module metrics registered.
func New() *Metrics {
	return &Metrics{
		PersonsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "persondir_persons_registered_total",
			Help: "Total number of persons registered in the directory",
		}),
		PersonsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "persondir_persons_deleted_total",
			Help: "Total number of persons removed from the directory",
		}),
		ValidationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "persondir_validation_failures_total",
			Help: "Total number of rejected person field values",
		}),
		RegisterDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "persondir_register_duration_seconds",
			Help:    "Duration of Register operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		LookupDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "persondir_lookup_duration_seconds",
			Help:    "Duration of person lookups (read critical path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "persondir_cache_hits_total",
			Help: "Person lookups served from the redis cache",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "persondir_cache_misses_total",
			Help: "Person lookups that fell through to the backing store",
		}),
	}
}

// IncrementRegistered records a successful registration.
func (m *Metrics) IncrementRegistered() {
	if m == nil {
		return
	}
	m.PersonsRegistered.Inc()
}

// IncrementDeleted records a successful deletion.
func (m *Metrics) IncrementDeleted() {
	if m == nil {
		return
	}
	m.PersonsDeleted.Inc()
}

// IncrementValidationFailure records a rejected field value.
func (m *Metrics) IncrementValidationFailure() {
	if m == nil {
		return
	}
	m.ValidationFailures.Inc()
}

// ObserveRegister records the duration of a Register operation.
// Call with time.Now() captured at the start of the operation.
func (m *Metrics) ObserveRegister(start time.Time) {
	if m == nil {
		return
	}
	m.RegisterDuration.Observe(time.Since(start).Seconds())
}

// ObserveLookup records the duration of a lookup operation.
func (m *Metrics) ObserveLookup(start time.Time) {
	if m == nil {
		return
	}
	m.LookupDuration.Observe(time.Since(start).Seconds())
}

// IncrementCacheHit records a lookup served from cache.
func (m *Metrics) IncrementCacheHit() {
	if m == nil {
		return
	}
	m.CacheHits.Inc()
}

// IncrementCacheMiss records a lookup that missed the cache.
func (m *Metrics) IncrementCacheMiss() {
	if m == nil {
		return
	}
	m.CacheMisses.Inc()
}
