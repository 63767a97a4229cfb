package sqlsanitize

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes internal counters and gauges for the cache and scratch
// buffers. A nil *Metrics is always safe to use: every method on it is a
// no-op, mirroring the teacher's imetrics.NoopReporter pattern so callers
// that never register a collector pay nothing for it.
type Metrics struct {
	cacheHits            prometheus.Counter
	cacheMisses          prometheus.Counter
	cacheSize            prometheus.Gauge
	cacheInsertsRejected prometheus.Counter
	scratchClaims        *prometheus.CounterVec
}

// NewMetrics builds an unregistered Metrics collector. Call MustRegister
// to expose it on a prometheus.Registerer.
func NewMetrics() *Metrics {
	return &Metrics{
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sqlsanitize_cache_hits_total",
			Help: "Number of Cache.Get calls served from the memoized result cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sqlsanitize_cache_misses_total",
			Help: "Number of Cache.Get calls that had to run the sanitize engine.",
		}),
		cacheSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sqlsanitize_cache_size",
			Help: "Current number of entries held in the result cache.",
		}),
		cacheInsertsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sqlsanitize_cache_insert_rejected_total",
			Help: "Number of computed results discarded because the cache was at capacity.",
		}),
		scratchClaims: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sqlsanitize_scratch_claim_total",
			Help: "Outcome of attempts to claim a reusable scratch buffer.",
		}, []string{"buffer", "outcome"}),
	}
}

// MustRegister registers every metric with reg, panicking on collision —
// following the teacher's cfg.Config.Registry.MustRegister(...) convention
// in pkg/export/prom.
func (m *Metrics) MustRegister(reg prometheus.Registerer) {
	if m == nil {
		return
	}
	reg.MustRegister(m.cacheHits, m.cacheMisses, m.cacheSize, m.cacheInsertsRejected, m.scratchClaims)
}

func (m *Metrics) hit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) miss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

func (m *Metrics) inserted(size int) {
	if m == nil {
		return
	}
	m.cacheSize.Set(float64(size))
}

func (m *Metrics) insertRejected() {
	if m == nil {
		return
	}
	m.cacheInsertsRejected.Inc()
}

func (m *Metrics) scratchClaim(buffer string, hit bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.scratchClaims.WithLabelValues(buffer, outcome).Inc()
}

// activeMetrics is the process-wide collector consulted by Sanitize, which
// takes no Metrics argument of its own (it is a pure function of its
// input per spec). SetMetrics mirrors slog.SetDefault: set it once near
// startup if you want scratch-buffer contention visible.
var activeMetrics atomic.Pointer[Metrics]

// SetMetrics installs m as the process-wide metrics collector consulted
// by Sanitize. Passing nil disables instrumentation.
func SetMetrics(m *Metrics) {
	activeMetrics.Store(m)
}

func currentMetrics() *Metrics {
	return activeMetrics.Load()
}
