package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Singleton to ensure metrics are registered only once
	once sync.Once

	// metricsInitialized tracks whether metrics have been initialized
	metricsInitialized bool
	metricsLock        sync.RWMutex
)

// State Metrics (with monitor label)
var (
	// StateActiveReaders tracks distinct reader tasks inside the critical section
	StateActiveReaders *prometheus.GaugeVec

	// StateActiveWriters tracks distinct writer tasks inside the critical section
	StateActiveWriters *prometheus.GaugeVec

	// StateWaitingReaders tracks reader tasks parked on the reader condition variable
	StateWaitingReaders *prometheus.GaugeVec

	// StateWaitingWriters tracks writer tasks parked on the writer condition variable
	StateWaitingWriters *prometheus.GaugeVec

	// StateBlockNewReaders indicates whether the reader-side bias gate is closed
	StateBlockNewReaders *prometheus.GaugeVec

	// StateBlockNewWriters indicates whether the writer-side bias gate is closed
	StateBlockNewWriters *prometheus.GaugeVec

	// StateMaxReaders tracks the configured reader capacity
	StateMaxReaders *prometheus.GaugeVec

	// StateMaxWriters tracks the configured writer capacity
	StateMaxWriters *prometheus.GaugeVec
)

// Operation Metrics (Event-triggered)
var (
	// AcquisitionsTotal tracks completed acquisitions (kind: initial or reentrant)
	AcquisitionsTotal *prometheus.CounterVec

	// ReleasesTotal tracks completed releases (kind: nested or final)
	ReleasesTotal *prometheus.CounterVec

	// WakeupsTotal tracks broadcasts issued by the wake policy, by woken side
	WakeupsTotal *prometheus.CounterVec

	// TryFailuresTotal tracks non-blocking acquisition attempts that bounced
	TryFailuresTotal *prometheus.CounterVec

	// MisuseTotal tracks detected contract violations by failed check
	MisuseTotal *prometheus.CounterVec

	// AcquireWaitDuration tracks how long acquirers spent parked
	AcquireWaitDuration *prometheus.HistogramVec
)

// InitMetrics initializes and registers all Prometheus metrics
// This function is safe to call multiple times (uses sync.Once)
func InitMetrics() {
	once.Do(func() {
		initStateMetrics()
		initOperationMetrics()

		metricsLock.Lock()
		metricsInitialized = true
		metricsLock.Unlock()
	})
}

// IsInitialized returns whether metrics have been initialized
func IsInitialized() bool {
	metricsLock.RLock()
	defer metricsLock.RUnlock()
	return metricsInitialized
}

// IsMetricsEnabled reports whether recording should happen at all.
// Recording is enabled once InitMetrics has run, whether it was called
// by a monitor created with metrics on, by StartMetricsServer, or
// directly.
func IsMetricsEnabled() bool {
	return IsInitialized()
}

func initStateMetrics() {
	StateActiveReaders = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "rw_monitor",
			Subsystem: "state",
			Name:      "active_readers",
			Help:      "Distinct reader tasks currently inside the critical section",
		},
		[]string{"monitor"},
	)

	StateActiveWriters = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "rw_monitor",
			Subsystem: "state",
			Name:      "active_writers",
			Help:      "Distinct writer tasks currently inside the critical section",
		},
		[]string{"monitor"},
	)

	StateWaitingReaders = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "rw_monitor",
			Subsystem: "state",
			Name:      "waiting_readers",
			Help:      "Reader tasks currently parked waiting for entry",
		},
		[]string{"monitor"},
	)

	StateWaitingWriters = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "rw_monitor",
			Subsystem: "state",
			Name:      "waiting_writers",
			Help:      "Writer tasks currently parked waiting for entry",
		},
		[]string{"monitor"},
	)

	StateBlockNewReaders = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "rw_monitor",
			Subsystem: "state",
			Name:      "block_new_readers",
			Help:      "Whether arriving readers are being held back to drain writers (1 = yes)",
		},
		[]string{"monitor"},
	)

	StateBlockNewWriters = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "rw_monitor",
			Subsystem: "state",
			Name:      "block_new_writers",
			Help:      "Whether arriving writers are being held back to drain readers (1 = yes)",
		},
		[]string{"monitor"},
	)

	StateMaxReaders = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "rw_monitor",
			Subsystem: "state",
			Name:      "max_readers",
			Help:      "Configured cap on concurrent distinct reader tasks",
		},
		[]string{"monitor"},
	)

	StateMaxWriters = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "rw_monitor",
			Subsystem: "state",
			Name:      "max_writers",
			Help:      "Configured cap on concurrent distinct writer tasks",
		},
		[]string{"monitor"},
	)
}

func initOperationMetrics() {
	AcquisitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rw_monitor",
			Subsystem: "operations",
			Name:      "acquisitions_total",
			Help:      "Total completed lock acquisitions",
		},
		[]string{"monitor", "role", "kind"},
	)

	ReleasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rw_monitor",
			Subsystem: "operations",
			Name:      "releases_total",
			Help:      "Total completed lock releases",
		},
		[]string{"monitor", "role", "kind"},
	)

	WakeupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rw_monitor",
			Subsystem: "operations",
			Name:      "wakeups_total",
			Help:      "Total broadcasts issued by the wake policy",
		},
		[]string{"monitor", "side"},
	)

	TryFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rw_monitor",
			Subsystem: "operations",
			Name:      "try_failures_total",
			Help:      "Total non-blocking acquisition attempts that failed",
		},
		[]string{"monitor", "role"},
	)

	MisuseTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rw_monitor",
			Subsystem: "operations",
			Name:      "misuse_total",
			Help:      "Total detected contract violations",
		},
		[]string{"check"},
	)

	AcquireWaitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rw_monitor",
			Subsystem: "operations",
			Name:      "acquire_wait_seconds",
			Help:      "Time acquirers spent parked before entering the critical section",
			Buckets:   []float64{.000001, .00001, .0001, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"monitor", "role"},
	)
}
