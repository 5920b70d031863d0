package metrics

import (
	"sync"

	"github.com/neerajchowdary889/RWMonitor/types"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// defaultRegistry is the default Prometheus registry
	defaultRegistry *prometheus.Registry

	// sources holds the monitors the collector samples, by monitor name
	sources     = make(map[string]SnapshotSource)
	sourcesLock sync.RWMutex
)

// SnapshotSource is anything the collector can sample. The Monitor
// package satisfies it; keeping the interface here avoids an import
// cycle between metrics and the monitor.
type SnapshotSource interface {
	Name() string
	Snapshot() types.Snapshot
}

// GetRegistry returns the Prometheus registry
// If metrics haven't been initialized, it returns the default registry
func GetRegistry() *prometheus.Registry {
	if defaultRegistry == nil {
		defaultRegistry = prometheus.DefaultRegisterer.(*prometheus.Registry)
	}
	return defaultRegistry
}

// RegisterMonitor adds src to the set of monitors the collector samples
// and publishes its current state immediately.
func RegisterMonitor(src SnapshotSource) {
	sourcesLock.Lock()
	sources[src.Name()] = src
	sourcesLock.Unlock()

	PublishSnapshot(src.Name(), src.Snapshot())
}

// UnregisterMonitor removes a monitor from sampling and deletes its
// state series. Called on destroy.
func UnregisterMonitor(name string) {
	sourcesLock.Lock()
	delete(sources, name)
	sourcesLock.Unlock()

	if !IsInitialized() {
		return
	}
	for _, g := range stateGauges() {
		g.DeleteLabelValues(name)
	}
}

// RegisteredMonitors returns the currently registered snapshot sources.
func RegisteredMonitors() []SnapshotSource {
	sourcesLock.RLock()
	defer sourcesLock.RUnlock()

	out := make([]SnapshotSource, 0, len(sources))
	for _, src := range sources {
		out = append(out, src)
	}
	return out
}

// PublishSnapshot pushes one monitor snapshot into the state gauges.
func PublishSnapshot(name string, snap types.Snapshot) {
	if !IsMetricsEnabled() {
		return
	}

	StateActiveReaders.WithLabelValues(name).Set(float64(snap.ActiveReaders))
	StateActiveWriters.WithLabelValues(name).Set(float64(snap.ActiveWriters))
	StateWaitingReaders.WithLabelValues(name).Set(float64(snap.WaitingReaders))
	StateWaitingWriters.WithLabelValues(name).Set(float64(snap.WaitingWriters))
	StateBlockNewReaders.WithLabelValues(name).Set(boolToGauge(snap.BlockNewReaders))
	StateBlockNewWriters.WithLabelValues(name).Set(boolToGauge(snap.BlockNewWriters))
	StateMaxReaders.WithLabelValues(name).Set(float64(snap.MaxReaders))
	StateMaxWriters.WithLabelValues(name).Set(float64(snap.MaxWriters))
}

// ResetMetrics resets all metrics to their initial state
// This is primarily useful for testing
func ResetMetrics() {
	if !IsInitialized() {
		return
	}

	for _, g := range stateGauges() {
		g.Reset()
	}

	AcquisitionsTotal.Reset()
	ReleasesTotal.Reset()
	WakeupsTotal.Reset()
	TryFailuresTotal.Reset()
	MisuseTotal.Reset()
	AcquireWaitDuration.Reset()
}

func stateGauges() []*prometheus.GaugeVec {
	return []*prometheus.GaugeVec{
		StateActiveReaders,
		StateActiveWriters,
		StateWaitingReaders,
		StateWaitingWriters,
		StateBlockNewReaders,
		StateBlockNewWriters,
		StateMaxReaders,
		StateMaxWriters,
	}
}

func boolToGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
