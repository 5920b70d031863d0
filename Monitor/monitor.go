package Monitor

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/neerajchowdary889/RWMonitor/Assert"
	"github.com/neerajchowdary889/RWMonitor/Monitor/Interface"
	"github.com/neerajchowdary889/RWMonitor/metrics"
	"github.com/neerajchowdary889/RWMonitor/types"
	"github.com/neerajchowdary889/RWMonitor/types/Errors"
)

// Monitor is a reentrant reader/writer monitor: many reader tasks or up
// to maxWriters writer tasks may occupy the critical section, a task
// already holding may re-acquire in the same role any number of times,
// and bias flags hand the lock from one side to the other so neither
// readers nor writers starve. Every contract violation is detected and
// raised through the Assert package instead of corrupting state.
//
// All fields are guarded by mu. The two condition variables share mu so
// the releaser can pick which side to wake.
type Monitor struct {
	mu           sync.Mutex
	readerSignal *sync.Cond
	writerSignal *sync.Cond

	occupancy      types.Occupancy
	activeReaders  int
	activeWriters  int
	waitingReaders int
	waitingWriters int

	blockNewReaders bool
	blockNewWriters bool

	maxReaders int
	maxWriters int

	readers *recursionRegistry
	writers *recursionRegistry

	name      string
	metricsOn bool
	destroyed bool
}

// Ensure the monitor satisfies the composed interface
var _ Interface.RWMonitorInterface = (*Monitor)(nil)

// monitorSeq numbers monitors that were not given a name.
var monitorSeq atomic.Uint64

// Option configures a Monitor at construction time.
type Option func(*Monitor)

// WithName sets the label under which the monitor reports metrics.
func WithName(name string) Option {
	return func(m *Monitor) {
		m.name = name
	}
}

// WithMetrics enables Prometheus metrics for this monitor. The first
// monitor that enables metrics initializes the shared instruments.
func WithMetrics(enabled bool) Option {
	return func(m *Monitor) {
		m.metricsOn = enabled
	}
}

// New creates an idle monitor with the given reader and writer
// capacities. Both capacities must be positive; zero is misuse.
func New(maxReaders, maxWriters int, opts ...Option) *Monitor {
	if maxReaders <= 0 || maxWriters <= 0 {
		metrics.RecordMisuse("zero_capacity")
		Assert.Fail(Errors.ErrZeroCapacity,
			"create called with maxReaders=%d maxWriters=%d", maxReaders, maxWriters)
		return nil
	}

	m := &Monitor{
		occupancy:  types.Idle,
		maxReaders: maxReaders,
		maxWriters: maxWriters,
		readers:    newRecursionRegistry(maxReaders),
		writers:    newRecursionRegistry(maxWriters),
	}
	m.readerSignal = sync.NewCond(&m.mu)
	m.writerSignal = sync.NewCond(&m.mu)

	// Apply options
	for _, opt := range opts {
		opt(m)
	}
	if m.name == "" {
		m.name = fmt.Sprintf("monitor-%d", monitorSeq.Add(1))
	}

	if m.metricsOn {
		metrics.InitMetrics()
		metrics.RegisterMonitor(m)
	}

	return m
}

// NewDefault creates a monitor with the default capacities: a wide-open
// reader side and a single exclusive writer.
func NewDefault(opts ...Option) *Monitor {
	return New(types.DefaultMaxReaders, types.DefaultMaxWriters, opts...)
}

// Destroy releases the monitor. It must be fully quiescent: idle, no
// holders, no waiters, both registries empty. Anything else is misuse
// and the monitor is left untouched.
func (m *Monitor) Destroy() {
	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		metrics.RecordMisuse("monitor_destroyed")
		Assert.Fail(Errors.ErrMonitorDestroyed, "destroy called twice on %q", m.name)
		return
	}

	busy := m.occupancy != types.Idle ||
		m.activeReaders != 0 || m.activeWriters != 0 ||
		m.waitingReaders != 0 || m.waitingWriters != 0 ||
		!m.readers.allZero() || !m.writers.allZero()
	if busy {
		snap := m.snapshotLocked()
		m.mu.Unlock()
		metrics.RecordMisuse("destroy_while_busy")
		Assert.Fail(Errors.ErrDestroyWhileBusy,
			"destroy of %q with occupancy=%s readers=%d writers=%d waiting=%d/%d",
			m.name, snap.Occupancy, snap.ActiveReaders, snap.ActiveWriters,
			snap.WaitingReaders, snap.WaitingWriters)
		return
	}

	m.destroyed = true
	m.mu.Unlock()

	if m.metricsOn {
		metrics.UnregisterMonitor(m.name)
	}
}

// invariantViolationLocked sweeps the cross-field invariants and returns
// a description of the first violation, or "" when the state is
// consistent. Caller holds mu.
func (m *Monitor) invariantViolationLocked() string {
	switch m.occupancy {
	case types.Idle:
		if m.activeReaders != 0 || m.activeWriters != 0 {
			return fmt.Sprintf("idle with readers=%d writers=%d", m.activeReaders, m.activeWriters)
		}
	case types.ReadersHeld:
		if m.activeReaders <= 0 || m.activeWriters != 0 {
			return fmt.Sprintf("readers_held with readers=%d writers=%d", m.activeReaders, m.activeWriters)
		}
	case types.WriterHeld:
		if m.activeWriters <= 0 || m.activeReaders != 0 {
			return fmt.Sprintf("writer_held with readers=%d writers=%d", m.activeReaders, m.activeWriters)
		}
	}

	if n := m.readers.activeCount(); n != m.activeReaders {
		return fmt.Sprintf("reader registry holds %d tasks but active_readers=%d", n, m.activeReaders)
	}
	if n := m.writers.activeCount(); n != m.activeWriters {
		return fmt.Sprintf("writer registry holds %d tasks but active_writers=%d", n, m.activeWriters)
	}

	if m.activeReaders > m.maxReaders {
		return fmt.Sprintf("active_readers=%d over capacity %d", m.activeReaders, m.maxReaders)
	}
	if m.activeWriters > m.maxWriters {
		return fmt.Sprintf("active_writers=%d over capacity %d", m.activeWriters, m.maxWriters)
	}

	if m.waitingReaders < 0 || m.waitingWriters < 0 {
		return fmt.Sprintf("negative waiter count %d/%d", m.waitingReaders, m.waitingWriters)
	}

	if m.blockNewReaders && m.blockNewWriters {
		return "both bias flags set"
	}

	return ""
}

// checkAndUnlock verifies the invariants, drops mu and raises an
// invariant failure if the sweep found one. Always called on the way
// out of a mutating operation so failures are raised without the mutex
// held.
func (m *Monitor) checkAndUnlock() {
	violation := m.invariantViolationLocked()
	m.mu.Unlock()
	if violation != "" {
		metrics.RecordMisuse("invariant")
		Assert.Fail(Errors.ErrInvariantViolation, "%s on %q", violation, m.name)
	}
}
