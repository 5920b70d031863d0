package Monitor

import (
	"github.com/neerajchowdary889/RWMonitor/Assert"
	"github.com/neerajchowdary889/RWMonitor/metrics"
	"github.com/neerajchowdary889/RWMonitor/types"
	"github.com/neerajchowdary889/RWMonitor/types/Errors"
)

// Release gives back one level of id's hold in whatever role currently
// occupies the section. The lock is fully released only when the task's
// recursion count reaches zero; the last task out flips the section to
// idle and runs the wake policy. Releasing while idle, or by a task
// that holds nothing, is misuse and leaves the state untouched.
func (m *Monitor) Release(id types.HolderID) {
	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		metrics.RecordMisuse("monitor_destroyed")
		Assert.Fail(Errors.ErrMonitorDestroyed, "release on destroyed %q", m.name)
		return
	}

	var role string
	var final bool

	switch m.occupancy {
	case types.Idle:
		m.mu.Unlock()
		metrics.RecordMisuse("release_without_acquire")
		Assert.Fail(Errors.ErrReleaseWithoutAcquire,
			"task %d released %q while nobody holds it", id, m.name)
		return

	case types.WriterHeld:
		slot := m.writers.find(id)
		if slot == notFound {
			m.mu.Unlock()
			metrics.RecordMisuse("unknown_holder")
			Assert.Fail(Errors.ErrUnknownHolder,
				"task %d released %q but is not a current writer", id, m.name)
			return
		}
		role = "writer"
		final = m.writers.decrement(slot) == 0
		if final {
			m.activeWriters--
			if m.activeWriters == 0 {
				m.occupancy = types.Idle
				m.wakeAfterWriterLocked()
			}
		}

	case types.ReadersHeld:
		slot := m.readers.find(id)
		if slot == notFound {
			m.mu.Unlock()
			metrics.RecordMisuse("unknown_holder")
			Assert.Fail(Errors.ErrUnknownHolder,
				"task %d released %q but is not a current reader", id, m.name)
			return
		}
		role = "reader"
		final = m.readers.decrement(slot) == 0
		if final {
			m.activeReaders--
			if m.activeReaders == 0 {
				m.occupancy = types.Idle
				m.wakeAfterReaderLocked()
			}
		}
	}

	m.checkAndUnlock()

	if m.metricsOn {
		metrics.RecordRelease(m.name, role, final)
	}
}

// wakeAfterWriterLocked is the wake policy when the last writer leaves.
// Queued readers take priority and the writer-side gate closes behind
// them so late-arriving writers cannot cut the line. With no reader
// waiters the writer cohort keeps draining. Caller holds mu.
func (m *Monitor) wakeAfterWriterLocked() {
	switch {
	case m.waitingReaders > 0:
		m.blockNewWriters = true
		m.blockNewReaders = false
		m.readerSignal.Broadcast()
		if m.metricsOn {
			metrics.RecordWakeup(m.name, "readers")
		}
	case m.waitingWriters > 0:
		// Bias flags stay as they are: the writer side keeps draining.
		m.writerSignal.Broadcast()
		if m.metricsOn {
			metrics.RecordWakeup(m.name, "writers")
		}
	default:
		// Nobody waits; back to a neutral stance.
		m.blockNewReaders = false
		m.blockNewWriters = false
	}
}

// wakeAfterReaderLocked is the wake policy when the last reader leaves.
// Queued writers take priority and the reader-side gate closes so a
// steady stream of new readers cannot starve them. Caller holds mu.
func (m *Monitor) wakeAfterReaderLocked() {
	switch {
	case m.waitingWriters > 0:
		m.blockNewReaders = true
		m.blockNewWriters = false
		m.writerSignal.Broadcast()
		if m.metricsOn {
			metrics.RecordWakeup(m.name, "writers")
		}
	case m.waitingReaders > 0:
		// Readers queued with no writer in sight were gated by a stale
		// flag; reopen and let them through.
		m.blockNewReaders = false
		m.readerSignal.Broadcast()
		if m.metricsOn {
			metrics.RecordWakeup(m.name, "readers")
		}
	default:
		m.blockNewReaders = false
		m.blockNewWriters = false
	}
}
