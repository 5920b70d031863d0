package Monitor

import (
	"time"

	"github.com/neerajchowdary889/RWMonitor/Assert"
	"github.com/neerajchowdary889/RWMonitor/metrics"
	"github.com/neerajchowdary889/RWMonitor/types"
	"github.com/neerajchowdary889/RWMonitor/types/Errors"
)

// AcquireRead acquires the lock for reading on behalf of id, blocking
// until entry is allowed. A task already reading re-acquires without
// consuming capacity; only its recursion count grows. A task currently
// holding the write lock must not call this - that is cross-role
// reentry and is detected as misuse.
func (m *Monitor) AcquireRead(id types.HolderID) {
	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		metrics.RecordMisuse("monitor_destroyed")
		Assert.Fail(Errors.ErrMonitorDestroyed, "acquire_read on destroyed %q", m.name)
		return
	}
	if m.writers.find(id) != notFound {
		m.mu.Unlock()
		metrics.RecordMisuse("cross_role_reentry")
		Assert.Fail(Errors.ErrCrossRoleReentry,
			"task %d holds %q as writer and asked to read", id, m.name)
		return
	}

	// Park until entry is allowed. Re-test after every wake: the wake
	// policy broadcasts, so several waiters race for the same opening.
	var parkedAt time.Time
	for m.mustWaitReadLocked(id) {
		if parkedAt.IsZero() {
			parkedAt = time.Now()
		}
		m.waitingReaders++
		m.readerSignal.Wait()
		m.waitingReaders--
	}

	reentrant := false
	if slot := m.readers.find(id); slot != notFound {
		m.readers.increment(slot)
		reentrant = true
	} else {
		if m.readers.insert(id) == notFound {
			// Unreachable while the capacity invariant holds; hitting it
			// means the state machine itself is broken.
			m.mu.Unlock()
			metrics.RecordMisuse("registry_overflow")
			Assert.Fail(Errors.ErrRegistryOverflow,
				"reader registry of %q full at capacity %d", m.name, m.maxReaders)
			return
		}
		m.activeReaders++
		m.occupancy = types.ReadersHeld
	}
	m.checkAndUnlock()

	if m.metricsOn {
		metrics.RecordAcquisition(m.name, "reader", reentrant)
		if !parkedAt.IsZero() {
			metrics.RecordAcquireWait(m.name, "reader", time.Since(parkedAt))
		}
	}
}

// AcquireWrite acquires the lock for writing on behalf of id, blocking
// until entry is allowed. Reentrant for a task already writing. A task
// currently holding the read lock must not call this.
func (m *Monitor) AcquireWrite(id types.HolderID) {
	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		metrics.RecordMisuse("monitor_destroyed")
		Assert.Fail(Errors.ErrMonitorDestroyed, "acquire_write on destroyed %q", m.name)
		return
	}
	if m.readers.find(id) != notFound {
		m.mu.Unlock()
		metrics.RecordMisuse("cross_role_reentry")
		Assert.Fail(Errors.ErrCrossRoleReentry,
			"task %d holds %q as reader and asked to write", id, m.name)
		return
	}

	var parkedAt time.Time
	for m.mustWaitWriteLocked(id) {
		if parkedAt.IsZero() {
			parkedAt = time.Now()
		}
		m.waitingWriters++
		m.writerSignal.Wait()
		m.waitingWriters--
	}

	reentrant := false
	if slot := m.writers.find(id); slot != notFound {
		m.writers.increment(slot)
		reentrant = true
	} else {
		if m.writers.insert(id) == notFound {
			m.mu.Unlock()
			metrics.RecordMisuse("registry_overflow")
			Assert.Fail(Errors.ErrRegistryOverflow,
				"writer registry of %q full at capacity %d", m.name, m.maxWriters)
			return
		}
		m.activeWriters++
		m.occupancy = types.WriterHeld
	}
	m.checkAndUnlock()

	if m.metricsOn {
		metrics.RecordAcquisition(m.name, "writer", reentrant)
		if !parkedAt.IsZero() {
			metrics.RecordAcquireWait(m.name, "writer", time.Since(parkedAt))
		}
	}
}

// TryAcquireRead attempts read entry without parking. It applies the
// same eligibility test as AcquireRead and reports whether the lock was
// taken. Cross-role reentry is misuse exactly as in the blocking path.
func (m *Monitor) TryAcquireRead(id types.HolderID) bool {
	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		metrics.RecordMisuse("monitor_destroyed")
		Assert.Fail(Errors.ErrMonitorDestroyed, "try_acquire_read on destroyed %q", m.name)
		return false
	}
	if m.writers.find(id) != notFound {
		m.mu.Unlock()
		metrics.RecordMisuse("cross_role_reentry")
		Assert.Fail(Errors.ErrCrossRoleReentry,
			"task %d holds %q as writer and asked to read", id, m.name)
		return false
	}

	if m.mustWaitReadLocked(id) {
		m.mu.Unlock()
		if m.metricsOn {
			metrics.RecordTryFailure(m.name, "reader")
		}
		return false
	}

	reentrant := false
	if slot := m.readers.find(id); slot != notFound {
		m.readers.increment(slot)
		reentrant = true
	} else {
		if m.readers.insert(id) == notFound {
			m.mu.Unlock()
			metrics.RecordMisuse("registry_overflow")
			Assert.Fail(Errors.ErrRegistryOverflow,
				"reader registry of %q full at capacity %d", m.name, m.maxReaders)
			return false
		}
		m.activeReaders++
		m.occupancy = types.ReadersHeld
	}
	m.checkAndUnlock()

	if m.metricsOn {
		metrics.RecordAcquisition(m.name, "reader", reentrant)
	}
	return true
}

// TryAcquireWrite attempts write entry without parking.
func (m *Monitor) TryAcquireWrite(id types.HolderID) bool {
	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		metrics.RecordMisuse("monitor_destroyed")
		Assert.Fail(Errors.ErrMonitorDestroyed, "try_acquire_write on destroyed %q", m.name)
		return false
	}
	if m.readers.find(id) != notFound {
		m.mu.Unlock()
		metrics.RecordMisuse("cross_role_reentry")
		Assert.Fail(Errors.ErrCrossRoleReentry,
			"task %d holds %q as reader and asked to write", id, m.name)
		return false
	}

	if m.mustWaitWriteLocked(id) {
		m.mu.Unlock()
		if m.metricsOn {
			metrics.RecordTryFailure(m.name, "writer")
		}
		return false
	}

	reentrant := false
	if slot := m.writers.find(id); slot != notFound {
		m.writers.increment(slot)
		reentrant = true
	} else {
		if m.writers.insert(id) == notFound {
			m.mu.Unlock()
			metrics.RecordMisuse("registry_overflow")
			Assert.Fail(Errors.ErrRegistryOverflow,
				"writer registry of %q full at capacity %d", m.name, m.maxWriters)
			return false
		}
		m.activeWriters++
		m.occupancy = types.WriterHeld
	}
	m.checkAndUnlock()

	if m.metricsOn {
		metrics.RecordAcquisition(m.name, "writer", reentrant)
	}
	return true
}

// mustWaitReadLocked is the reader wait condition: a writer occupies the
// section, the reader-side bias gate is closed, or admitting a brand-new
// reader would exceed capacity. Re-acquisition by a current reader never
// waits on capacity. Caller holds mu.
func (m *Monitor) mustWaitReadLocked(id types.HolderID) bool {
	if m.occupancy == types.WriterHeld {
		return true
	}
	if m.blockNewReaders {
		return true
	}
	if m.activeReaders >= m.maxReaders && m.readers.find(id) == notFound {
		return true
	}
	return false
}

// mustWaitWriteLocked is the writer wait condition, symmetric to the
// reader one. Caller holds mu.
func (m *Monitor) mustWaitWriteLocked(id types.HolderID) bool {
	if m.occupancy == types.ReadersHeld {
		return true
	}
	if m.blockNewWriters {
		return true
	}
	if m.activeWriters >= m.maxWriters && m.writers.find(id) == notFound {
		return true
	}
	return false
}
