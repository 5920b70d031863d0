package Monitor

import (
	"github.com/neerajchowdary889/RWMonitor/types"
)

// Name returns the label the monitor reports metrics under.
func (m *Monitor) Name() string {
	return m.name
}

// Occupancy returns the current mode of the critical section.
func (m *Monitor) Occupancy() types.Occupancy {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.occupancy
}

// ActiveReaders returns the number of distinct reader tasks inside the
// critical section. Reentrant re-acquires do not add to it.
func (m *Monitor) ActiveReaders() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeReaders
}

// ActiveWriters returns the number of distinct writer tasks inside the
// critical section.
func (m *Monitor) ActiveWriters() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeWriters
}

// WaitingReaders returns the number of reader tasks currently parked.
func (m *Monitor) WaitingReaders() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.waitingReaders
}

// WaitingWriters returns the number of writer tasks currently parked.
func (m *Monitor) WaitingWriters() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.waitingWriters
}

// ReadHoldCount returns how many times id currently holds the lock as a
// reader, zero if it does not.
func (m *Monitor) ReadHoldCount(id types.HolderID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	slot := m.readers.find(id)
	if slot == notFound {
		return 0
	}
	return m.readers.countAt(slot)
}

// WriteHoldCount returns how many times id currently holds the lock as
// a writer, zero if it does not.
func (m *Monitor) WriteHoldCount(id types.HolderID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	slot := m.writers.find(id)
	if slot == notFound {
		return 0
	}
	return m.writers.countAt(slot)
}

// Snapshot returns a consistent copy of the scalar state.
func (m *Monitor) Snapshot() types.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Monitor) snapshotLocked() types.Snapshot {
	return types.Snapshot{
		Occupancy:       m.occupancy,
		ActiveReaders:   m.activeReaders,
		ActiveWriters:   m.activeWriters,
		WaitingReaders:  m.waitingReaders,
		WaitingWriters:  m.waitingWriters,
		BlockNewReaders: m.blockNewReaders,
		BlockNewWriters: m.blockNewWriters,
		MaxReaders:      m.maxReaders,
		MaxWriters:      m.maxWriters,
	}
}
