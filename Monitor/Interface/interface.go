package Interface

import (
	"github.com/neerajchowdary889/RWMonitor/types"
)

// ReadAcquirer acquires the lock for reading
type ReadAcquirer interface {
	AcquireRead(id types.HolderID)
}

// WriteAcquirer acquires the lock for writing
type WriteAcquirer interface {
	AcquireWrite(id types.HolderID)
}

// TryAcquirer attempts acquisition without parking
type TryAcquirer interface {
	TryAcquireRead(id types.HolderID) bool
	TryAcquireWrite(id types.HolderID) bool
}

// Releaser gives back one level of the caller's hold
type Releaser interface {
	Release(id types.HolderID)
}

// Destroyer tears down a quiescent monitor
type Destroyer interface {
	Destroy()
}

// StateInspector exposes the monitor's scalar state for tests,
// instrumentation and the metrics collector
type StateInspector interface {
	Name() string
	Occupancy() types.Occupancy
	ActiveReaders() int
	ActiveWriters() int
	WaitingReaders() int
	WaitingWriters() int
	ReadHoldCount(id types.HolderID) int
	WriteHoldCount(id types.HolderID) int
	Snapshot() types.Snapshot
}

// ----------------------
// Composed interfaces
// ----------------------

// RWMonitorInterface defines the complete monitor surface
type RWMonitorInterface interface {
	ReadAcquirer
	WriteAcquirer
	TryAcquirer
	Releaser
	Destroyer
	StateInspector
}
