package Errors

import "fmt"

// Misuse errors. Each one names a violated precondition of the monitor
// contract; every one of them is fatal unless a test handler is installed.
var (
	ErrZeroCapacity          = fmt.Errorf("monitor capacity must be positive")
	ErrReleaseWithoutAcquire = fmt.Errorf("release called while the lock is idle")
	ErrUnknownHolder         = fmt.Errorf("release called by a task that holds nothing")
	ErrCrossRoleReentry      = fmt.Errorf("task already holds the lock in the opposite role")
	ErrRegistryOverflow      = fmt.Errorf("recursion registry has no free slot")
	ErrDestroyWhileBusy      = fmt.Errorf("destroy called while the monitor is not quiescent")
	ErrMonitorDestroyed      = fmt.Errorf("operation on a destroyed monitor")
)

// Internal invariant violations. These indicate a bug in the monitor
// itself, not in the caller.
var (
	ErrInvariantViolation = fmt.Errorf("monitor invariant violated")
)
