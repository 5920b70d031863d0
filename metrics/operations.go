package metrics

import (
	"time"
)

// RecordAcquisition records a completed acquisition.
// role is "reader" or "writer"; reentrant acquisitions are counted
// separately from initial ones.
func RecordAcquisition(monitor, role string, reentrant bool) {
	if !IsMetricsEnabled() {
		return
	}
	kind := "initial"
	if reentrant {
		kind = "reentrant"
	}
	AcquisitionsTotal.WithLabelValues(monitor, role, kind).Inc()
}

// RecordRelease records a completed release. A final release is the one
// that drops the task's recursion count to zero.
func RecordRelease(monitor, role string, final bool) {
	if !IsMetricsEnabled() {
		return
	}
	kind := "nested"
	if final {
		kind = "final"
	}
	ReleasesTotal.WithLabelValues(monitor, role, kind).Inc()
}

// RecordWakeup records a broadcast issued by the wake policy.
// side is "readers" or "writers".
func RecordWakeup(monitor, side string) {
	if !IsMetricsEnabled() {
		return
	}
	WakeupsTotal.WithLabelValues(monitor, side).Inc()
}

// RecordTryFailure records a bounced non-blocking acquisition attempt.
func RecordTryFailure(monitor, role string) {
	if !IsMetricsEnabled() {
		return
	}
	TryFailuresTotal.WithLabelValues(monitor, role).Inc()
}

// RecordMisuse records a detected contract violation by failed check name.
func RecordMisuse(check string) {
	if !IsMetricsEnabled() {
		return
	}
	MisuseTotal.WithLabelValues(check).Inc()
}

// RecordAcquireWait records how long an acquirer spent parked before it
// entered the critical section.
func RecordAcquireWait(monitor, role string, waited time.Duration) {
	if !IsMetricsEnabled() {
		return
	}
	AcquireWaitDuration.WithLabelValues(monitor, role).Observe(waited.Seconds())
}
