package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/neerajchowdary889/RWMonitor/types"
)

// fakeSource is a hand-rolled snapshot source so the metrics package is
// tested without the monitor.
type fakeSource struct {
	name string
	snap types.Snapshot
}

func (f *fakeSource) Name() string             { return f.name }
func (f *fakeSource) Snapshot() types.Snapshot { return f.snap }

func TestPublishSnapshot_SetsStateGauges(t *testing.T) {
	InitMetrics()

	src := &fakeSource{
		name: "under-test",
		snap: types.Snapshot{
			Occupancy:       types.ReadersHeld,
			ActiveReaders:   3,
			WaitingWriters:  2,
			BlockNewWriters: true,
			MaxReaders:      8,
			MaxWriters:      1,
		},
	}
	RegisterMonitor(src)
	defer UnregisterMonitor(src.name)

	if got := testutil.ToFloat64(StateActiveReaders.WithLabelValues("under-test")); got != 3 {
		t.Errorf("active_readers gauge = %v, want 3", got)
	}
	if got := testutil.ToFloat64(StateWaitingWriters.WithLabelValues("under-test")); got != 2 {
		t.Errorf("waiting_writers gauge = %v, want 2", got)
	}
	if got := testutil.ToFloat64(StateBlockNewWriters.WithLabelValues("under-test")); got != 1 {
		t.Errorf("block_new_writers gauge = %v, want 1", got)
	}
	if got := testutil.ToFloat64(StateMaxReaders.WithLabelValues("under-test")); got != 8 {
		t.Errorf("max_readers gauge = %v, want 8", got)
	}
}

func TestCollector_SamplesRegisteredSources(t *testing.T) {
	InitMetrics()

	src := &fakeSource{name: "collected", snap: types.Snapshot{ActiveWriters: 1}}
	RegisterMonitor(src)
	defer UnregisterMonitor(src.name)

	// The source changes; a collect pass must pick it up.
	src.snap.ActiveWriters = 0
	src.snap.ActiveReaders = 5

	c := NewCollector(0)
	c.Collect()

	if got := testutil.ToFloat64(StateActiveReaders.WithLabelValues("collected")); got != 5 {
		t.Errorf("active_readers gauge after collect = %v, want 5", got)
	}
	if got := testutil.ToFloat64(StateActiveWriters.WithLabelValues("collected")); got != 0 {
		t.Errorf("active_writers gauge after collect = %v, want 0", got)
	}
}

func TestRecordHelpers_CountEvents(t *testing.T) {
	InitMetrics()

	RecordAcquisition("m1", "reader", false)
	RecordAcquisition("m1", "reader", true)
	RecordAcquisition("m1", "reader", true)
	RecordRelease("m1", "reader", true)
	RecordWakeup("m1", "writers")
	RecordTryFailure("m1", "writer")
	RecordMisuse("release_without_acquire")

	if got := testutil.ToFloat64(AcquisitionsTotal.WithLabelValues("m1", "reader", "initial")); got != 1 {
		t.Errorf("initial acquisitions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(AcquisitionsTotal.WithLabelValues("m1", "reader", "reentrant")); got != 2 {
		t.Errorf("reentrant acquisitions = %v, want 2", got)
	}
	if got := testutil.ToFloat64(ReleasesTotal.WithLabelValues("m1", "reader", "final")); got != 1 {
		t.Errorf("final releases = %v, want 1", got)
	}
	if got := testutil.ToFloat64(WakeupsTotal.WithLabelValues("m1", "writers")); got != 1 {
		t.Errorf("wakeups = %v, want 1", got)
	}
	if got := testutil.ToFloat64(TryFailuresTotal.WithLabelValues("m1", "writer")); got != 1 {
		t.Errorf("try failures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(MisuseTotal.WithLabelValues("release_without_acquire")); got != 1 {
		t.Errorf("misuse = %v, want 1", got)
	}
}
