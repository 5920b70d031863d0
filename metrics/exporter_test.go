package metrics

import (
	"testing"

	"github.com/neerajchowdary889/RWMonitor/types"
)

func TestSummarize_ReflectsRegisteredMonitors(t *testing.T) {
	InitMetrics()

	src := &fakeSource{
		name: "exported",
		snap: types.Snapshot{
			Occupancy:       types.WriterHeld,
			ActiveWriters:   1,
			WaitingReaders:  3,
			BlockNewReaders: true,
		},
	}
	RegisterMonitor(src)
	defer UnregisterMonitor(src.name)

	statuses := summarize()
	var got *monitorStatus
	for i := range statuses {
		if statuses[i].Name == "exported" {
			got = &statuses[i]
			break
		}
	}
	if got == nil {
		t.Fatal("registered monitor missing from summary")
	}
	if got.Occupancy != "writer_held" {
		t.Errorf("occupancy = %q, want writer_held", got.Occupancy)
	}
	if got.ActiveWriters != 1 || got.WaitingReaders != 3 {
		t.Errorf("counts = %d/%d, want 1/3", got.ActiveWriters, got.WaitingReaders)
	}
	if !got.BlockNewReaders {
		t.Error("block_new_readers not reported")
	}

	names := sourcesSnapshotNames()
	found := false
	for _, n := range names {
		if n == "exported" {
			found = true
		}
	}
	if !found {
		t.Errorf("index names %v missing %q", names, "exported")
	}
}
