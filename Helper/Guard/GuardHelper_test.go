package Guard

import (
	"testing"

	"github.com/neerajchowdary889/RWMonitor/Monitor"
	"github.com/neerajchowdary889/RWMonitor/types"
)

func TestGuard_WithRead(t *testing.T) {
	m := Monitor.New(4, 1)
	gh := NewGuardHelper()
	id := types.NextHolderID()

	ran := false
	gh.WithRead(m, id, func() {
		ran = true
		if m.ActiveReaders() != 1 {
			t.Errorf("active readers inside guard = %d, want 1", m.ActiveReaders())
		}
	})

	if !ran {
		t.Fatal("guarded function did not run")
	}
	if got := m.Occupancy(); got != types.Idle {
		t.Errorf("occupancy after guard = %s, want idle", got)
	}
	m.Destroy()
}

func TestGuard_WithWrite(t *testing.T) {
	m := Monitor.New(4, 1)
	gh := NewGuardHelper()
	id := types.NextHolderID()

	gh.WithWrite(m, id, func() {
		if m.ActiveWriters() != 1 {
			t.Errorf("active writers inside guard = %d, want 1", m.ActiveWriters())
		}
	})

	if got := m.Occupancy(); got != types.Idle {
		t.Errorf("occupancy after guard = %s, want idle", got)
	}
	m.Destroy()
}

func TestGuard_ReleasesOnPanic(t *testing.T) {
	m := Monitor.New(4, 1)
	gh := NewGuardHelper()
	id := types.NextHolderID()

	func() {
		defer func() {
			if recover() == nil {
				t.Error("panic did not propagate out of the guard")
			}
		}()
		gh.WithWrite(m, id, func() {
			panic("boom")
		})
	}()

	if got := m.Occupancy(); got != types.Idle {
		t.Errorf("occupancy after panicking guard = %s, want idle", got)
	}
	m.Destroy()
}
