package Guard

import (
	"github.com/neerajchowdary889/RWMonitor/Monitor/Interface"
	"github.com/neerajchowdary889/RWMonitor/types"
)

type GuardHelper struct{}

func NewGuardHelper() *GuardHelper {
	return &GuardHelper{}
}

// WithRead runs fn inside the critical section as a reader. The release
// is deferred so fn panicking does not leave the hold behind.
func (GH *GuardHelper) WithRead(m Interface.RWMonitorInterface, id types.HolderID, fn func()) {
	m.AcquireRead(id)
	defer m.Release(id)
	fn()
}

// WithWrite runs fn inside the critical section as a writer.
func (GH *GuardHelper) WithWrite(m Interface.RWMonitorInterface, id types.HolderID, fn func()) {
	m.AcquireWrite(id)
	defer m.Release(id)
	fn()
}
