package Monitor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neerajchowdary889/RWMonitor/Assert"
	"github.com/neerajchowdary889/RWMonitor/types"
	"github.com/neerajchowdary889/RWMonitor/types/Errors"
)

func TestMisuse_ReleaseWithoutAcquire(t *testing.T) {
	rec := recordFailures(t)
	m := New(1, 1)
	before := m.Snapshot()

	m.Release(types.NextHolderID())

	require.Equal(t, 1, rec.count(), "release while idle must raise exactly one failure")
	assert.True(t, errors.Is(rec.last(), Errors.ErrReleaseWithoutAcquire))
	assert.NotEmpty(t, rec.last().File)
	assert.NotZero(t, rec.last().Line)

	// The failed operation must leave no trace.
	if diff := cmp.Diff(before, m.Snapshot()); diff != "" {
		t.Errorf("state changed by rejected release (-before +after):\n%s", diff)
	}

	m.Destroy()
	assert.Equal(t, 1, rec.count(), "destroy after the rejected release must be clean")
}

func TestMisuse_DestroyWhileHeld(t *testing.T) {
	rec := recordFailures(t)
	m := New(1, 1)
	id := types.NextHolderID()

	m.AcquireRead(id)
	m.Destroy()

	require.Equal(t, 1, rec.count())
	assert.True(t, errors.Is(rec.last(), Errors.ErrDestroyWhileBusy))

	// The monitor survived the rejected destroy and still works.
	m.Release(id)
	m.Destroy()
	assert.Equal(t, 1, rec.count())
}

func TestMisuse_UnregisteredReleaser(t *testing.T) {
	rec := recordFailures(t)
	m := New(3, 1)
	t1 := types.NextHolderID()
	t2 := types.NextHolderID()
	t3 := types.NextHolderID()

	m.AcquireRead(t1)
	m.AcquireRead(t2)
	before := m.Snapshot()

	// t3 never acquired anything.
	m.Release(t3)

	require.Equal(t, 1, rec.count())
	assert.True(t, errors.Is(rec.last(), Errors.ErrUnknownHolder))
	if diff := cmp.Diff(before, m.Snapshot()); diff != "" {
		t.Errorf("state changed by rejected release (-before +after):\n%s", diff)
	}

	// The legitimate holders are unaffected and the monitor winds down
	// cleanly afterwards.
	m.Release(t1)
	m.Release(t2)
	m.Destroy()
	assert.Equal(t, 1, rec.count())
}

func TestMisuse_CrossRoleReentry(t *testing.T) {
	rec := recordFailures(t)
	m := New(4, 1)

	reader := types.NextHolderID()
	m.AcquireRead(reader)
	m.AcquireWrite(reader)
	require.Equal(t, 1, rec.count(), "reader asking to write is cross-role reentry")
	assert.True(t, errors.Is(rec.last(), Errors.ErrCrossRoleReentry))
	assert.Equal(t, 1, m.ReadHoldCount(reader))
	assert.Equal(t, 0, m.WriteHoldCount(reader))
	m.Release(reader)

	writer := types.NextHolderID()
	m.AcquireWrite(writer)
	m.AcquireRead(writer)
	require.Equal(t, 2, rec.count(), "writer asking to read is cross-role reentry")
	assert.True(t, errors.Is(rec.last(), Errors.ErrCrossRoleReentry))
	assert.Equal(t, 1, m.WriteHoldCount(writer))
	assert.Equal(t, 0, m.ReadHoldCount(writer))
	m.Release(writer)

	m.Destroy()
	assert.Equal(t, 2, rec.count())
}

func TestMisuse_ZeroCapacity(t *testing.T) {
	rec := recordFailures(t)

	m := New(0, 1)
	assert.Nil(t, m)
	require.Equal(t, 1, rec.count())
	assert.True(t, errors.Is(rec.last(), Errors.ErrZeroCapacity))

	m = New(1, 0)
	assert.Nil(t, m)
	assert.Equal(t, 2, rec.count())
}

func TestMisuse_OperationsOnDestroyedMonitor(t *testing.T) {
	rec := recordFailures(t)
	m := New(1, 1)
	m.Destroy()

	id := types.NextHolderID()
	m.AcquireRead(id)
	m.Release(id)
	m.Destroy()

	require.Equal(t, 3, rec.count())
	for _, f := range []int{0, 1, 2} {
		rec.mu.Lock()
		failure := rec.failures[f]
		rec.mu.Unlock()
		assert.True(t, errors.Is(failure, Errors.ErrMonitorDestroyed))
	}
}

func TestMisuse_PanicsWithoutHandler(t *testing.T) {
	// Production stance: no handler installed, the failure is fatal.
	m := New(1, 1)

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic from misuse")
		failure, ok := r.(*Assert.Failure)
		require.True(t, ok, "panic value must be the structured failure")
		assert.True(t, errors.Is(failure, Errors.ErrReleaseWithoutAcquire))
		m.Destroy()
	}()

	m.Release(types.NextHolderID())
	t.Fatal("release while idle must not return normally without a handler")
}
