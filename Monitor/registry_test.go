package Monitor

import (
	"testing"

	"github.com/neerajchowdary889/RWMonitor/types"
)

func TestRegistry_FindAndInsert(t *testing.T) {
	r := newRecursionRegistry(3)
	a := types.NextHolderID()
	b := types.NextHolderID()

	if got := r.find(a); got != notFound {
		t.Fatalf("find on empty registry = %d, want notFound", got)
	}

	slotA := r.insert(a)
	slotB := r.insert(b)
	if slotA == notFound || slotB == notFound {
		t.Fatal("insert failed with free capacity")
	}
	if slotA == slotB {
		t.Fatal("two holders share one slot")
	}

	if got := r.find(a); got != slotA {
		t.Errorf("find(a) = %d, want %d", got, slotA)
	}
	if got := r.countAt(slotA); got != 1 {
		t.Errorf("fresh slot count = %d, want 1", got)
	}
	if got := r.activeCount(); got != 2 {
		t.Errorf("activeCount = %d, want 2", got)
	}
}

func TestRegistry_RecursionCounting(t *testing.T) {
	r := newRecursionRegistry(2)
	id := types.NextHolderID()

	slot := r.insert(id)
	r.increment(slot)
	r.increment(slot)
	if got := r.countAt(slot); got != 3 {
		t.Fatalf("count = %d, want 3", got)
	}

	if got := r.decrement(slot); got != 2 {
		t.Errorf("decrement returned %d, want 2", got)
	}
	r.decrement(slot)
	if got := r.decrement(slot); got != 0 {
		t.Errorf("final decrement returned %d, want 0", got)
	}

	// A zeroed slot no longer matches its old holder.
	if got := r.find(id); got != notFound {
		t.Errorf("find after full release = %d, want notFound", got)
	}
	if !r.allZero() {
		t.Error("registry not allZero after full release")
	}
}

func TestRegistry_CursorWrapsOverFreedSlots(t *testing.T) {
	r := newRecursionRegistry(2)
	a := types.NextHolderID()
	b := types.NextHolderID()

	slotA := r.insert(a)
	r.insert(b)

	// Free the first slot, fill the table again: the cursor has moved
	// on but wraps around to reuse the freed slot.
	for r.countAt(slotA) > 0 {
		r.decrement(slotA)
	}
	c := types.NextHolderID()
	slotC := r.insert(c)
	if slotC == notFound {
		t.Fatal("insert failed although a slot was freed")
	}
	if slotC != slotA {
		t.Errorf("freed slot not reused: got %d, want %d", slotC, slotA)
	}
}

func TestRegistry_InsertFailsWhenFull(t *testing.T) {
	r := newRecursionRegistry(2)
	r.insert(types.NextHolderID())
	r.insert(types.NextHolderID())

	if got := r.insert(types.NextHolderID()); got != notFound {
		t.Errorf("insert into full registry = %d, want notFound", got)
	}
}
