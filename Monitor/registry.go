package Monitor

import (
	"github.com/neerajchowdary889/RWMonitor/types"
)

// notFound marks a failed registry lookup.
const notFound = -1

// recursionRegistry is the bounded per-role table mapping a holder id to
// the number of times that task currently holds the lock in the role.
// Lookup is a linear scan; capacities are tiny in practice and the
// monitor mutex dominates the cost, so no hash map is used. Freed slots
// (count zero) are reusable; the table never compacts.
type recursionRegistry struct {
	capacity     int
	insertCursor int
	counts       []int
	holders      []types.HolderID
}

func newRecursionRegistry(capacity int) *recursionRegistry {
	return &recursionRegistry{
		capacity: capacity,
		counts:   make([]int, capacity),
		holders:  make([]types.HolderID, capacity),
	}
}

// find returns the slot holding id, or notFound. Slots with a zero
// count are free and never match.
func (r *recursionRegistry) find(id types.HolderID) int {
	for i := 0; i < r.capacity; i++ {
		if r.counts[i] > 0 && r.holders[i] == id {
			return i
		}
	}
	return notFound
}

// insert claims a free slot for id with a count of one and returns it.
// The cursor advances past the claimed slot and wraps over freed slots.
// Returns notFound when every slot is occupied; the caller treats that
// as a state-machine bug, not a caller error.
func (r *recursionRegistry) insert(id types.HolderID) int {
	for i := 0; i < r.capacity; i++ {
		slot := (r.insertCursor + i) % r.capacity
		if r.counts[slot] == 0 {
			r.holders[slot] = id
			r.counts[slot] = 1
			r.insertCursor = (slot + 1) % r.capacity
			return slot
		}
	}
	return notFound
}

// increment bumps the recursion count of an occupied slot.
func (r *recursionRegistry) increment(slot int) {
	r.counts[slot]++
}

// decrement drops the recursion count by one and returns the new count.
// A slot reaching zero is free again.
func (r *recursionRegistry) decrement(slot int) int {
	r.counts[slot]--
	return r.counts[slot]
}

// countAt returns the recursion count stored in slot.
func (r *recursionRegistry) countAt(slot int) int {
	return r.counts[slot]
}

// activeCount returns the number of occupied slots, i.e. the number of
// distinct tasks currently holding in this role.
func (r *recursionRegistry) activeCount() int {
	n := 0
	for i := 0; i < r.capacity; i++ {
		if r.counts[i] > 0 {
			n++
		}
	}
	return n
}

// allZero reports whether no task holds in this role.
func (r *recursionRegistry) allZero() bool {
	for i := 0; i < r.capacity; i++ {
		if r.counts[i] != 0 {
			return false
		}
	}
	return true
}
