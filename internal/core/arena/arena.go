// Package arena provides a generational arena: slot-based storage that
// hands out compact handles instead of pointers. Handles stay valid while
// the slot is live and miss safely after the slot is freed, even if the
// slot has been reused since.
package arena

import "fmt"

// Handle identifies a value stored in an Arena.
//
// A Handle is a pair of slot index and generation. Freeing a slot bumps
// its generation, so handles taken before the free stop resolving once
// the slot is reused. The zero Handle never resolves.
type Handle struct {
	index      uint32
	generation uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h.generation == 0
}

// String formats the handle as index.generation for logs and journals.
func (h Handle) String() string {
	return fmt.Sprintf("%d.%d", h.index, h.generation)
}

type slot[T any] struct {
	value      T
	generation uint32
	live       bool
}

// Arena stores values of type T in reusable slots.
//
// The zero value is an empty arena ready for use. An Arena is not safe
// for concurrent use.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	count int
}

// Alloc stores value in a free slot and returns its Handle.
//
// Slots freed earlier are reused before the arena grows. The returned
// Handle resolves until Free is called with it.
func (a *Arena[T]) Alloc(value T) Handle {
	if n := len(a.free); n > 0 {
		index := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[index]
		s.value = value
		s.live = true
		a.count++
		return Handle{index: index, generation: s.generation}
	}

	index := uint32(len(a.slots))
	a.slots = append(a.slots, slot[T]{value: value, generation: 1, live: true})
	a.count++
	return Handle{index: index, generation: 1}
}

// Get resolves h to a pointer into the arena.
//
// The second return value is false when h is zero, was freed, or refers
// to a slot that has since been reused. The pointer is valid until the
// slot is freed; callers must not retain it across frees.
func (a *Arena[T]) Get(h Handle) (*T, bool) {
	if h.index >= uint32(len(a.slots)) {
		return nil, false
	}
	s := &a.slots[h.index]
	if !s.live || s.generation != h.generation {
		return nil, false
	}
	return &s.value, true
}

// Free releases the slot behind h and reports whether h was live.
//
// The slot's generation advances so stale copies of h no longer resolve.
// Freeing an already-freed or zero handle is a no-op.
func (a *Arena[T]) Free(h Handle) bool {
	if h.index >= uint32(len(a.slots)) {
		return false
	}
	s := &a.slots[h.index]
	if !s.live || s.generation != h.generation {
		return false
	}

	var zero T
	s.value = zero
	s.live = false
	s.generation++
	a.free = append(a.free, h.index)
	a.count--
	return true
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	return a.count
}

// All calls fn for every live value in slot order. Iteration stops early
// when fn returns false. The arena must not be mutated during iteration.
func (a *Arena[T]) All(fn func(Handle, *T) bool) {
	for i := range a.slots {
		s := &a.slots[i]
		if !s.live {
			continue
		}
		if !fn(Handle{index: uint32(i), generation: s.generation}, &s.value) {
			return
		}
	}
}
