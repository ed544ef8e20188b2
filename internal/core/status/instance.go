package status

import (
	"github.com/louisbranch/crucible/internal/core/arena"
	"github.com/louisbranch/crucible/internal/core/timeline"
)

// Instance is one application of a status effect to a target. At most
// one instance exists per (target, source, descriptor) triple; the
// target is implied by the Set holding the instance.
type Instance struct {
	Source    arena.Handle
	Desc      *Descriptor
	Remaining timeline.Time
	Stacks    uint8
}

// Set is the ordered collection of status instances on one target.
// Instances keep their application order; refreshing an instance does
// not move it. The zero value is an empty set.
type Set struct {
	instances []Instance
}

// Apply applies desc from source, or refreshes the existing instance
// for that (source, descriptor) pair. A refresh resets the remaining
// duration to the descriptor's and replaces the stack count. Stack
// counts clamp to the descriptor's cap; zero requests apply one stack.
// It reports whether an existing instance was refreshed.
func (s *Set) Apply(source arena.Handle, desc *Descriptor, stacks uint8) bool {
	if stacks == 0 {
		stacks = 1
	}
	if limit := desc.stackCap(); stacks > limit {
		stacks = limit
	}

	if in := s.find(source, desc.ID); in != nil {
		in.Remaining = desc.Duration
		in.Stacks = stacks
		return true
	}

	s.instances = append(s.instances, Instance{
		Source:    source,
		Desc:      desc,
		Remaining: desc.Duration,
		Stacks:    stacks,
	})
	return false
}

// AddStacks adjusts the stack count of the instance for (source, id) by
// delta, clamping to the descriptor's cap. Reaching zero removes the
// instance. It reports whether an instance was found.
func (s *Set) AddStacks(source arena.Handle, id ID, delta int) bool {
	in := s.find(source, id)
	if in == nil {
		return false
	}

	next := int(in.Stacks) + delta
	if limit := int(in.Desc.stackCap()); next > limit {
		next = limit
	}
	if next <= 0 {
		s.remove(source, id)
		return true
	}
	in.Stacks = uint8(next)
	return true
}

// Remove removes the instance for (source, id) and returns a copy of
// it. Permanent instances only leave a Set through Remove.
func (s *Set) Remove(source arena.Handle, id ID) (Instance, bool) {
	in := s.find(source, id)
	if in == nil {
		return Instance{}, false
	}
	removed := *in
	s.remove(source, id)
	return removed, true
}

// Get returns a copy of the instance for (source, id).
func (s *Set) Get(source arena.Handle, id ID) (Instance, bool) {
	if in := s.find(source, id); in != nil {
		return *in, true
	}
	return Instance{}, false
}

// Has reports whether any source holds an instance of id on this set.
func (s *Set) Has(id ID) bool {
	for i := range s.instances {
		if s.instances[i].Desc.ID == id {
			return true
		}
	}
	return false
}

// Len returns the number of instances, including zero-stack ones.
func (s *Set) Len() int {
	return len(s.instances)
}

// Advance elapses time on every non-permanent instance. Instances whose
// remaining duration reaches zero are removed; expired is called with a
// copy of each, in application order, when non-nil.
func (s *Set) Advance(elapsed timeline.Time, expired func(Instance)) {
	kept := s.instances[:0]
	for _, in := range s.instances {
		if !in.Desc.Permanent {
			if in.Remaining <= elapsed {
				if expired != nil {
					expired(in)
				}
				continue
			}
			in.Remaining -= elapsed
		}
		kept = append(kept, in)
	}
	s.instances = kept
}

// Active appends every instance with a positive stack count to dst, in
// application order, and returns the extended slice. Zero-stack
// instances never reach a snapshot.
func (s *Set) Active(dst []Instance) []Instance {
	for _, in := range s.instances {
		if in.Stacks > 0 {
			dst = append(dst, in)
		}
	}
	return dst
}

func (s *Set) find(source arena.Handle, id ID) *Instance {
	for i := range s.instances {
		if s.instances[i].Source == source && s.instances[i].Desc.ID == id {
			return &s.instances[i]
		}
	}
	return nil
}

func (s *Set) remove(source arena.Handle, id ID) {
	for i := range s.instances {
		if s.instances[i].Source == source && s.instances[i].Desc.ID == id {
			s.instances = append(s.instances[:i], s.instances[i+1:]...)
			return
		}
	}
}
