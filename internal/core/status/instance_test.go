package status

import (
	"testing"

	"github.com/louisbranch/crucible/internal/core/arena"
)

func twoHandles(t *testing.T) (arena.Handle, arena.Handle) {
	t.Helper()
	var a arena.Arena[struct{}]
	return a.Alloc(struct{}{}), a.Alloc(struct{}{})
}

func TestApplyRefresh(t *testing.T) {
	src, _ := twoHandles(t)
	desc := &Descriptor{ID: 1, Name: "burn", Duration: 10000}

	var set Set
	if refreshed := set.Apply(src, desc, 1); refreshed {
		t.Fatal("first Apply() = refreshed, want new")
	}
	set.Advance(4000, nil)

	in, _ := set.Get(src, desc.ID)
	if in.Remaining != 6000 {
		t.Fatalf("Remaining = %d after advance, want 6000", in.Remaining)
	}

	if refreshed := set.Apply(src, desc, 1); !refreshed {
		t.Fatal("second Apply() = new, want refreshed")
	}
	in, _ = set.Get(src, desc.ID)
	if in.Remaining != 10000 {
		t.Fatalf("Remaining = %d after refresh, want 10000", in.Remaining)
	}
	if set.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", set.Len())
	}
}

func TestApplyStackClamp(t *testing.T) {
	src, _ := twoHandles(t)
	desc := &Descriptor{ID: 1, Duration: 10000, MaxStacks: 3}

	var set Set
	set.Apply(src, desc, 5)
	in, _ := set.Get(src, desc.ID)
	if in.Stacks != 3 {
		t.Fatalf("Stacks = %d after Apply(5), want cap 3", in.Stacks)
	}

	set.Apply(src, desc, 0)
	in, _ = set.Get(src, desc.ID)
	if in.Stacks != 1 {
		t.Fatalf("Stacks = %d after Apply(0), want 1", in.Stacks)
	}
}

func TestInstancePerSourceDescriptor(t *testing.T) {
	src1, src2 := twoHandles(t)
	desc := &Descriptor{ID: 1, Duration: 10000}

	var set Set
	set.Apply(src1, desc, 1)
	set.Apply(src2, desc, 1)
	set.Apply(src1, desc, 1)

	if set.Len() != 2 {
		t.Fatalf("Len() = %d, want one instance per source", set.Len())
	}
}

func TestAddStacks(t *testing.T) {
	src, _ := twoHandles(t)
	desc := &Descriptor{ID: 1, Duration: 10000, MaxStacks: 3}

	var set Set
	set.Apply(src, desc, 2)

	if !set.AddStacks(src, desc.ID, 5) {
		t.Fatal("AddStacks() = false, want found")
	}
	in, _ := set.Get(src, desc.ID)
	if in.Stacks != 3 {
		t.Fatalf("Stacks = %d after saturating add, want 3", in.Stacks)
	}

	set.AddStacks(src, desc.ID, -3)
	if set.Len() != 0 {
		t.Fatal("instance not removed when stacks reached zero")
	}

	if set.AddStacks(src, desc.ID, 1) {
		t.Fatal("AddStacks() on missing instance = true, want false")
	}
}

func TestAdvanceExpiry(t *testing.T) {
	src, _ := twoHandles(t)
	short := &Descriptor{ID: 1, Name: "short", Duration: 3000}
	long := &Descriptor{ID: 2, Name: "long", Duration: 9000}

	var set Set
	set.Apply(src, short, 1)
	set.Apply(src, long, 1)

	var expired []ID
	set.Advance(3000, func(in Instance) {
		expired = append(expired, in.Desc.ID)
	})

	if len(expired) != 1 || expired[0] != 1 {
		t.Fatalf("expired = %v, want [1]", expired)
	}
	if set.Has(short.ID) {
		t.Fatal("expired instance still present")
	}
	in, ok := set.Get(src, long.ID)
	if !ok || in.Remaining != 6000 {
		t.Fatalf("long Remaining = %d, %v, want 6000, true", in.Remaining, ok)
	}
}

func TestPermanentOnlyRemovedExplicitly(t *testing.T) {
	src, _ := twoHandles(t)
	stance := &Descriptor{ID: 1, Name: "stance", Permanent: true}

	var set Set
	set.Apply(src, stance, 1)
	set.Advance(1<<30, nil)

	if !set.Has(stance.ID) {
		t.Fatal("permanent instance expired by time")
	}

	removed, ok := set.Remove(src, stance.ID)
	if !ok || removed.Desc.ID != stance.ID {
		t.Fatalf("Remove() = %v, %v, want stance, true", removed.Desc, ok)
	}
	if set.Has(stance.ID) {
		t.Fatal("instance present after Remove")
	}
}

func TestRemoveMissing(t *testing.T) {
	src, other := twoHandles(t)
	desc := &Descriptor{ID: 1, Duration: 1000}

	var set Set
	set.Apply(src, desc, 1)

	if _, ok := set.Remove(other, desc.ID); ok {
		t.Fatal("Remove() with wrong source = true, want false")
	}
	if _, ok := set.Remove(src, 99); ok {
		t.Fatal("Remove() with wrong id = true, want false")
	}
	if set.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", set.Len())
	}
}
