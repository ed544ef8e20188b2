// Package cooldown provides the timer primitives shared by every job:
// charge-debt cooldown groups and combo continuation windows.
package cooldown

import "github.com/louisbranch/crucible/internal/core/timeline"

// Group tracks one cooldown bucket through a single charge-debt
// counter. Using a charge adds the full cooldown to the debt and
// elapsed time pays it down, so exact availability with multiple
// charges falls out of the arithmetic without per-charge timestamps.
//
// The debt never exceeds cooldown times charges. A charge is ready
// while the debt leaves room for one more full cooldown.
//
// The zero value is a fully recharged group.
type Group struct {
	debt timeline.Time
}

// Available reports whether a charge is ready for a cooldown of cd with
// the given charge count.
func (g *Group) Available(cd timeline.Time, charges uint8) bool {
	return g.debt <= (cd * timeline.Time(chargeCount(charges)-1))
}

// Apply consumes one charge, adding cd to the debt. The debt saturates
// at full capacity, so applying while exhausted does not extend the
// wait.
func (g *Group) Apply(cd timeline.Time, charges uint8) {
	capacity := cd * timeline.Time(chargeCount(charges))
	g.debt += cd
	if g.debt > capacity {
		g.debt = capacity
	}
}

// Advance pays elapsed time off the debt, saturating at zero.
func (g *Group) Advance(elapsed timeline.Time) {
	if g.debt <= elapsed {
		g.debt = 0
		return
	}
	g.debt -= elapsed
}

// ReadyIn returns how long until a charge is ready, zero when one
// already is.
func (g *Group) ReadyIn(cd timeline.Time, charges uint8) timeline.Time {
	threshold := cd * timeline.Time(chargeCount(charges)-1)
	if g.debt <= threshold {
		return 0
	}
	return g.debt - threshold
}

// chargeCount normalizes a charge count; zero means one.
func chargeCount(charges uint8) uint8 {
	if charges == 0 {
		return 1
	}
	return charges
}
