package combat

import "github.com/louisbranch/crucible/internal/core/timeline"

// CooldownGroup names a cooldown bucket within one actor. Actions
// sharing a group share its recharge timer.
type CooldownGroup uint8

// CooldownUse describes the cooldown an accepted cast applies. The
// zero value applies none.
type CooldownUse struct {
	Group    CooldownGroup
	Duration timeline.Time
	Charges  uint8
}

// CastInit is the outcome of a successful check: how the cast occupies
// the actor and what it consumes. All timings are already scaled.
//
// A zero CastTime is an instant action; its snap runs immediately. GCD
// is the global recast the action occupies, zero for off-GCD actions.
// Lock is the animation lock that keeps the actor busy after the snap.
type CastInit struct {
	CastTime timeline.Time
	GCD      timeline.Time
	Lock     timeline.Time
	MPCost   int32
	Cooldown CooldownUse
}

// Cascade generates the staggered application delays of multi-hit and
// multi-target actions: a base delay, then a fixed increment per step.
type Cascade struct {
	base timeline.Time
	step timeline.Time
	n    timeline.Time
}

// NewCascade returns a cascade starting at base and growing by step.
func NewCascade(base, step timeline.Time) Cascade {
	return Cascade{base: base, step: step}
}

// Next returns the next delay in the sequence.
func (c *Cascade) Next() timeline.Time {
	d := c.base + c.n*c.step
	c.n++
	return d
}
