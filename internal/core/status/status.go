// Package status implements status effects and the modifier pipeline
// they feed. A Descriptor is the immutable definition of an effect; an
// Instance is one application of it to a target; a Snapshot folds the
// instances relevant to a single action resolution into final numbers.
package status

import "github.com/louisbranch/crucible/internal/core/timeline"

// ID identifies an interned Descriptor. Descriptors are compared by ID,
// never by pointer. The zero ID is reserved and never registered.
type ID int32

// Stats is the stat sheet statuses can transform. Rates are per-mille:
// a CritRate of 50 is a 5% chance.
type Stats struct {
	Power      int32
	Speed      int32
	CritRate   int32
	DirectRate int32
}

// Modifier transforms one integer quantity flowing through the
// pipeline. The instance carrying the modifier is passed in so
// stack-scaled effects can read their own stack count.
type Modifier func(Instance, int32) int32

// StatsModifier transforms the acting actor's stat sheet.
type StatsModifier func(Instance, Stats) Stats

// ValueModifier pairs the two directions of one quantity: Incoming runs
// when the carrier is the target, Outgoing when the carrier is the
// source. A nil direction leaves the value unchanged.
type ValueModifier struct {
	Incoming Modifier
	Outgoing Modifier
}

// Descriptor is the immutable definition of a status effect. All
// modifier slots are optional; an absent slot is the identity.
//
// Descriptors are registered once and interned by ID; see Registry.
type Descriptor struct {
	ID        ID
	Name      string
	Duration  timeline.Time
	Permanent bool
	MaxStacks uint8

	Damage    ValueModifier
	Crit      ValueModifier
	DirectHit ValueModifier
	Stats     StatsModifier
	Haste     Modifier
}

// stackCap returns the effective stack limit; zero means one.
func (d *Descriptor) stackCap() uint8 {
	if d.MaxStacks == 0 {
		return 1
	}
	return d.MaxStacks
}

// scale multiplies v by num/den in 64-bit space, truncating toward zero.
// This is the production rounding rule for every multiplicative step.
func scale(v, num, den int32) int32 {
	return int32(int64(v) * int64(num) / int64(den))
}

// DamageDealtPct builds an outgoing damage modifier that multiplies by
// pct percent. DamageDealtPct(115) is a 15% damage buff.
func DamageDealtPct(pct int32) ValueModifier {
	return ValueModifier{Outgoing: func(_ Instance, v int32) int32 {
		return scale(v, pct, 100)
	}}
}

// DamageTakenPct builds an incoming damage modifier that multiplies by
// pct percent. DamageTakenPct(110) is a 10% vulnerability.
func DamageTakenPct(pct int32) ValueModifier {
	return ValueModifier{Incoming: func(_ Instance, v int32) int32 {
		return scale(v, pct, 100)
	}}
}

// DamageDealtPctPerStack builds an outgoing damage modifier adding pct
// percent per stack: with pct 5 and three stacks damage scales by 115%.
func DamageDealtPctPerStack(pct int32) ValueModifier {
	return ValueModifier{Outgoing: func(in Instance, v int32) int32 {
		return scale(v, 100+pct*int32(in.Stacks), 100)
	}}
}

// CritRateAdd builds an outgoing crit chance modifier adding permille
// probability units.
func CritRateAdd(permille int32) ValueModifier {
	return ValueModifier{Outgoing: func(_ Instance, v int32) int32 {
		return v + permille
	}}
}

// CritTakenAdd builds an incoming crit chance modifier adding permille
// probability units to hits against the carrier.
func CritTakenAdd(permille int32) ValueModifier {
	return ValueModifier{Incoming: func(_ Instance, v int32) int32 {
		return v + permille
	}}
}

// DirectRateAdd builds an outgoing direct hit chance modifier adding
// permille probability units.
func DirectRateAdd(permille int32) ValueModifier {
	return ValueModifier{Outgoing: func(_ Instance, v int32) int32 {
		return v + permille
	}}
}

// HastePct builds a haste transform speeding the carrier up by pct
// percent: HastePct(20) contributes a 80/100 factor to the haste fold.
func HastePct(pct int32) Modifier {
	return func(_ Instance, acc int32) int32 {
		return scale(acc, 100-pct, 100)
	}
}

// PowerAdd builds a stat transform adding a flat amount of Power.
func PowerAdd(amount int32) StatsModifier {
	return func(_ Instance, s Stats) Stats {
		s.Power += amount
		return s
	}
}
