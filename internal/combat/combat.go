// Package combat defines the contract between job logic and the world
// that hosts it: the event union jobs emit, the sink that receives it,
// and the query capabilities (actors, targeting, scaling, randomness)
// the world provides. The package holds no state of its own; drivers
// implement the interfaces and jobs stay pure against them.
package combat

// JobID identifies a job (a playable class kit). Values are assigned
// by job packages and registered with the systems registry.
type JobID uint8

// ActionID identifies an action within the simulation. Each job package
// owns a range of constants; the zero ActionID is invalid.
type ActionID uint16

// Faction separates the two sides of an encounter.
type Faction uint8

const (
	FactionFriendly Faction = iota + 1
	FactionHostile
)

// Positional is where the source stands relative to the target's
// facing. Targets without a facing (or self-targeting) yield
// PositionalNone.
type Positional uint8

const (
	PositionalNone Positional = iota
	PositionalFront
	PositionalFlank
	PositionalRear
)

// String returns the positional's name for journals and logs.
func (p Positional) String() string {
	switch p {
	case PositionalFront:
		return "front"
	case PositionalFlank:
		return "flank"
	case PositionalRear:
		return "rear"
	default:
		return "none"
	}
}
