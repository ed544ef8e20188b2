package combat

import (
	"github.com/louisbranch/crucible/internal/core/arena"
	"github.com/louisbranch/crucible/internal/core/cooldown"
	"github.com/louisbranch/crucible/internal/core/status"
)

// Actor is the read surface job logic gets for one combatant.
type Actor interface {
	// Handle returns the actor's arena handle.
	Handle() arena.Handle

	// Faction returns which side the actor fights for.
	Faction() Faction

	// InCombat reports whether the actor has entered combat.
	InCombat() bool

	// Target returns the actor's current primary target, which may be
	// the zero handle when nothing is targeted.
	Target() arena.Handle

	// MP returns the actor's current mana.
	MP() int32

	// Statuses returns the actor's status set. Jobs read it for
	// requirement checks; mutation goes through status events.
	Statuses() *status.Set

	// Cooldown returns the actor's cooldown group. Jobs read
	// availability during checks; applying debt is the driver's job
	// when a cast is accepted.
	Cooldown(group CooldownGroup) *cooldown.Group

	// Stats returns the actor's base stat sheet, before status
	// transforms.
	Stats() status.Stats

	// Duration returns the inputs duration scaling needs, with the
	// actor's current haste already folded in.
	Duration() DurationInfo
}

// World is the query capability handed to job logic. It resolves
// handles, enumerates targets, and carries the injected scaling and
// randomness capabilities. Implementations live outside the core.
type World interface {
	// Actor resolves a handle to its actor. Stale handles miss.
	Actor(h arena.Handle) (Actor, bool)

	// TargetsIn enumerates the handles hit by shape when used by
	// source, nearest first. Single resolves its explicit handle; area
	// shapes enumerate the source's enemies.
	TargetsIn(source Actor, shape Shape) []arena.Handle

	// Positional reports where source stands relative to target.
	Positional(source, target arena.Handle) Positional

	// Scaler returns the duration scaling capability.
	Scaler() Scaler

	// Rng returns the randomness capability.
	Rng() Rng
}

// ShapeKind tags the geometry of a targeting shape.
type ShapeKind uint8

const (
	ShapeSingle ShapeKind = iota + 1
	ShapeCircle
	ShapeCone
	ShapeLine
	ShapeTargetedCircle
)

// Shape describes the area an action covers. Radius, Angle, and Length
// are in game units and degrees; which fields matter depends on Kind.
type Shape struct {
	Kind   ShapeKind
	Target arena.Handle
	Radius int32
	Angle  int32
	Length int32
	Width  int32
}

// Single targets exactly one actor.
func Single(target arena.Handle) Shape {
	return Shape{Kind: ShapeSingle, Target: target}
}

// Circle covers everything within radius of the source.
func Circle(radius int32) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// Cone covers a wedge in front of the source.
func Cone(radius, angle int32) Shape {
	return Shape{Kind: ShapeCone, Radius: radius, Angle: angle}
}

// Line covers a rectangle extending from the source.
func Line(length, width int32) Shape {
	return Shape{Kind: ShapeLine, Length: length, Width: width}
}

// TargetedCircle covers everything within radius of the target.
func TargetedCircle(target arena.Handle, radius int32) Shape {
	return Shape{Kind: ShapeTargetedCircle, Target: target, Radius: radius}
}
