package encounter

import (
	"math"
	"sort"

	"github.com/louisbranch/crucible/internal/combat"
	"github.com/louisbranch/crucible/internal/core/arena"
)

// Actor resolves a handle to its live actor.
func (e *Encounter) Actor(h arena.Handle) (combat.Actor, bool) {
	a, ok := e.actor(h)
	if !ok {
		return nil, false
	}
	return a, true
}

// TargetsIn enumerates the handles covered by shape, nearest first.
// Single resolves its explicit handle; area shapes sweep the source's
// enemies.
func (e *Encounter) TargetsIn(source combat.Actor, shape combat.Shape) []arena.Handle {
	if shape.Kind == combat.ShapeSingle {
		if _, ok := e.actor(shape.Target); !ok {
			return nil
		}
		return []arena.Handle{shape.Target}
	}

	src, ok := e.actor(source.Handle())
	if !ok {
		return nil
	}

	center := src.pos
	if shape.Kind == combat.ShapeTargetedCircle {
		anchor, ok := e.actor(shape.Target)
		if !ok {
			return nil
		}
		center = anchor.pos
	}

	type candidate struct {
		handle arena.Handle
		dist   float64
	}
	var hits []candidate
	e.actors.All(func(h arena.Handle, ap **actorState) bool {
		a := *ap
		if a.faction == src.faction {
			return true
		}
		delta := a.pos.Sub(center)
		dist := delta.Len()
		switch shape.Kind {
		case combat.ShapeCircle, combat.ShapeTargetedCircle:
			if dist > float64(shape.Radius) {
				return true
			}
		case combat.ShapeCone:
			if dist > float64(shape.Radius) {
				return true
			}
			if !withinAngle(src.facing, delta, float64(shape.Angle)/2) {
				return true
			}
		case combat.ShapeLine:
			axis := src.facing.Norm()
			along := delta.Dot(axis)
			if along < 0 || along > float64(shape.Length) {
				return true
			}
			perp := delta.Sub(axis.Scale(along)).Len()
			if perp > float64(shape.Width)/2 {
				return true
			}
		default:
			return true
		}
		hits = append(hits, candidate{handle: h, dist: dist})
		return true
	})

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })
	out := make([]arena.Handle, len(hits))
	for i, c := range hits {
		out[i] = c.handle
	}
	return out
}

// cos45 bounds the front and rear arcs of a positional check.
var cos45 = math.Cos(math.Pi / 4)

// Positional reports where source stands relative to target's facing:
// within 45 degrees of it is front, within 45 of its reverse is rear,
// anything else is flank. Targets without a facing, unresolvable
// handles, and self-targeting yield none.
func (e *Encounter) Positional(source, target arena.Handle) combat.Positional {
	if source == target {
		return combat.PositionalNone
	}
	src, ok := e.actor(source)
	if !ok {
		return combat.PositionalNone
	}
	tgt, ok := e.actor(target)
	if !ok || tgt.facing.IsZero() {
		return combat.PositionalNone
	}

	delta := src.pos.Sub(tgt.pos)
	if delta.IsZero() {
		return combat.PositionalNone
	}
	cos := tgt.facing.Norm().Dot(delta.Norm())
	switch {
	case cos >= cos45:
		return combat.PositionalFront
	case cos <= -cos45:
		return combat.PositionalRear
	default:
		return combat.PositionalFlank
	}
}

// Scaler returns the duration scaling capability.
func (e *Encounter) Scaler() combat.Scaler { return e.scaler }

// Rng returns the randomness capability.
func (e *Encounter) Rng() combat.Rng { return e.rng }

var _ combat.World = (*Encounter)(nil)
