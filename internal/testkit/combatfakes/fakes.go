// Package combatfakes provides lightweight in-memory fakes for the
// combat capability interfaces, for use in job and driver tests.
package combatfakes

import (
	"github.com/louisbranch/crucible/internal/combat"
	"github.com/louisbranch/crucible/internal/core/arena"
	"github.com/louisbranch/crucible/internal/core/cooldown"
	"github.com/louisbranch/crucible/internal/core/status"
	"github.com/louisbranch/crucible/internal/core/timeline"
	apperrors "github.com/louisbranch/crucible/internal/errors"
)

// Actor is a combat.Actor fake with settable fields.
type Actor struct {
	HandleVal   arena.Handle
	FactionVal  combat.Faction
	InCombatVal bool
	TargetVal   arena.Handle
	MPVal       int32
	StatusSet   status.Set
	StatsVal    status.Stats
	DurationVal combat.DurationInfo
	Groups      map[combat.CooldownGroup]*cooldown.Group
}

// NewActor constructs an Actor fake registered in w with sensible
// defaults: friendly, in combat, full MP.
func NewActor(w *World) *Actor {
	a := &Actor{
		FactionVal:  combat.FactionFriendly,
		InCombatVal: true,
		MPVal:       10000,
		DurationVal: combat.DurationInfo{Level: 90, HastePct: 100},
		Groups:      make(map[combat.CooldownGroup]*cooldown.Group),
	}
	a.HandleVal = w.add(a)
	return a
}

func (a *Actor) Handle() arena.Handle          { return a.HandleVal }
func (a *Actor) Faction() combat.Faction       { return a.FactionVal }
func (a *Actor) InCombat() bool                { return a.InCombatVal }
func (a *Actor) Target() arena.Handle          { return a.TargetVal }
func (a *Actor) MP() int32                     { return a.MPVal }
func (a *Actor) Statuses() *status.Set         { return &a.StatusSet }
func (a *Actor) Stats() status.Stats           { return a.StatsVal }
func (a *Actor) Duration() combat.DurationInfo { return a.DurationVal }

func (a *Actor) Cooldown(group combat.CooldownGroup) *cooldown.Group {
	g, ok := a.Groups[group]
	if !ok {
		g = &cooldown.Group{}
		a.Groups[group] = g
	}
	return g
}

// World is a combat.World fake. Targets is returned by TargetsIn for
// area shapes; single-target shapes resolve through the arena.
type World struct {
	Actors      arena.Arena[*Actor]
	Targets     []arena.Handle
	Positionals map[arena.Handle]combat.Positional
	ScalerVal   combat.Scaler
	RngVal      combat.Rng
}

// NewWorld constructs a World fake with identity scaling and a roller
// that never procs.
func NewWorld() *World {
	return &World{
		Positionals: make(map[arena.Handle]combat.Positional),
		ScalerVal:   combat.IdentityScaler(),
		RngVal:      combat.NeverRng(),
	}
}

func (w *World) add(a *Actor) arena.Handle {
	return w.Actors.Alloc(a)
}

func (w *World) Actor(h arena.Handle) (combat.Actor, bool) {
	a, ok := w.Actors.Get(h)
	if !ok {
		return nil, false
	}
	return *a, true
}

func (w *World) TargetsIn(source combat.Actor, shape combat.Shape) []arena.Handle {
	if shape.Kind == combat.ShapeSingle {
		if _, ok := w.Actors.Get(shape.Target); !ok {
			return nil
		}
		return []arena.Handle{shape.Target}
	}
	return w.Targets
}

func (w *World) Positional(source, target arena.Handle) combat.Positional {
	return w.Positionals[target]
}

func (w *World) Scaler() combat.Scaler { return w.ScalerVal }
func (w *World) Rng() combat.Rng       { return w.RngVal }

// TimedEvent is one event recorded by a Sink with its relative delay.
type TimedEvent struct {
	Event combat.Event
	Delay timeline.Time
}

// Sink records everything job logic emits.
type Sink struct {
	Errors []*apperrors.Error
	Events []TimedEvent
}

func (s *Sink) Error(err *apperrors.Error) {
	s.Errors = append(s.Errors, err)
}

func (s *Sink) Event(ev combat.Event, delay timeline.Time) {
	s.Events = append(s.Events, TimedEvent{Event: ev, Delay: delay})
}

// Reset clears recorded errors and events.
func (s *Sink) Reset() {
	s.Errors = nil
	s.Events = nil
}
