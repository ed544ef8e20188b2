package encounter

import (
	"github.com/louisbranch/crucible/internal/combat"
	"github.com/louisbranch/crucible/internal/core/arena"
	"github.com/louisbranch/crucible/internal/core/cooldown"
	"github.com/louisbranch/crucible/internal/core/status"
	"github.com/louisbranch/crucible/internal/core/timeline"
	"github.com/louisbranch/crucible/internal/systems"
)

// actorState is everything the encounter tracks per combatant. It
// implements combat.Actor; jobs see it read-only through that
// interface while the encounter mutates it as events apply.
type actorState struct {
	handle  arena.Handle
	name    string
	faction combat.Faction
	level   uint8
	stats   status.Stats

	job      systems.Job
	jobState systems.State

	hp       int64
	hpMax    int64
	mp       int32
	mpMax    int32
	inCombat bool
	target   arena.Handle

	pos    Vec2
	facing Vec2

	statuses status.Set
	groups   map[combat.CooldownGroup]*cooldown.Group

	// gcdReady and lockedUntil are absolute encounter times. The
	// actor is busy until lockedUntil; GCD actions additionally wait
	// for gcdReady.
	gcdReady    timeline.Time
	lockedUntil timeline.Time
}

func (a *actorState) Handle() arena.Handle    { return a.handle }
func (a *actorState) Faction() combat.Faction { return a.faction }
func (a *actorState) InCombat() bool          { return a.inCombat }
func (a *actorState) Target() arena.Handle    { return a.target }
func (a *actorState) MP() int32               { return a.mp }
func (a *actorState) Statuses() *status.Set   { return &a.statuses }
func (a *actorState) Stats() status.Stats     { return a.stats }

func (a *actorState) Cooldown(group combat.CooldownGroup) *cooldown.Group {
	g, ok := a.groups[group]
	if !ok {
		g = &cooldown.Group{}
		a.groups[group] = g
	}
	return g
}

// Duration folds the actor's current statuses and gauge into the
// inputs duration scaling wants.
func (a *actorState) Duration() combat.DurationInfo {
	var snap status.Snapshot
	snap.Source = a.statuses.Active(nil)
	if g, ok := a.jobState.(systems.GaugeEffects); ok {
		snap.SourceGauge = g.GaugeEffects(a.handle)
	}
	folded := snap.Stats(a.stats)
	return combat.DurationInfo{
		Level:    a.level,
		Speed:    folded.Speed,
		HastePct: snap.Haste(),
	}
}

// advance elapses time on everything the actor owns. Status expiry is
// reported through expired.
func (a *actorState) advance(elapsed timeline.Time, expired func(status.Instance)) {
	a.statuses.Advance(elapsed, expired)
	for _, g := range a.groups {
		g.Advance(elapsed)
	}
	if a.jobState != nil {
		a.jobState.Advance(elapsed)
	}
}

// damage applies a resolved amount, flooring HP at zero.
func (a *actorState) damage(amount int32) {
	a.hp -= int64(amount)
	if a.hp < 0 {
		a.hp = 0
	}
}
