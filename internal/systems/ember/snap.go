package ember

import (
	"github.com/louisbranch/crucible/internal/combat"
	"github.com/louisbranch/crucible/internal/core/timeline"
	"github.com/louisbranch/crucible/internal/systems"
)

// cindersAward is Pyre's deferred gauge payout: granted through a job
// event once the hits have landed, scaled by how many targets they hit.
type cindersAward struct {
	Targets int32
}

// Snap commits a validated Ember action: emits its hits and effects and
// feeds the gauge. Targets that died while a cast was in flight still
// get events; the driver drops damage against handles that no longer
// resolve.
func (Job) Snap(action combat.ActionID, st systems.State, w combat.World, actor combat.Actor, sink combat.Sink) {
	state := st.(*State)
	target := actor.Target()

	switch action {
	case ActionKindle:
		hit(w, state, actor, sink, ActionKindle, potencyKindle, spellDelay)
		state.gain(cindersGainKindle)

	case ActionFlashfire:
		hit(w, state, actor, sink, ActionFlashfire, potencyFlashfire, spellDelay)
		sink.Event(combat.NewStatus(actor.Handle(), target, combat.StatusEvent{
			Op: combat.StatusApply,
			ID: StatusSearing,
		}), spellDelay)
		sink.Event(combat.NewTick(actor.Handle(), target, combat.TickEvent{
			ID:      StatusSearing,
			Potency: searingPotency,
			Period:  searingPeriod,
		}), searingPeriod)

	case ActionSurge:
		sink.Event(combat.NewStatus(actor.Handle(), actor.Handle(), combat.StatusEvent{
			Op: combat.StatusApply,
			ID: StatusQuickened,
		}), 0)

	case ActionPyre:
		targets := w.TargetsIn(actor, combat.Cone(pyreRadius, pyreAngle))
		cascade := combat.NewCascade(spellDelay, cascadeStep)
		var last timeline.Time
		for _, t := range targets {
			last = cascade.Next()
			sink.Event(combat.NewDamage(actor.Handle(), t, combat.DamageEvent{
				Action:    ActionPyre,
				Potency:   potencyPyre,
				Stats:     actor.Stats(),
				Snapshot:  systems.Snapshot(w, actor, state, t),
				CanCrit:   true,
				CanDirect: true,
			}), last)
		}
		if len(targets) > 0 {
			sink.Event(combat.NewJob(actor.Handle(), cindersAward{Targets: int32(len(targets))}), last)
		}

	case ActionCombust:
		hit(w, state, actor, sink, ActionCombust, potencyCombust, spellDelay)
	}
}

// HandleEvent resolves Ember's deferred events.
func (Job) HandleEvent(payload any, st systems.State, w combat.World, actor combat.Actor, sink combat.Sink) {
	state := st.(*State)
	switch p := payload.(type) {
	case cindersAward:
		state.gain(cindersPerPyreTarget * p.Targets)
	}
}

// hit emits one damage event against the actor's current target with
// the pipeline snapshot fixed now.
func hit(w combat.World, state *State, actor combat.Actor, sink combat.Sink, action combat.ActionID, potency int32, delay timeline.Time) {
	target := actor.Target()
	sink.Event(combat.NewDamage(actor.Handle(), target, combat.DamageEvent{
		Action:    action,
		Potency:   potency,
		Stats:     actor.Stats(),
		Snapshot:  systems.Snapshot(w, actor, state, target),
		CanCrit:   true,
		CanDirect: true,
	}), delay)
}
