package blade

import (
	"github.com/louisbranch/crucible/internal/combat"
	"github.com/louisbranch/crucible/internal/core/timeline"
	"github.com/louisbranch/crucible/internal/systems"
)

// Snap commits a validated Blade action: advances the chain and gauge
// and emits the action's hits. Targets that died while the action was
// in flight still get events; the driver drops damage against handles
// that no longer resolve.
func (Job) Snap(action combat.ActionID, st systems.State, w combat.World, actor combat.Actor, sink combat.Sink) {
	state := st.(*State)
	target := actor.Target()

	switch action {
	case ActionSlash:
		hit(w, state, actor, sink, ActionSlash, potencySlash, hitDelay)
		state.chain.Set(comboSlash)
		state.gain(momentumGain)

	case ActionRend:
		if state.chain.Check(comboSlash) {
			hit(w, state, actor, sink, ActionRend, potencyRendCombo, hitDelay)
			state.chain.Set(comboRend)
			state.gain(momentumGain)
			return
		}
		hit(w, state, actor, sink, ActionRend, potencyRend, hitDelay)
		state.chain.Reset()

	case ActionCleave:
		hit(w, state, actor, sink, ActionCleave, potencyCleave, hitDelay)
		state.chain.Reset()
		state.gain(momentumGainCleave)

	case ActionTwinStrike:
		cascade := combat.NewCascade(hitDelay, cascadeStep)
		snap := systems.Snapshot(w, actor, state, target)
		for i := 0; i < 2; i++ {
			sink.Event(combat.NewDamage(actor.Handle(), target, combat.DamageEvent{
				Action:    ActionTwinStrike,
				Potency:   potencyTwinStrike,
				Stats:     actor.Stats(),
				Snapshot:  snap,
				CanCrit:   true,
				CanDirect: true,
			}), cascade.Next())
		}
		state.gain(momentumGain)

	case ActionWarCry:
		sink.Event(combat.NewStatus(actor.Handle(), actor.Handle(), combat.StatusEvent{
			Op:     combat.StatusApply,
			ID:     StatusBattleFury,
			Stacks: 1,
		}), 0)

	case ActionExecute:
		potency := potencyExecute
		if w.Positional(actor.Handle(), target) == combat.PositionalFlank {
			potency = potencyExecuteFlank
		}
		hit(w, state, actor, sink, ActionExecute, potency, hitDelay)
		state.Momentum -= executeCost
	}
}

// HandleEvent is a no-op: the Blade defers nothing through job events.
func (Job) HandleEvent(payload any, st systems.State, w combat.World, actor combat.Actor, sink combat.Sink) {
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
