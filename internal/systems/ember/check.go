package ember

import (
	"github.com/louisbranch/crucible/internal/combat"
	"github.com/louisbranch/crucible/internal/core/timeline"
	"github.com/louisbranch/crucible/internal/systems"
)

// Check validates an Ember action without touching state. Failures
// report the first violated precondition, in the order cooldown, mana,
// target, required effect, combat.
func (Job) Check(action combat.ActionID, st systems.State, w combat.World, actor combat.Actor, sink combat.Sink) (combat.CastInit, bool) {
	switch action {
	case ActionKindle:
		if !payable(actor, mpKindle, sink) {
			return combat.CastInit{}, false
		}
		if _, ok := hostileTarget(w, actor); !ok {
			sink.Error(systems.TargetInvalidError())
			return combat.CastInit{}, false
		}
		init := spell(w, actor, kindleCast)
		init.MPCost = mpKindle
		return init, true

	case ActionFlashfire:
		if !payable(actor, mpFlashfire, sink) {
			return combat.CastInit{}, false
		}
		if _, ok := hostileTarget(w, actor); !ok {
			sink.Error(systems.TargetInvalidError())
			return combat.CastInit{}, false
		}
		init := spell(w, actor, 0)
		init.MPCost = mpFlashfire
		return init, true

	case ActionSurge:
		group := actor.Cooldown(CooldownSurge)
		if !group.Available(surgeCooldown, surgeCharges) {
			sink.Error(systems.CooldownUnreadyError(group.ReadyIn(surgeCooldown, surgeCharges)))
			return combat.CastInit{}, false
		}
		return combat.CastInit{
			Lock: offGCDLock,
			Cooldown: combat.CooldownUse{
				Group:    CooldownSurge,
				Duration: surgeCooldown,
				Charges:  surgeCharges,
			},
		}, true

	case ActionPyre:
		if !payable(actor, mpPyre, sink) {
			return combat.CastInit{}, false
		}
		init := spell(w, actor, pyreCast)
		init.MPCost = mpPyre
		return init, true

	case ActionCombust:
		if !payable(actor, mpCombust, sink) {
			return combat.CastInit{}, false
		}
		target, ok := hostileTarget(w, actor)
		if !ok {
			sink.Error(systems.TargetInvalidError())
			return combat.CastInit{}, false
		}
		if _, ok := target.Statuses().Get(actor.Handle(), StatusSearing); !ok {
			sink.Error(systems.StatusRequiredError(searing.Name))
			return combat.CastInit{}, false
		}
		if !actor.InCombat() {
			sink.Error(systems.NotInCombatError())
			return combat.CastInit{}, false
		}
		init := spell(w, actor, 0)
		init.MPCost = mpCombust
		return init, true

	default:
		sink.Error(systems.UnknownActionError(action))
		return combat.CastInit{}, false
	}
}

// spell builds the cast shape of an Ember GCD: cast and recast scaled
// by the actor's speed and haste, with the spell animation lock.
func spell(w combat.World, actor combat.Actor, castBase timeline.Time) combat.CastInit {
	scaler := w.Scaler()
	info := actor.Duration()
	init := combat.CastInit{
		GCD:  scaler.ScaleDuration(gcdBase, info),
		Lock: spellLock,
	}
	if castBase > 0 {
		init.CastTime = scaler.ScaleDuration(castBase, info)
	}
	return init
}

// payable checks the actor's mana against cost, reporting the
// rejection itself.
func payable(actor combat.Actor, cost int32, sink combat.Sink) bool {
	if actor.MP() < cost {
		sink.Error(systems.InsufficientResourceError("mp", actor.MP(), cost))
		return false
	}
	return true
}

// hostileTarget resolves the actor's current target as a live enemy.
func hostileTarget(w combat.World, actor combat.Actor) (combat.Actor, bool) {
	handle := actor.Target()
	if handle.IsZero() {
		return nil, false
	}
	t, ok := w.Actor(handle)
	if !ok || t.Faction() == actor.Faction() {
		return nil, false
	}
	return t, true
}
