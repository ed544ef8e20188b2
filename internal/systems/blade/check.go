package blade

import (
	"github.com/louisbranch/crucible/internal/combat"
	"github.com/louisbranch/crucible/internal/systems"
)

// Check validates a Blade action without touching state. Failures
// report the first violated precondition, in the order cooldown,
// resource, combo, target, combat.
func (Job) Check(action combat.ActionID, st systems.State, w combat.World, actor combat.Actor, sink combat.Sink) (combat.CastInit, bool) {
	state := st.(*State)

	switch action {
	case ActionSlash, ActionRend, ActionTwinStrike:
		if !hostileTarget(w, actor) {
			sink.Error(systems.TargetInvalidError())
			return combat.CastInit{}, false
		}
		return weaponskill(w, actor), true

	case ActionCleave:
		if !state.chain.Check(comboRend) {
			sink.Error(systems.ComboRequiredError("Rend"))
			return combat.CastInit{}, false
		}
		if !hostileTarget(w, actor) {
			sink.Error(systems.TargetInvalidError())
			return combat.CastInit{}, false
		}
		return weaponskill(w, actor), true

	case ActionWarCry:
		group := actor.Cooldown(CooldownWarCry)
		if !group.Available(warCryCooldown, 1) {
			sink.Error(systems.CooldownUnreadyError(group.ReadyIn(warCryCooldown, 1)))
			return combat.CastInit{}, false
		}
		return combat.CastInit{
			Lock: offGCDLock,
			Cooldown: combat.CooldownUse{
				Group:    CooldownWarCry,
				Duration: warCryCooldown,
				Charges:  1,
			},
		}, true

	case ActionExecute:
		if state.Momentum < executeCost {
			sink.Error(systems.InsufficientResourceError("momentum", state.Momentum, executeCost))
			return combat.CastInit{}, false
		}
		if !hostileTarget(w, actor) {
			sink.Error(systems.TargetInvalidError())
			return combat.CastInit{}, false
		}
		if !actor.InCombat() {
			sink.Error(systems.NotInCombatError())
			return combat.CastInit{}, false
		}
		return weaponskill(w, actor), true

	default:
		sink.Error(systems.UnknownActionError(action))
		return combat.CastInit{}, false
	}
}

// weaponskill builds the cast shape shared by every Blade GCD: instant,
// on the scaled global recast, with the melee animation lock.
func weaponskill(w combat.World, actor combat.Actor) combat.CastInit {
	return combat.CastInit{
		GCD:  w.Scaler().ScaleDuration(gcdBase, actor.Duration()),
		Lock: meleeLock,
	}
}

// hostileTarget reports whether the actor's current target resolves to
// a live enemy.
func hostileTarget(w combat.World, actor combat.Actor) bool {
	target := actor.Target()
	if target.IsZero() {
		return false
	}
	t, ok := w.Actor(target)
	if !ok {
		return false
	}
	return t.Faction() != actor.Faction()
}
