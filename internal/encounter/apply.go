package encounter

import (
	"github.com/louisbranch/crucible/internal/combat"
	"github.com/louisbranch/crucible/internal/core/arena"
	"github.com/louisbranch/crucible/internal/core/status"
	"github.com/louisbranch/crucible/internal/systems"
)

// apply resolves one popped event against current state. Events whose
// source or target despawned are dropped without effect.
func (e *Encounter) apply(ev combat.Event) {
	switch ev.Kind {
	case combat.EventCastSnapshot:
		e.applyCast(ev)
	case combat.EventDamage:
		e.applyDamage(ev)
	case combat.EventStatus:
		e.applyStatus(ev)
	case combat.EventJob:
		e.applyJob(ev)
	case combat.EventTick:
		e.applyTick(ev)
	}
}

// applyCast runs the job's snap phase at cast completion.
func (e *Encounter) applyCast(ev combat.Event) {
	a, ok := e.actor(ev.Source)
	if !ok || a.job == nil {
		return
	}
	a.job.Snap(ev.Cast.Action, a.jobState, e, a, runSink{e})
}

// applyDamage resolves a hit: rolls crit and direct through the rng
// capability, floors through the pipeline, decrements HP, and records
// the outcome. Damage between enemies pulls both sides into combat.
func (e *Encounter) applyDamage(ev combat.Event) {
	target, ok := e.actor(ev.Target)
	if !ok {
		return
	}
	res := combat.ResolveDamage(ev.Damage, e.rng)
	target.damage(res.Amount)
	e.enterCombat(ev.Source, target)
	e.record(Entry{
		Kind:     EntryDamage,
		Source:   ev.Source,
		Target:   ev.Target,
		Action:   ev.Damage.Action,
		Amount:   res.Amount,
		Critical: res.Critical,
		Direct:   res.Direct,
	})
}

// applyStatus mutates the target's status set under the
// apply-or-extend rule.
func (e *Encounter) applyStatus(ev combat.Event) {
	target, ok := e.actor(ev.Target)
	if !ok {
		return
	}
	switch ev.Status.Op {
	case combat.StatusApply:
		desc := status.DefaultRegistry.MustGet(ev.Status.ID)
		kind := EntryStatusApply
		if target.statuses.Apply(ev.Source, desc, ev.Status.Stacks) {
			kind = EntryStatusRefresh
		}
		in, _ := target.statuses.Get(ev.Source, ev.Status.ID)
		e.enterCombat(ev.Source, target)
		e.record(Entry{Kind: kind, Source: ev.Source, Target: ev.Target, Status: ev.Status.ID, Stacks: in.Stacks})

	case combat.StatusRemove:
		if _, ok := target.statuses.Remove(ev.Source, ev.Status.ID); ok {
			e.record(Entry{Kind: EntryStatusRemove, Source: ev.Source, Target: ev.Target, Status: ev.Status.ID})
		}

	case combat.StatusAddStacks:
		if !target.statuses.AddStacks(ev.Source, ev.Status.ID, int(ev.Status.Delta)) {
			return
		}
		in, _ := target.statuses.Get(ev.Source, ev.Status.ID)
		e.record(Entry{Kind: EntryStatusApply, Source: ev.Source, Target: ev.Target, Status: ev.Status.ID, Stacks: in.Stacks})
	}
}

// applyJob routes a deferred payload back to the job that emitted it.
func (e *Encounter) applyJob(ev combat.Event) {
	a, ok := e.actor(ev.Source)
	if !ok || a.job == nil {
		return
	}
	a.job.HandleEvent(ev.Job.Payload, a.jobState, e, a, runSink{e})
}

// applyTick resolves one beat of a periodic effect. A tick whose
// owning instance is gone is dropped and never re-arms; a live one
// deals its potency with a snapshot taken fresh at the beat, then
// re-arms itself a period later.
func (e *Encounter) applyTick(ev combat.Event) {
	target, ok := e.actor(ev.Target)
	if !ok {
		return
	}
	if _, ok := target.statuses.Get(ev.Source, ev.Tick.ID); !ok {
		return
	}

	var snap status.Snapshot
	snap.Target = target.statuses.Active(nil)
	var stats status.Stats
	if source, ok := e.actor(ev.Source); ok {
		snap.Source = source.statuses.Active(nil)
		if g, ok := source.jobState.(systems.GaugeEffects); ok {
			snap.SourceGauge = g.GaugeEffects(source.handle)
		}
		stats = source.stats
	}

	res := combat.ResolveDamage(combat.DamageEvent{
		Potency:   ev.Tick.Potency,
		Stats:     stats,
		Snapshot:  snap,
		CanCrit:   true,
		CanDirect: true,
	}, e.rng)
	target.damage(res.Amount)
	e.record(Entry{
		Kind:     EntryTick,
		Source:   ev.Source,
		Target:   ev.Target,
		Status:   ev.Tick.ID,
		Amount:   res.Amount,
		Critical: res.Critical,
		Direct:   res.Direct,
	})
	e.queue.Push(e.clock+ev.Tick.Period, ev)
}

// enterCombat flags both sides of a hostile interaction.
func (e *Encounter) enterCombat(source arena.Handle, target *actorState) {
	src, ok := e.actor(source)
	if !ok || src.faction == target.faction {
		return
	}
	src.inCombat = true
	target.inCombat = true
}
