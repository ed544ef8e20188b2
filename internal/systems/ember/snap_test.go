package ember

import (
	"testing"

	"github.com/louisbranch/crucible/internal/combat"
	"github.com/louisbranch/crucible/internal/core/arena"
	"github.com/louisbranch/crucible/internal/core/status"
	"github.com/louisbranch/crucible/internal/core/timeline"
	"github.com/louisbranch/crucible/internal/testkit/combatfakes"
)

func TestSnapKindleBuildsCinders(t *testing.T) {
	w, caster, enemy := setup()
	sink := &combatfakes.Sink{}
	state := &State{}

	Job{}.Snap(ActionKindle, state, w, caster, sink)

	if len(sink.Events) != 1 {
		t.Fatalf("emitted %d events, want 1", len(sink.Events))
	}
	ev := sink.Events[0]
	if ev.Event.Damage.Potency != potencyKindle || ev.Event.Target != enemy.HandleVal {
		t.Fatalf("damage = %+v, want potency %d on %v", ev.Event.Damage, potencyKindle, enemy.HandleVal)
	}
	if ev.Delay != spellDelay {
		t.Fatalf("delay = %d, want %d", ev.Delay, spellDelay)
	}
	if state.Cinders != cindersGainKindle {
		t.Fatalf("cinders = %d, want %d", state.Cinders, cindersGainKindle)
	}
}

func TestSnapFlashfireAppliesDoT(t *testing.T) {
	w, caster, enemy := setup()
	sink := &combatfakes.Sink{}

	Job{}.Snap(ActionFlashfire, &State{}, w, caster, sink)

	if len(sink.Events) != 3 {
		t.Fatalf("emitted %d events, want 3", len(sink.Events))
	}

	d := sink.Events[0]
	if d.Event.Kind != combat.EventDamage || d.Event.Damage.Potency != potencyFlashfire {
		t.Fatalf("first event = %+v, want damage %d", d.Event, potencyFlashfire)
	}

	s := sink.Events[1]
	if s.Event.Kind != combat.EventStatus || s.Event.Status.ID != StatusSearing {
		t.Fatalf("second event = %+v, want searing apply", s.Event)
	}
	if s.Event.Target != enemy.HandleVal || s.Delay != spellDelay {
		t.Fatalf("searing lands on %v at %d, want %v at %d", s.Event.Target, s.Delay, enemy.HandleVal, spellDelay)
	}

	tick := sink.Events[2]
	if tick.Event.Kind != combat.EventTick {
		t.Fatalf("third event kind = %s, want tick", tick.Event.Kind)
	}
	if tick.Event.Tick.ID != StatusSearing || tick.Event.Tick.Potency != searingPotency || tick.Event.Tick.Period != searingPeriod {
		t.Fatalf("tick = %+v, want searing %d every %d", tick.Event.Tick, searingPotency, searingPeriod)
	}
	if tick.Delay != searingPeriod {
		t.Fatalf("first tick delay = %d, want %d", tick.Delay, searingPeriod)
	}
}

func TestSnapSurgeAppliesQuickened(t *testing.T) {
	w, caster, _ := setup()
	sink := &combatfakes.Sink{}

	Job{}.Snap(ActionSurge, &State{}, w, caster, sink)

	if len(sink.Events) != 1 {
		t.Fatalf("emitted %d events, want 1", len(sink.Events))
	}
	ev := sink.Events[0]
	if ev.Event.Status.ID != StatusQuickened || ev.Event.Target != caster.HandleVal {
		t.Fatalf("event = %+v, want quickened on self", ev.Event)
	}
}

func TestSnapPyreCascades(t *testing.T) {
	w, caster, _ := setup()
	sink := &combatfakes.Sink{}

	var enemies []*combatfakes.Actor
	w.Targets = nil
	for i := 0; i < 3; i++ {
		e := combatfakes.NewActor(w)
		e.FactionVal = combat.FactionHostile
		enemies = append(enemies, e)
		w.Targets = append(w.Targets, e.HandleVal)
	}

	Job{}.Snap(ActionPyre, &State{}, w, caster, sink)

	if len(sink.Events) != 4 {
		t.Fatalf("emitted %d events, want 3 hits and 1 job event", len(sink.Events))
	}
	for i := 0; i < 3; i++ {
		ev := sink.Events[i]
		want := spellDelay + timeline.Time(i)*cascadeStep
		if ev.Delay != want {
			t.Fatalf("hit %d delay = %d, want %d", i, ev.Delay, want)
		}
		if ev.Event.Target != enemies[i].HandleVal {
			t.Fatalf("hit %d target = %v, want %v", i, ev.Event.Target, enemies[i].HandleVal)
		}
	}

	job := sink.Events[3]
	if job.Event.Kind != combat.EventJob {
		t.Fatalf("last event kind = %s, want job", job.Event.Kind)
	}
	if job.Delay != sink.Events[2].Delay {
		t.Fatalf("job event delay = %d, want %d", job.Delay, sink.Events[2].Delay)
	}
	award, ok := job.Event.Job.Payload.(cindersAward)
	if !ok || award.Targets != 3 {
		t.Fatalf("payload = %+v, want cindersAward for 3", job.Event.Job.Payload)
	}
}

func TestSnapPyreEmptyCone(t *testing.T) {
	w, caster, _ := setup()
	sink := &combatfakes.Sink{}
	w.Targets = nil

	Job{}.Snap(ActionPyre, &State{}, w, caster, sink)

	if len(sink.Events) != 0 {
		t.Fatalf("empty cone emitted %d events, want 0", len(sink.Events))
	}
}

func TestHandleEventAwardsCinders(t *testing.T) {
	w, caster, _ := setup()
	sink := &combatfakes.Sink{}
	state := &State{}

	Job{}.HandleEvent(cindersAward{Targets: 3}, state, w, caster, sink)

	if want := cindersPerPyreTarget * 3; state.Cinders != want {
		t.Fatalf("cinders = %d, want %d", state.Cinders, want)
	}
}

func TestGaugeProjectsBlazingSoul(t *testing.T) {
	w, caster, _ := setup()
	sink := &combatfakes.Sink{}
	state := &State{Cinders: blazingThreshold}

	Job{}.Snap(ActionKindle, state, w, caster, sink)

	d := sink.Events[0].Event.Damage
	if len(d.Snapshot.SourceGauge) != 1 {
		t.Fatalf("gauge list has %d instances, want 1", len(d.Snapshot.SourceGauge))
	}
	res := combat.ResolveDamage(d, combat.NeverRng())
	if want := potencyKindle * 110 / 100; res.Amount != want {
		t.Fatalf("hot-gauge kindle = %d, want %d", res.Amount, want)
	}
}

func TestGaugeBelowThresholdProjectsNothing(t *testing.T) {
	state := &State{Cinders: blazingThreshold - 1}
	if got := state.GaugeEffects(arena.Handle{}); got != nil {
		t.Fatalf("cold gauge projected %d instances, want none", len(got))
	}
}

func TestQuickenedSlots(t *testing.T) {
	_, caster, _ := setup()
	caster.StatusSet.Apply(caster.HandleVal, quickened, 1)

	var snap status.Snapshot
	snap.Source = caster.StatusSet.Active(nil)
	if got := snap.Haste(); got != 85 {
		t.Fatalf("haste = %d, want 85", got)
	}
	if got := snap.CritChance(0); got != 200 {
		t.Fatalf("crit chance = %d, want 200", got)
	}
}
