package encounter

import (
	"errors"
	"testing"

	"github.com/louisbranch/crucible/internal/combat"
	"github.com/louisbranch/crucible/internal/core/arena"
	"github.com/louisbranch/crucible/internal/core/status"
	"github.com/louisbranch/crucible/internal/core/timeline"
	apperrors "github.com/louisbranch/crucible/internal/errors"
	"github.com/louisbranch/crucible/internal/systems/blade"
	"github.com/louisbranch/crucible/internal/systems/ember"
)

// eternal is a permanent test status backing the event-limit test: a
// tick against it re-arms forever.
var eternal = status.Register(&status.Descriptor{ID: 901, Name: "Eternal", Permanent: true})

func newDuel(t *testing.T, job combat.JobID) (*Encounter, arena.Handle, arena.Handle) {
	t.Helper()
	enc := New(Config{Rng: combat.NeverRng(), Scaler: combat.IdentityScaler()})
	player, err := enc.AddActor(ActorConfig{Name: "player", Job: job})
	if err != nil {
		t.Fatalf("AddActor returned error: %v", err)
	}
	enemy := enc.AddEnemy(EnemyConfig{Name: "dummy"})
	if err := enc.Engage(player, enemy); err != nil {
		t.Fatalf("Engage returned error: %v", err)
	}
	return enc, player, enemy
}

func rowsOf(enc *Encounter, kind EntryKind) []Entry {
	var out []Entry
	for _, row := range enc.Journal() {
		if row.Kind == kind {
			out = append(out, row)
		}
	}
	return out
}

func wantCode(t *testing.T, err error, code apperrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("error = nil, want %s", code)
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("error = %v, want *errors.Error", err)
	}
	if appErr.Code != code {
		t.Fatalf("code = %s, want %s", appErr.Code, code)
	}
}

func TestSlashBaseline(t *testing.T) {
	enc, player, enemy := newDuel(t, blade.ID)

	if err := enc.Cast(player, blade.ActionSlash); err != nil {
		t.Fatalf("Cast returned error: %v", err)
	}
	enc.RunUntil(1000)

	hits := rowsOf(enc, EntryDamage)
	if len(hits) != 1 {
		t.Fatalf("damage rows = %d, want 1", len(hits))
	}
	if hits[0].Time != 400 || hits[0].Amount != 200 {
		t.Fatalf("hit = %d at %d, want 200 at 400", hits[0].Amount, hits[0].Time)
	}
	hp, _ := enc.HP(enemy)
	if hp != 1000000-200 {
		t.Fatalf("enemy hp = %d, want %d", hp, 1000000-200)
	}
}

func TestTwinStrikeTimeline(t *testing.T) {
	enc, player, _ := newDuel(t, blade.ID)

	enc.RunUntil(500)
	if err := enc.Cast(player, blade.ActionTwinStrike); err != nil {
		t.Fatalf("Cast returned error: %v", err)
	}
	enc.RunUntil(2000)

	hits := rowsOf(enc, EntryDamage)
	if len(hits) != 2 {
		t.Fatalf("damage rows = %d, want 2", len(hits))
	}
	if hits[0].Time != 900 || hits[1].Time != 1000 {
		t.Fatalf("hit times = %d, %d, want 900, 1000", hits[0].Time, hits[1].Time)
	}
	for i, hit := range hits {
		if hit.Amount != 150 {
			t.Fatalf("hit %d = %d, want unmodified 150", i, hit.Amount)
		}
	}
}

func TestWarCryBuffsSlash(t *testing.T) {
	enc, player, _ := newDuel(t, blade.ID)

	if err := enc.Cast(player, blade.ActionWarCry); err != nil {
		t.Fatalf("Cast war cry: %v", err)
	}
	enc.RunUntil(700)
	if err := enc.Cast(player, blade.ActionSlash); err != nil {
		t.Fatalf("Cast slash: %v", err)
	}
	enc.RunUntil(1200)

	hits := rowsOf(enc, EntryDamage)
	if len(hits) != 1 {
		t.Fatalf("damage rows = %d, want 1", len(hits))
	}
	if hits[0].Time != 1100 || hits[0].Amount != 230 {
		t.Fatalf("buffed hit = %d at %d, want 230 at 1100", hits[0].Amount, hits[0].Time)
	}
}

func TestRejectionChangesNothing(t *testing.T) {
	enc, player, _ := newDuel(t, blade.ID)

	err := enc.Cast(player, blade.ActionCleave)
	wantCode(t, err, apperrors.CodeCastComboRequired)

	if len(enc.Journal()) != 1 || enc.Journal()[0].Kind != EntryReject {
		t.Fatalf("journal = %+v, want a single reject row", enc.Journal())
	}
	applied, runErr := enc.RunToCompletion(0)
	if runErr != nil || applied != 0 {
		t.Fatalf("RunToCompletion = %d, %v, want 0 events", applied, runErr)
	}
	a, _ := enc.Actor(player)
	if a.MP() != 10000 {
		t.Fatalf("mp = %d, want untouched 10000", a.MP())
	}
}

func TestBusyGates(t *testing.T) {
	enc, player, _ := newDuel(t, blade.ID)

	if err := enc.Cast(player, blade.ActionSlash); err != nil {
		t.Fatalf("Cast slash: %v", err)
	}

	// Inside the animation lock.
	err := enc.Cast(player, blade.ActionRend)
	wantCode(t, err, apperrors.CodeCastBusy)

	// Lock passed, global recast still running.
	enc.RunUntil(600)
	err = enc.Cast(player, blade.ActionRend)
	wantCode(t, err, apperrors.CodeCastBusy)
	var appErr *apperrors.Error
	errors.As(err, &appErr)
	if appErr.Metadata["ReadyIn"] != "1900" {
		t.Fatalf("ReadyIn = %s, want 1900", appErr.Metadata["ReadyIn"])
	}

	enc.RunUntil(2500)
	if err := enc.Cast(player, blade.ActionRend); err != nil {
		t.Fatalf("Cast rend after recast: %v", err)
	}
	enc.RunUntil(3000)

	hits := rowsOf(enc, EntryDamage)
	if len(hits) != 2 {
		t.Fatalf("damage rows = %d, want 2", len(hits))
	}
	if hits[1].Amount != 300 {
		t.Fatalf("rend = %d, want combo 300", hits[1].Amount)
	}
}

func TestDoTLifecycle(t *testing.T) {
	enc, player, _ := newDuel(t, ember.ID)

	if err := enc.Cast(player, ember.ActionFlashfire); err != nil {
		t.Fatalf("Cast flashfire: %v", err)
	}
	if a, _ := enc.Actor(player); a.MP() != 9700 {
		t.Fatalf("mp = %d, want 9700 after the cast is paid", a.MP())
	}
	if _, err := enc.RunToCompletion(0); err != nil {
		t.Fatalf("RunToCompletion returned error: %v", err)
	}

	hits := rowsOf(enc, EntryDamage)
	if len(hits) != 1 || hits[0].Amount != 120 {
		t.Fatalf("initial hits = %+v, want one 120", hits)
	}

	ticks := rowsOf(enc, EntryTick)
	if len(ticks) != 10 {
		t.Fatalf("tick rows = %d, want 10", len(ticks))
	}
	for i, tick := range ticks {
		if tick.Amount != 40 {
			t.Fatalf("tick %d = %d, want 40", i, tick.Amount)
		}
	}

	if expired := rowsOf(enc, EntryStatusExpire); len(expired) != 1 {
		t.Fatalf("expire rows = %d, want 1", len(expired))
	}
}

func TestStaleTickDropped(t *testing.T) {
	enc, player, enemy := newDuel(t, ember.ID)

	if err := enc.Cast(player, ember.ActionFlashfire); err != nil {
		t.Fatalf("Cast flashfire: %v", err)
	}
	enc.RunUntil(3000)
	if got := len(rowsOf(enc, EntryTick)); got != 1 {
		t.Fatalf("tick rows = %d, want 1 before removal", got)
	}

	target, _ := enc.actor(enemy)
	target.statuses.Remove(player, ember.StatusSearing)

	if _, err := enc.RunToCompletion(0); err != nil {
		t.Fatalf("RunToCompletion returned error: %v", err)
	}
	if got := len(rowsOf(enc, EntryTick)); got != 1 {
		t.Fatalf("tick rows = %d, want the stream to stop at 1", got)
	}
}

func TestComboWindowBoundary(t *testing.T) {
	tests := []struct {
		name   string
		castAt timeline.Time
		want   int32
	}{
		{"one inside", 29999, 300},
		{"at the window", 30000, 140},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, player, _ := newDuel(t, blade.ID)

			if err := enc.Cast(player, blade.ActionSlash); err != nil {
				t.Fatalf("Cast slash: %v", err)
			}
			enc.RunUntil(tt.castAt)
			if err := enc.Cast(player, blade.ActionRend); err != nil {
				t.Fatalf("Cast rend: %v", err)
			}
			enc.RunUntil(tt.castAt + 500)

			hits := rowsOf(enc, EntryDamage)
			last := hits[len(hits)-1]
			if last.Amount != tt.want {
				t.Fatalf("rend = %d, want %d", last.Amount, tt.want)
			}
		})
	}
}

func TestSurgeHasteScalesCast(t *testing.T) {
	enc := New(Config{Rng: combat.NeverRng()})
	player, err := enc.AddActor(ActorConfig{Name: "caster", Job: ember.ID})
	if err != nil {
		t.Fatalf("AddActor returned error: %v", err)
	}
	enemy := enc.AddEnemy(EnemyConfig{})
	if err := enc.Engage(player, enemy); err != nil {
		t.Fatalf("Engage returned error: %v", err)
	}

	if err := enc.Cast(player, ember.ActionSurge); err != nil {
		t.Fatalf("Cast surge: %v", err)
	}
	enc.RunUntil(700)
	if err := enc.Cast(player, ember.ActionKindle); err != nil {
		t.Fatalf("Cast kindle: %v", err)
	}

	a, _ := enc.actor(player)
	if a.gcdReady != 700+2125 {
		t.Fatalf("gcd ready at %d, want %d", a.gcdReady, 700+2125)
	}

	enc.RunUntil(5000)
	hits := rowsOf(enc, EntryDamage)
	if len(hits) != 1 {
		t.Fatalf("damage rows = %d, want 1", len(hits))
	}
	if hits[0].Time != 700+2125+600 {
		t.Fatalf("hit at %d, want %d", hits[0].Time, 700+2125+600)
	}
	if hits[0].Amount != 250 {
		t.Fatalf("hit = %d, want 250", hits[0].Amount)
	}
}

func TestCombustGates(t *testing.T) {
	t.Run("dot landing opens it", func(t *testing.T) {
		enc, player, enemy := newDuel(t, ember.ID)
		enc.SetTarget(player, enemy)

		err := enc.Cast(player, ember.ActionCombust)
		wantCode(t, err, apperrors.CodeCastStatusRequired)

		if err := enc.Cast(player, ember.ActionFlashfire); err != nil {
			t.Fatalf("Cast flashfire: %v", err)
		}
		enc.RunUntil(2500)
		if err := enc.Cast(player, ember.ActionCombust); err != nil {
			t.Fatalf("Cast combust with searing up: %v", err)
		}
	})

	t.Run("combat flag", func(t *testing.T) {
		enc := New(Config{Rng: combat.NeverRng(), Scaler: combat.IdentityScaler()})
		player, err := enc.AddActor(ActorConfig{Job: ember.ID})
		if err != nil {
			t.Fatalf("AddActor returned error: %v", err)
		}
		enemy := enc.AddEnemy(EnemyConfig{})
		enc.SetTarget(player, enemy)

		desc, _ := status.Lookup(ember.StatusSearing)
		target, _ := enc.actor(enemy)
		target.statuses.Apply(player, desc, 1)

		castErr := enc.Cast(player, ember.ActionCombust)
		wantCode(t, castErr, apperrors.CodeCastNotInCombat)
	})
}

func TestEventLimit(t *testing.T) {
	enc, player, enemy := newDuel(t, blade.ID)

	target, _ := enc.actor(enemy)
	target.statuses.Apply(player, eternal, 1)
	enc.queue.Push(0, combat.NewTick(player, enemy, combat.TickEvent{ID: eternal.ID, Potency: 1, Period: 100}))

	applied, err := enc.RunToCompletion(5)
	wantCode(t, err, apperrors.CodeEncounterEventLimit)
	if applied != 5 {
		t.Fatalf("applied = %d, want 5", applied)
	}
}

func TestReportAggregates(t *testing.T) {
	enc, player, _ := newDuel(t, blade.ID)

	if err := enc.Cast(player, blade.ActionSlash); err != nil {
		t.Fatalf("Cast slash: %v", err)
	}
	enc.RunUntil(2500)
	if err := enc.Cast(player, blade.ActionTwinStrike); err != nil {
		t.Fatalf("Cast twin strike: %v", err)
	}
	enc.RunUntil(5000)

	rep := enc.Report()
	if rep.TotalDamage != 500 {
		t.Fatalf("total = %d, want 500", rep.TotalDamage)
	}
	if rep.DPS != 100 {
		t.Fatalf("dps = %v, want 100", rep.DPS)
	}
	if len(rep.Actors) != 1 {
		t.Fatalf("actor reports = %d, want 1", len(rep.Actors))
	}
	ar := rep.Actors[0]
	if ar.Name != "player" || ar.Job != "Blade" {
		t.Fatalf("actor = %s/%s, want player/Blade", ar.Name, ar.Job)
	}
	if len(ar.Actions) != 2 {
		t.Fatalf("action rows = %d, want 2", len(ar.Actions))
	}
	if ar.Actions[0].Name != "Slash" || ar.Actions[0].TotalDamage != 200 {
		t.Fatalf("first action = %+v, want Slash 200", ar.Actions[0])
	}
	if ar.Actions[1].Name != "Twin Strike" || ar.Actions[1].Hits != 2 || ar.Actions[1].MaxHit != 150 {
		t.Fatalf("second action = %+v, want Twin Strike 2x150", ar.Actions[1])
	}
}

func TestCastErrors(t *testing.T) {
	enc, player, enemy := newDuel(t, blade.ID)

	wantCode(t, enc.Cast(enemy, blade.ActionSlash), apperrors.CodeJobUnknown)

	enc.Remove(player)
	wantCode(t, enc.Cast(player, blade.ActionSlash), apperrors.CodeActorNotFound)

	_, err := enc.AddActor(ActorConfig{Job: 99})
	wantCode(t, err, apperrors.CodeJobUnknown)
}
