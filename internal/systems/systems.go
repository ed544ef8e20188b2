// Package systems defines the contract every job implements and the
// registry that maps job identity to behavior. Job packages register
// themselves via init() and stay otherwise decoupled from drivers.
package systems

import (
	"github.com/louisbranch/crucible/internal/combat"
	"github.com/louisbranch/crucible/internal/core/arena"
	"github.com/louisbranch/crucible/internal/core/status"
	"github.com/louisbranch/crucible/internal/core/timeline"
)

// Job defines the interface that all jobs must implement. Drivers
// dispatch to the correct job based on an actor's job ID.
//
// Casting is a two-phase protocol. Check computes the cast's timing
// and validates every precondition without touching state: a rejection
// reports exactly one typed error through the sink and returns false.
// Snap runs when the cast completes; it mutates job state and emits
// the action's effects as events with relative delays. Between the two
// phases nothing about the action is remembered except the action ID
// riding the cast event.
type Job interface {
	// ID returns the job identifier.
	ID() combat.JobID

	// Version returns the job's ruleset version (balance revision).
	Version() string

	// Name returns the human-readable job name.
	Name() string

	// NewState creates fresh per-actor state for this job.
	NewState() State

	// Actions returns the job's action IDs in catalog order.
	Actions() []combat.ActionID

	// ActionName returns the human-readable name of one action, empty
	// for actions the job does not know.
	ActionName(action combat.ActionID) string

	// Check validates action and computes how the cast would occupy
	// the actor. On failure it reports exactly one typed error to the
	// sink and returns false, leaving every piece of state untouched.
	Check(action combat.ActionID, st State, w combat.World, actor combat.Actor, sink combat.Sink) (combat.CastInit, bool)

	// Snap commits the action: mutates job state and emits its
	// effects. It runs at cast completion, instantly for uncasted
	// actions.
	Snap(action combat.ActionID, st State, w combat.World, actor combat.Actor, sink combat.Sink)

	// HandleEvent resolves a deferred job event emitted by Snap or a
	// previous HandleEvent. Payloads are job-defined and dispatched by
	// type switch.
	HandleEvent(payload any, st State, w combat.World, actor combat.Actor, sink combat.Sink)
}

// State is the per-actor state a job manages: gauges, combo chains,
// anything the kit tracks between actions. Drivers advance it as
// simulated time passes.
type State interface {
	Advance(elapsed timeline.Time)
}

// GaugeEffects is implemented by job states whose resource gauges
// project pseudo-status effects into the damage pipeline. The
// instances returned join the snapshot's third fold list.
type GaugeEffects interface {
	GaugeEffects(self arena.Handle) []status.Instance
}

// Snapshot assembles the pipeline context for a hit from source
// against target: the target's active statuses, the source's active
// statuses, and the source's gauge effects when its state projects
// any. Jobs call it while snapping; drivers call it again for
// periodic ticks.
func Snapshot(w combat.World, source combat.Actor, st State, target arena.Handle) status.Snapshot {
	var snap status.Snapshot
	if t, ok := w.Actor(target); ok {
		snap.Target = t.Statuses().Active(nil)
	}
	snap.Source = source.Statuses().Active(nil)
	if g, ok := st.(GaugeEffects); ok {
		snap.SourceGauge = g.GaugeEffects(source.Handle())
	}
	return snap
}
