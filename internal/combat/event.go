package combat

import (
	"github.com/louisbranch/crucible/internal/core/arena"
	"github.com/louisbranch/crucible/internal/core/status"
	"github.com/louisbranch/crucible/internal/core/timeline"
)

// EventKind tags the active payload of an Event.
type EventKind uint8

const (
	EventDamage EventKind = iota + 1
	EventStatus
	EventCastSnapshot
	EventJob
	EventTick
)

// String returns the kind's name for journals and logs.
func (k EventKind) String() string {
	switch k {
	case EventDamage:
		return "damage"
	case EventStatus:
		return "status"
	case EventCastSnapshot:
		return "cast-snapshot"
	case EventJob:
		return "job"
	case EventTick:
		return "tick"
	default:
		return "unknown"
	}
}

// Event is the tagged union flowing through the timeline. Kind selects
// which payload field is set; the others stay zero. Events are plain
// values so the queue copies them without allocation.
type Event struct {
	Kind   EventKind
	Source arena.Handle
	Target arena.Handle

	Damage DamageEvent
	Status StatusEvent
	Cast   CastEvent
	Job    JobEvent
	Tick   TickEvent
}

// DamageEvent applies damage to the target. The pipeline snapshot and
// the source's stat sheet are fixed when the action snaps; statuses
// gained or lost while the hit is in flight do not change it.
type DamageEvent struct {
	Action    ActionID
	Potency   int32
	Stats     status.Stats
	Snapshot  status.Snapshot
	CanCrit   bool
	CanDirect bool
}

// StatusOp selects what a StatusEvent does to the target's status set.
type StatusOp uint8

const (
	StatusApply StatusOp = iota + 1
	StatusRemove
	StatusAddStacks
)

// StatusEvent applies, removes, or restacks a status instance on the
// target. The instance is keyed by (event source, ID).
type StatusEvent struct {
	Op     StatusOp
	ID     status.ID
	Stacks uint8
	Delta  int16
}

// CastEvent marks the completion of a validated cast: when it pops, the
// job's snap phase runs and the action's effects are committed.
type CastEvent struct {
	Action ActionID
}

// JobEvent carries a job-defined payload back to the job that emitted
// it. Drivers route it by the source actor's job; the job type-switches
// on the payload.
type JobEvent struct {
	Payload any
}

// TickEvent is one beat of a periodic effect. Drivers resolve it
// against the target's current statuses: if the owning instance is
// gone the tick is dropped, otherwise it deals Potency and re-arms
// itself after Period.
type TickEvent struct {
	ID      status.ID
	Potency int32
	Period  timeline.Time
}

// NewDamage builds a damage event from source to target.
func NewDamage(source, target arena.Handle, d DamageEvent) Event {
	return Event{Kind: EventDamage, Source: source, Target: target, Damage: d}
}

// NewStatus builds a status event from source to target.
func NewStatus(source, target arena.Handle, s StatusEvent) Event {
	return Event{Kind: EventStatus, Source: source, Target: target, Status: s}
}

// NewCast builds a cast completion event for the acting actor.
func NewCast(source arena.Handle, action ActionID) Event {
	return Event{Kind: EventCastSnapshot, Source: source, Target: source, Cast: CastEvent{Action: action}}
}

// NewJob builds a job event addressed back to the source actor.
func NewJob(source arena.Handle, payload any) Event {
	return Event{Kind: EventJob, Source: source, Target: source, Job: JobEvent{Payload: payload}}
}

// NewTick builds a periodic tick from source against target.
func NewTick(source, target arena.Handle, tick TickEvent) Event {
	return Event{Kind: EventTick, Source: source, Target: target, Tick: tick}
}
