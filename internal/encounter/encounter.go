// Package encounter runs simulated fights. An Encounter owns the actor
// arena, the event timeline, and the injected scaling and randomness
// capabilities; it implements the combat.World contract jobs are
// written against and applies their events one at a time, strictly in
// timeline order. Single-threaded by contract: nothing here locks, and
// nothing here may be shared across goroutines mid-run.
package encounter

import (
	"strconv"

	"github.com/louisbranch/crucible/internal/combat"
	"github.com/louisbranch/crucible/internal/content"
	"github.com/louisbranch/crucible/internal/core/arena"
	"github.com/louisbranch/crucible/internal/core/cooldown"
	"github.com/louisbranch/crucible/internal/core/status"
	"github.com/louisbranch/crucible/internal/core/timeline"
	apperrors "github.com/louisbranch/crucible/internal/errors"
	"github.com/louisbranch/crucible/internal/systems"
)

// DefaultEventLimit bounds RunToCompletion when the caller passes no
// limit of its own.
const DefaultEventLimit = 100000

// Config carries the encounter's injected capabilities. Zero values
// select the defaults: the global job registry, the embedded balance
// tables, and a roller seeded with Seed.
type Config struct {
	Seed     int64
	Registry *systems.Registry
	Scaler   combat.Scaler
	Rng      combat.Rng
}

// Encounter is one simulated fight.
type Encounter struct {
	actors   arena.Arena[*actorState]
	queue    timeline.Queue[combat.Event]
	clock    timeline.Time
	registry *systems.Registry
	scaler   combat.Scaler
	rng      combat.Rng
	journal  []Entry
}

// New creates an encounter at time zero.
func New(cfg Config) *Encounter {
	e := &Encounter{
		registry: cfg.Registry,
		scaler:   cfg.Scaler,
		rng:      cfg.Rng,
	}
	if e.registry == nil {
		e.registry = systems.DefaultRegistry
	}
	if e.scaler == nil {
		e.scaler = content.NewSpeedScaler(content.MustLoad())
	}
	if e.rng == nil {
		e.rng = newRoller(cfg.Seed)
	}
	return e
}

// ActorConfig describes a playable combatant. Level defaults to 90, MP
// to 10000, HP to 100000, and facing to +Y.
type ActorConfig struct {
	Name     string
	Job      combat.JobID
	Version  string
	Level    uint8
	Stats    status.Stats
	HP       int64
	MP       int32
	Position Vec2
	Facing   Vec2
}

// EnemyConfig describes a jobless target. HP defaults to 1000000 and
// facing to +Y.
type EnemyConfig struct {
	Name     string
	HP       int64
	Level    uint8
	Position Vec2
	Facing   Vec2
}

// AddActor spawns a playable actor on the friendly side.
func (e *Encounter) AddActor(cfg ActorConfig) (arena.Handle, error) {
	job := e.registry.GetVersion(cfg.Job, cfg.Version)
	if job == nil {
		return arena.Handle{}, apperrors.WithMetadata(apperrors.CodeJobUnknown, "no registered job", map[string]string{
			"Job":     strconv.Itoa(int(cfg.Job)),
			"Version": cfg.Version,
		})
	}

	a := &actorState{
		name:     cfg.Name,
		faction:  combat.FactionFriendly,
		level:    cfg.Level,
		stats:    cfg.Stats,
		job:      job,
		jobState: job.NewState(),
		hp:       cfg.HP,
		mp:       cfg.MP,
		pos:      cfg.Position,
		facing:   cfg.Facing,
		groups:   make(map[combat.CooldownGroup]*cooldown.Group),
	}
	if a.level == 0 {
		a.level = 90
	}
	if a.hp == 0 {
		a.hp = 100000
	}
	if a.mp == 0 {
		a.mp = 10000
	}
	if a.facing.IsZero() {
		a.facing = Vec2{Y: 1}
	}
	a.hpMax = a.hp
	a.mpMax = a.mp

	h := e.actors.Alloc(a)
	a.handle = h
	if a.name == "" {
		a.name = h.String()
	}
	return h, nil
}

// AddEnemy spawns a jobless target on the hostile side.
func (e *Encounter) AddEnemy(cfg EnemyConfig) arena.Handle {
	a := &actorState{
		name:    cfg.Name,
		faction: combat.FactionHostile,
		level:   cfg.Level,
		hp:      cfg.HP,
		pos:     cfg.Position,
		facing:  cfg.Facing,
		groups:  make(map[combat.CooldownGroup]*cooldown.Group),
	}
	if a.hp == 0 {
		a.hp = 1000000
	}
	if a.facing.IsZero() {
		a.facing = Vec2{Y: 1}
	}
	a.hpMax = a.hp

	h := e.actors.Alloc(a)
	a.handle = h
	if a.name == "" {
		a.name = h.String()
	}
	return h
}

// SetTarget points an actor at a target. The zero handle clears it.
func (e *Encounter) SetTarget(h, target arena.Handle) error {
	a, ok := e.actor(h)
	if !ok {
		return actorNotFound(h)
	}
	a.target = target
	return nil
}

// Engage pulls two actors into combat with each other: mutual targets,
// both flagged in combat.
func (e *Encounter) Engage(h, other arena.Handle) error {
	a, ok := e.actor(h)
	if !ok {
		return actorNotFound(h)
	}
	b, ok := e.actor(other)
	if !ok {
		return actorNotFound(other)
	}
	a.target = other
	b.target = h
	a.inCombat = true
	b.inCombat = true
	return nil
}

// SetPosition moves an actor. Scripted fights reposition actors between
// casts to line up positional bonuses.
func (e *Encounter) SetPosition(h arena.Handle, pos Vec2) error {
	a, ok := e.actor(h)
	if !ok {
		return actorNotFound(h)
	}
	a.pos = pos
	return nil
}

// SetFacing turns an actor. A zero vector is rejected since facing
// feeds the positional cone math.
func (e *Encounter) SetFacing(h arena.Handle, facing Vec2) error {
	a, ok := e.actor(h)
	if !ok {
		return actorNotFound(h)
	}
	if facing.IsZero() {
		return apperrors.New(apperrors.CodeCastTargetInvalid, "facing cannot be zero")
	}
	a.facing = facing
	return nil
}

// Remove despawns an actor. Events already in flight against it are
// dropped when they pop.
func (e *Encounter) Remove(h arena.Handle) bool {
	return e.actors.Free(h)
}

// Time returns the encounter clock.
func (e *Encounter) Time() timeline.Time {
	return e.clock
}

// HP returns an actor's current hit points.
func (e *Encounter) HP(h arena.Handle) (int64, bool) {
	a, ok := e.actor(h)
	if !ok {
		return 0, false
	}
	return a.hp, true
}

// Cast asks an actor to use an action at the current clock. A rejected
// cast returns the job's single typed error and changes nothing; an
// accepted cast occupies the actor, spends its costs, and schedules the
// cast completion.
func (e *Encounter) Cast(h arena.Handle, action combat.ActionID) error {
	a, ok := e.actor(h)
	if !ok {
		return actorNotFound(h)
	}
	if a.job == nil {
		return apperrors.New(apperrors.CodeJobUnknown, "actor has no job")
	}
	if e.clock < a.lockedUntil {
		return e.reject(a, action, busyError(a.lockedUntil-e.clock))
	}

	var check checkSink
	init, ok := a.job.Check(action, a.jobState, e, a, &check)
	if !ok {
		err := check.err
		if err == nil {
			err = apperrors.New(apperrors.CodeUnknown, "check rejected without a reason")
		}
		return e.reject(a, action, err)
	}
	if init.GCD > 0 && e.clock < a.gcdReady {
		return e.reject(a, action, busyError(a.gcdReady-e.clock))
	}

	if init.GCD > 0 {
		a.gcdReady = e.clock + init.GCD
	}
	a.lockedUntil = e.clock + init.CastTime + init.Lock
	a.mp -= init.MPCost
	if init.Cooldown.Duration > 0 {
		a.Cooldown(init.Cooldown.Group).Apply(init.Cooldown.Duration, init.Cooldown.Charges)
	}
	e.queue.Push(e.clock+init.CastTime, combat.NewCast(h, action))
	e.record(Entry{Kind: EntryCast, Source: h, Target: a.target, Action: action})
	return nil
}

// RunUntil applies every event scheduled at or before t, then brings
// the clock to t.
func (e *Encounter) RunUntil(t timeline.Time) {
	for {
		at, ok := e.queue.Peek()
		if !ok || at > t {
			break
		}
		_, ev, _ := e.queue.Pop()
		e.advanceTo(at)
		e.apply(ev)
	}
	e.advanceTo(t)
}

// RunToCompletion drains the timeline. It stops with an error once
// limit events have applied and more remain; a non-positive limit
// means DefaultEventLimit. It returns the number of events applied.
func (e *Encounter) RunToCompletion(limit int) (int, error) {
	if limit <= 0 {
		limit = DefaultEventLimit
	}
	applied := 0
	for {
		at, ok := e.queue.Peek()
		if !ok {
			return applied, nil
		}
		if applied >= limit {
			return applied, apperrors.WithMetadata(apperrors.CodeEncounterEventLimit, "event limit reached before the timeline drained", map[string]string{
				"Limit": strconv.Itoa(limit),
			})
		}
		_, ev, _ := e.queue.Pop()
		e.advanceTo(at)
		e.apply(ev)
		applied++
	}
}

// advanceTo moves the clock forward, flowing the elapsed time into
// every actor. Statuses expiring inside the step are journaled at its
// end; an event at the exact expiry instant sees the status gone.
func (e *Encounter) advanceTo(t timeline.Time) {
	if t <= e.clock {
		return
	}
	elapsed := t - e.clock
	e.clock = t
	e.actors.All(func(h arena.Handle, ap **actorState) bool {
		a := *ap
		a.advance(elapsed, func(in status.Instance) {
			e.record(Entry{Kind: EntryStatusExpire, Source: in.Source, Target: h, Status: in.Desc.ID})
		})
		return true
	})
}

func (e *Encounter) actor(h arena.Handle) (*actorState, bool) {
	ap, ok := e.actors.Get(h)
	if !ok {
		return nil, false
	}
	return *ap, true
}

func (e *Encounter) reject(a *actorState, action combat.ActionID, err *apperrors.Error) error {
	e.record(Entry{Kind: EntryReject, Source: a.handle, Action: action, Code: err.Code})
	return err
}

func actorNotFound(h arena.Handle) *apperrors.Error {
	return apperrors.WithMetadata(apperrors.CodeActorNotFound, "no actor for handle", map[string]string{
		"Handle": h.String(),
	})
}

func busyError(readyIn timeline.Time) *apperrors.Error {
	return apperrors.WithMetadata(apperrors.CodeCastBusy, "actor is busy", map[string]string{
		"ReadyIn": strconv.FormatUint(uint64(readyIn), 10),
	})
}

// checkSink captures the single rejection of a failed check.
type checkSink struct {
	err *apperrors.Error
}

func (s *checkSink) Error(err *apperrors.Error) {
	if s.err == nil {
		s.err = err
	}
}

func (s *checkSink) Event(combat.Event, timeline.Time) {}

// runSink feeds snap and handler output back into the timeline,
// anchored at the current clock.
type runSink struct {
	e *Encounter
}

func (s runSink) Error(err *apperrors.Error) {
	s.e.record(Entry{Kind: EntryReject, Code: err.Code})
}

func (s runSink) Event(ev combat.Event, delay timeline.Time) {
	s.e.queue.Push(s.e.clock+delay, ev)
}
