// Package ember implements the Ember job: a caster kit built around
// cast-time nukes, the Searing damage-over-time effect, and the Cinders
// gauge. It exercises the caster half of the contract: cast and recast
// scaling, mana costs, periodic ticks, a multi-slot self-buff, a
// two-charge cooldown, cone targeting, and a gauge that projects a
// pseudo-effect into the damage pipeline.
package ember

import (
	"github.com/louisbranch/crucible/internal/combat"
	"github.com/louisbranch/crucible/internal/core/timeline"
	"github.com/louisbranch/crucible/internal/systems"
)

const (
	// ID identifies the Ember job for the systems registry.
	ID combat.JobID = 2
	// Version tracks the Ember balance revision.
	Version = "1.0.0"
	// Name is the human-readable job name.
	Name = "Ember"
)

// Action IDs owned by the Ember kit.
const (
	ActionKindle    combat.ActionID = 201
	ActionFlashfire combat.ActionID = 202
	ActionSurge     combat.ActionID = 203
	ActionPyre      combat.ActionID = 204
	ActionCombust   combat.ActionID = 205
)

// CooldownSurge is the two-charge cooldown group Surge occupies.
const CooldownSurge combat.CooldownGroup = 1

const (
	gcdBase    timeline.Time = 2500
	kindleCast timeline.Time = 2500
	pyreCast   timeline.Time = 2000
	spellLock  timeline.Time = 600
	offGCDLock timeline.Time = 700

	// spellDelay is how long a resolved spell takes to land. AoE hits
	// stagger further targets by cascadeStep.
	spellDelay  timeline.Time = 600
	cascadeStep timeline.Time = 100

	surgeCooldown timeline.Time = 30000
	surgeCharges  uint8         = 2

	pyreRadius int32 = 8
	pyreAngle  int32 = 90
)

const (
	potencyKindle    int32 = 250
	potencyFlashfire int32 = 120
	potencyPyre      int32 = 130
	potencyCombust   int32 = 300

	mpKindle    int32 = 400
	mpFlashfire int32 = 300
	mpPyre      int32 = 600
	mpCombust   int32 = 200
)

func init() {
	systems.Register(Job{})
}

// Job is the Ember job behavior. It is stateless; everything per-actor
// lives in State.
type Job struct{}

// ID returns the Ember job identifier.
func (Job) ID() combat.JobID { return ID }

// Version returns the Ember ruleset version.
func (Job) Version() string { return Version }

// Name returns the job name.
func (Job) Name() string { return Name }

// NewState creates fresh Ember state with an empty gauge.
func (Job) NewState() systems.State { return &State{} }

// Actions returns the Ember action catalog.
func (Job) Actions() []combat.ActionID {
	return []combat.ActionID{
		ActionKindle,
		ActionFlashfire,
		ActionSurge,
		ActionPyre,
		ActionCombust,
	}
}

// ActionName returns the name of one Ember action.
func (Job) ActionName(action combat.ActionID) string {
	switch action {
	case ActionKindle:
		return "Kindle"
	case ActionFlashfire:
		return "Flashfire"
	case ActionSurge:
		return "Surge"
	case ActionPyre:
		return "Pyre"
	case ActionCombust:
		return "Combust"
	default:
		return ""
	}
}
