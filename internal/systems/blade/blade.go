// Package blade implements the Blade job: a melee kit built around a
// three-step weaponskill chain and the Momentum gauge the chain feeds.
// It exists to exercise every part of the casting contract a melee kit
// touches: combo windows, multi-hit cascades, positionals, an off-GCD
// buff on a cooldown group, and a gauge spender.
package blade

import (
	"github.com/louisbranch/crucible/internal/combat"
	"github.com/louisbranch/crucible/internal/core/timeline"
	"github.com/louisbranch/crucible/internal/systems"
)

const (
	// ID identifies the Blade job for the systems registry.
	ID combat.JobID = 1
	// Version tracks the Blade balance revision.
	Version = "1.0.0"
	// Name is the human-readable job name.
	Name = "Blade"
)

// Action IDs owned by the Blade kit.
const (
	ActionSlash      combat.ActionID = 101
	ActionRend       combat.ActionID = 102
	ActionCleave     combat.ActionID = 103
	ActionTwinStrike combat.ActionID = 104
	ActionWarCry     combat.ActionID = 105
	ActionExecute    combat.ActionID = 106
)

// CooldownWarCry is the cooldown group WarCry occupies.
const CooldownWarCry combat.CooldownGroup = 1

const (
	gcdBase    timeline.Time = 2500
	meleeLock  timeline.Time = 600
	offGCDLock timeline.Time = 700

	// hitDelay is how long a landed weaponskill takes to connect.
	// Multi-hit actions stagger further hits by cascadeStep.
	hitDelay    timeline.Time = 400
	cascadeStep timeline.Time = 100

	warCryCooldown timeline.Time = 60000
)

const (
	potencySlash        int32 = 200
	potencyRend         int32 = 140
	potencyRendCombo    int32 = 300
	potencyCleave       int32 = 420
	potencyTwinStrike   int32 = 150
	potencyExecute      int32 = 280
	potencyExecuteFlank int32 = 340
)

func init() {
	systems.Register(Job{})
}

// Job is the Blade job behavior. It is stateless; everything per-actor
// lives in State.
type Job struct{}

// ID returns the Blade job identifier.
func (Job) ID() combat.JobID { return ID }

// Version returns the Blade ruleset version.
func (Job) Version() string { return Version }

// Name returns the job name.
func (Job) Name() string { return Name }

// NewState creates fresh Blade state: an empty gauge and an idle chain.
func (Job) NewState() systems.State { return &State{} }

// Actions returns the Blade action catalog.
func (Job) Actions() []combat.ActionID {
	return []combat.ActionID{
		ActionSlash,
		ActionRend,
		ActionCleave,
		ActionTwinStrike,
		ActionWarCry,
		ActionExecute,
	}
}

// ActionName returns the name of one Blade action.
func (Job) ActionName(action combat.ActionID) string {
	switch action {
	case ActionSlash:
		return "Slash"
	case ActionRend:
		return "Rend"
	case ActionCleave:
		return "Cleave"
	case ActionTwinStrike:
		return "Twin Strike"
	case ActionWarCry:
		return "War Cry"
	case ActionExecute:
		return "Execute"
	default:
		return ""
	}
}
