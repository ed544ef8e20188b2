package ember

import (
	"github.com/louisbranch/crucible/internal/core/status"
	"github.com/louisbranch/crucible/internal/core/timeline"
)

// Status effects the Ember kit applies.
const (
	// StatusSearing is the damage-over-time effect Flashfire leaves on
	// its target.
	StatusSearing status.ID = 201
	// StatusQuickened is the haste and crit self-buff Surge grants.
	StatusQuickened status.ID = 202
	// StatusBlazingSoul is the pseudo-effect a hot Cinders gauge
	// projects; it is never applied to a status set.
	StatusBlazingSoul status.ID = 203
)

const (
	searingDuration timeline.Time = 30000
	searingPotency  int32         = 40
	searingPeriod   timeline.Time = 3000

	quickenedDuration timeline.Time = 10000
)

var searing = status.Register(&status.Descriptor{
	ID:       StatusSearing,
	Name:     "Searing",
	Duration: searingDuration,
})

var quickened = status.Register(&status.Descriptor{
	ID:       StatusQuickened,
	Name:     "Quickened",
	Duration: quickenedDuration,
	Crit:     status.CritRateAdd(200),
	Haste:    status.HastePct(15),
})

var blazingSoul = status.Register(&status.Descriptor{
	ID:     StatusBlazingSoul,
	Name:   "Blazing Soul",
	Damage: status.DamageDealtPct(110),
})
