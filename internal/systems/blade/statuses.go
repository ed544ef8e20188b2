package blade

import "github.com/louisbranch/crucible/internal/core/status"

// StatusBattleFury is the outgoing damage buff War Cry grants.
const StatusBattleFury status.ID = 101

var battleFury = status.Register(&status.Descriptor{
	ID:       StatusBattleFury,
	Name:     "Battle Fury",
	Duration: 20000,
	Damage:   status.DamageDealtPct(115),
})
