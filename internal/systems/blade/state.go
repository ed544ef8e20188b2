package blade

import (
	"github.com/louisbranch/crucible/internal/core/cooldown"
	"github.com/louisbranch/crucible/internal/core/timeline"
)

// MomentumMax caps the Momentum gauge.
const MomentumMax int32 = 100

const (
	momentumGain       int32 = 10
	momentumGainCleave int32 = 20
	executeCost        int32 = 50
)

// comboTag names a step of the weaponskill chain.
type comboTag uint8

const (
	comboSlash comboTag = iota + 1
	comboRend
)

// State is the Blade's per-actor state: the Momentum gauge and the
// weaponskill chain position.
type State struct {
	Momentum int32

	chain cooldown.Combo[comboTag]
}

// Advance elapses time on the chain window. Momentum never decays.
func (s *State) Advance(elapsed timeline.Time) {
	s.chain.Advance(elapsed)
}

// gain adds amount to the gauge, clamping at the cap.
func (s *State) gain(amount int32) {
	s.Momentum += amount
	if s.Momentum > MomentumMax {
		s.Momentum = MomentumMax
	}
}
