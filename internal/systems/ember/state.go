package ember

import (
	"github.com/louisbranch/crucible/internal/core/arena"
	"github.com/louisbranch/crucible/internal/core/status"
	"github.com/louisbranch/crucible/internal/core/timeline"
)

// CindersMax caps the Cinders gauge.
const CindersMax int32 = 100

const (
	cindersGainKindle    int32 = 10
	cindersPerPyreTarget int32 = 5

	// blazingThreshold is the gauge level at which Blazing Soul starts
	// projecting into the pipeline.
	blazingThreshold int32 = 50
)

// State is the Ember's per-actor state: the Cinders gauge.
type State struct {
	Cinders int32
}

// Advance is a no-op; Cinders neither builds nor decays with time.
func (s *State) Advance(elapsed timeline.Time) {}

// GaugeEffects projects Blazing Soul while the gauge sits at or above
// the threshold. The instance is synthesized fresh per snapshot and
// never lives in a status set.
func (s *State) GaugeEffects(self arena.Handle) []status.Instance {
	if s.Cinders < blazingThreshold {
		return nil
	}
	return []status.Instance{{Source: self, Desc: blazingSoul, Stacks: 1}}
}

// gain adds amount to the gauge, clamping at the cap.
func (s *State) gain(amount int32) {
	s.Cinders += amount
	if s.Cinders > CindersMax {
		s.Cinders = CindersMax
	}
}
