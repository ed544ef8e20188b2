package combat

import (
	"github.com/louisbranch/crucible/internal/core/timeline"
	"github.com/louisbranch/crucible/internal/errors"
)

// Sink receives everything job logic produces. A rejected cast reports
// exactly one typed error and nothing else; an accepted cast emits
// events with delays relative to the moment of emission. Jobs never
// touch the timeline directly.
type Sink interface {
	// Error reports the single typed rejection for a failed check.
	Error(err *errors.Error)

	// Event schedules ev at the current simulation time plus delay.
	Event(ev Event, delay timeline.Time)
}
