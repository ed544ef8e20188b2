package cooldown

import "github.com/louisbranch/crucible/internal/core/timeline"

// Window is how long a combo stays continuable after its opener lands.
const Window timeline.Time = 30000

// Combo tracks the continuation state of one combo chain. At most one
// tag is armed at a time; arming a new tag replaces the old one. Jobs
// with independent chains own one Combo per chain.
//
// The zero value is an idle combo.
type Combo[Tag comparable] struct {
	tag       Tag
	remaining timeline.Time
}

// Set arms tag for the full continuation window, replacing whatever was
// armed before.
func (c *Combo[Tag]) Set(tag Tag) {
	c.tag = tag
	c.remaining = Window
}

// Check reports whether tag is armed and its window still open. Check
// never mutates; consuming the combo is the caller's explicit Reset.
func (c *Combo[Tag]) Check(tag Tag) bool {
	return c.remaining > 0 && c.tag == tag
}

// Advance elapses time on the window. Advancing by the full remainder
// closes it: a combo armed for 30000 survives 29999 but not 30000.
func (c *Combo[Tag]) Advance(elapsed timeline.Time) {
	if c.remaining <= elapsed {
		c.Reset()
		return
	}
	c.remaining -= elapsed
}

// Reset disarms the combo.
func (c *Combo[Tag]) Reset() {
	var zero Tag
	c.tag = zero
	c.remaining = 0
}
