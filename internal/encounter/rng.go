package encounter

import (
	"math/rand"

	"github.com/louisbranch/crucible/internal/combat"
)

// roller implements combat.Rng over a seeded source. Chance clamps
// make zero-or-less impossible and full-or-more certain regardless of
// the draw.
type roller struct {
	r *rand.Rand
}

func newRoller(seed int64) *roller {
	return &roller{r: rand.New(rand.NewSource(seed))}
}

func (s *roller) Roll(permille int32) bool {
	if permille <= 0 {
		return false
	}
	if permille >= 1000 {
		return true
	}
	return s.r.Int31n(1000) < permille
}

var _ combat.Rng = (*roller)(nil)
