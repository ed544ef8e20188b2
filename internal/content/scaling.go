package content

import (
	"github.com/louisbranch/crucible/internal/combat"
	"github.com/louisbranch/crucible/internal/core/timeline"
)

// speedFactor is the per-mille reduction granted per full divisor of
// speed above the level baseline.
const speedFactor = 130

// SpeedScaler scales cast and recast durations from the speed sub-stat
// and folded haste, using the level coefficient table.
type SpeedScaler struct {
	tables *Tables
}

// NewSpeedScaler returns a scaler backed by tables.
func NewSpeedScaler(tables *Tables) *SpeedScaler {
	return &SpeedScaler{tables: tables}
}

// ScaleDuration applies the speed sub-stat reduction, then the haste
// percentage, flooring at each step. Speed at or below the level
// baseline leaves the duration unscaled; levels missing from the table
// scale by haste alone.
func (s *SpeedScaler) ScaleDuration(base timeline.Time, info combat.DurationInfo) timeline.Time {
	scaled := base

	if mod, err := s.tables.LevelMod(info.Level); err == nil {
		bonus := int64(speedFactor) * int64(info.Speed-mod.Sub) / int64(mod.Div)
		if bonus < 0 {
			bonus = 0
		}
		if bonus > 990 {
			bonus = 990
		}
		scaled = timeline.Time(int64(scaled) * (1000 - bonus) / 1000)
	}

	if info.HastePct > 0 && info.HastePct != 100 {
		scaled = timeline.Time(int64(scaled) * int64(info.HastePct) / 100)
	}
	return scaled
}

var _ combat.Scaler = (*SpeedScaler)(nil)
