package combat

import "github.com/louisbranch/crucible/internal/core/timeline"

// DurationInfo carries the inputs to duration scaling: the actor's
// level, speed sub-stat, and the haste percentage folded from its
// statuses (100 when unmodified).
type DurationInfo struct {
	Level    uint8
	Speed    int32
	HastePct int32
}

// Scaler converts base cast and recast durations into scaled ones.
// Implementations own the stat formula; the core only agrees on the
// inputs.
type Scaler interface {
	ScaleDuration(base timeline.Time, info DurationInfo) timeline.Time
}

// ScalerFunc adapts a function to the Scaler interface.
type ScalerFunc func(base timeline.Time, info DurationInfo) timeline.Time

// ScaleDuration calls f.
func (f ScalerFunc) ScaleDuration(base timeline.Time, info DurationInfo) timeline.Time {
	return f(base, info)
}

// IdentityScaler returns every duration unscaled. Useful in tests and
// wherever timing math is out of scope.
func IdentityScaler() Scaler {
	return ScalerFunc(func(base timeline.Time, _ DurationInfo) timeline.Time {
		return base
	})
}
