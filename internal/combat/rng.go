package combat

// Rng is the randomness capability. The core never owns a random
// policy; drivers inject one and deterministic tests inject fixed
// outcomes.
type Rng interface {
	// Roll reports whether a chance of permille parts per thousand
	// succeeds. Implementations must fail chances at or below zero and
	// succeed chances at or above 1000.
	Roll(permille int32) bool
}

// RngFunc adapts a function to the Rng interface.
type RngFunc func(permille int32) bool

// Roll calls f.
func (f RngFunc) Roll(permille int32) bool {
	return f(permille)
}

// NeverRng fails every roll. Deterministic baselines use it to strip
// crit and direct hit variance.
func NeverRng() Rng {
	return RngFunc(func(int32) bool { return false })
}
