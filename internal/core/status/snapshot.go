package status

// Snapshot fixes the modifier context for one action resolution. The
// three lists are folded in a pinned order so results are reproducible:
// statuses on the target first, then statuses on the source, then the
// source's gauge-derived effects; within each list, application order.
//
// Snapshots hold copies taken at snapshot time. Statuses gained or lost
// while an action is in flight do not affect it.
type Snapshot struct {
	Target      []Instance
	Source      []Instance
	SourceGauge []Instance
}

// Damage folds base damage through the pipeline: incoming modifiers on
// the target, then outgoing modifiers on the source and its gauge
// effects. Each multiplicative step floors, so modifier order is part
// of the result.
func (s Snapshot) Damage(base int32) int32 {
	v := base
	for _, in := range s.Target {
		if f := in.Desc.Damage.Incoming; f != nil {
			v = f(in, v)
		}
	}
	for _, in := range s.Source {
		if f := in.Desc.Damage.Outgoing; f != nil {
			v = f(in, v)
		}
	}
	for _, in := range s.SourceGauge {
		if f := in.Desc.Damage.Outgoing; f != nil {
			v = f(in, v)
		}
	}
	return v
}

// CritChance folds a base crit chance, in per-mille, through the same
// three lists. Stock modifiers are additive offsets.
func (s Snapshot) CritChance(base int32) int32 {
	v := base
	for _, in := range s.Target {
		if f := in.Desc.Crit.Incoming; f != nil {
			v = f(in, v)
		}
	}
	for _, in := range s.Source {
		if f := in.Desc.Crit.Outgoing; f != nil {
			v = f(in, v)
		}
	}
	for _, in := range s.SourceGauge {
		if f := in.Desc.Crit.Outgoing; f != nil {
			v = f(in, v)
		}
	}
	return clampChance(v)
}

// DirectHitChance folds a base direct hit chance, in per-mille.
func (s Snapshot) DirectHitChance(base int32) int32 {
	v := base
	for _, in := range s.Target {
		if f := in.Desc.DirectHit.Incoming; f != nil {
			v = f(in, v)
		}
	}
	for _, in := range s.Source {
		if f := in.Desc.DirectHit.Outgoing; f != nil {
			v = f(in, v)
		}
	}
	for _, in := range s.SourceGauge {
		if f := in.Desc.DirectHit.Outgoing; f != nil {
			v = f(in, v)
		}
	}
	return clampChance(v)
}

// Stats folds the source's stat sheet through its own statuses and
// gauge effects. Target statuses never transform the source's sheet.
func (s Snapshot) Stats(base Stats) Stats {
	v := base
	for _, in := range s.Source {
		if f := in.Desc.Stats; f != nil {
			v = f(in, v)
		}
	}
	for _, in := range s.SourceGauge {
		if f := in.Desc.Stats; f != nil {
			v = f(in, v)
		}
	}
	return v
}

// Haste folds the source's haste transforms into a single percentage.
// The accumulator starts at 100 and each transform multiplies it, so
// stacked hastes compound; consumers scale durations by the result over
// 100. No haste effects yields 100.
func (s Snapshot) Haste() int32 {
	acc := int32(100)
	for _, in := range s.Source {
		if f := in.Desc.Haste; f != nil {
			acc = f(in, acc)
		}
	}
	for _, in := range s.SourceGauge {
		if f := in.Desc.Haste; f != nil {
			acc = f(in, acc)
		}
	}
	return acc
}

// clampChance keeps a folded probability inside [0, 1000] per-mille.
func clampChance(v int32) int32 {
	if v < 0 {
		return 0
	}
	if v > 1000 {
		return 1000
	}
	return v
}
