package combat

// Multipliers applied to critical and direct hits, in percent.
const (
	CritMultiplier   = 140
	DirectMultiplier = 125
)

// DamageResult is a resolved damage event: the final amount and which
// rolls landed.
type DamageResult struct {
	Amount   int32
	Critical bool
	Direct   bool
}

// ResolveDamage turns a damage event into a final amount. The stat
// transforms in the snapshot fold over the source's sheet first, then
// potency scales by power, then the damage fold runs, then crit and
// direct hit rolls multiply on top. Every multiplicative step floors.
//
// With no statuses and a zero stat sheet the amount equals the potency,
// so baselines read straight off action definitions.
func ResolveDamage(d DamageEvent, rng Rng) DamageResult {
	stats := d.Snapshot.Stats(d.Stats)

	amount := scale(d.Potency, 1000+stats.Power, 1000)
	amount = d.Snapshot.Damage(amount)

	res := DamageResult{}
	if d.CanCrit && rng.Roll(d.Snapshot.CritChance(stats.CritRate)) {
		amount = scale(amount, CritMultiplier, 100)
		res.Critical = true
	}
	if d.CanDirect && rng.Roll(d.Snapshot.DirectHitChance(stats.DirectRate)) {
		amount = scale(amount, DirectMultiplier, 100)
		res.Direct = true
	}
	res.Amount = amount
	return res
}

// scale multiplies v by num/den in 64-bit space, truncating toward
// zero.
func scale(v, num, den int32) int32 {
	return int32(int64(v) * int64(num) / int64(den))
}
