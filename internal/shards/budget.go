package shards

// Bundle defines how many shards a reroll round costs, with an optional
// bulk rate for blocks of ten rounds.
type Bundle struct {
	PerRoll    int // shards per single round, e.g., 100
	PerTenRoll int // optional; if 0 -> equal to 10 * PerRoll
}

// ShardsForRolls returns how many shards n rounds require, using the
// ten-round rate for full blocks when one is configured.
func (b Bundle) ShardsForRolls(n int) int {
	if n <= 0 {
		return 0
	}
	if b.PerTenRoll > 0 && n >= 10 {
		tens := n / 10
		rem := n % 10
		return tens*b.PerTenRoll + rem*b.PerRoll
	}
	return n * b.PerRoll
}

// RollsAffordable returns how many rounds a shard balance covers, spending
// ten-round blocks first when they are the better rate.
func (b Bundle) RollsAffordable(shardBalance int) int {
	if shardBalance <= 0 || b.PerRoll <= 0 {
		return 0
	}
	rolls := 0
	if b.PerTenRoll > 0 && b.PerTenRoll < 10*b.PerRoll {
		blocks := shardBalance / b.PerTenRoll
		rolls += blocks * 10
		shardBalance -= blocks * b.PerTenRoll
	}
	return rolls + shardBalance/b.PerRoll
}
