package reroll

import "errors"

var (
	ErrEmptyPool           = errors.New("roll pool is empty but targets remain")
	ErrUnsatisfiableTarget = errors.New("target cannot be satisfied by any pool option")
)

// roundCostBase is the shard-unit cost of a round with zero locked effects.
// The per-round cost is max(roundCostBase, lockScale*locksSoFar): locking
// makes every later round more expensive, but a reroll is never free.
const (
	roundCostBase = 10
	lockScale     = 10
)

// roundCost returns the shard units billed for one round given the number of
// currently-locked effects (pre-locked ones included). Billed once per round
// regardless of how many open slots rolled usefully.
func roundCost(locked int) int {
	c := lockScale * locked
	if c < roundCostBase {
		c = roundCostBase
	}
	return c
}

// satisfies reports whether one roll outcome fills the target: effect in the
// acceptable set and rarity at or above the minimum.
func satisfies(t SlotTarget, o RollOption) bool {
	if !o.Rarity.AtLeast(t.MinRarity) {
		return false
	}
	for _, e := range t.AcceptableEffects {
		if e == o.EffectID {
			return true
		}
	}
	return false
}

// reachable reports whether at least one pool option could ever satisfy t.
func reachable(t SlotTarget, pool Pool) bool {
	for _, o := range pool {
		if satisfies(t, o) {
			return true
		}
	}
	return false
}

// applyOutcomes is the per-round reduction: given the remaining targets and
// this round's immutable roll outcomes, it returns the still-unfilled targets
// and the targets locked this round. Each outcome is applied to at most one
// target (the first unfilled one it satisfies), so two targets with identical
// acceptable sets both stay in play until each has consumed its own outcome.
func applyOutcomes(remaining []SlotTarget, outcomes []RollOption) (left []SlotTarget, locked []lockedTarget) {
	left = remaining
	for _, o := range outcomes {
		for i, t := range left {
			if satisfies(t, o) {
				locked = append(locked, lockedTarget{target: t, outcome: o})
				left = append(append([]SlotTarget(nil), left[:i]...), left[i+1:]...)
				break
			}
		}
	}
	return left, locked
}

type lockedTarget struct {
	target  SlotTarget
	outcome RollOption
}

// SimulateSingleRun plays one complete reroll session to completion: each
// round rolls every open slot, locks outcomes that satisfy outstanding
// targets, and bills the round at the current lock count. It terminates when
// no targets remain. A config with zero targets returns after zero rounds.
func SimulateSingleRun(cfg CalculatorConfig, pool Pool, rng RandomSource) (SingleRunResult, error) {
	if len(cfg.SlotTargets) == 0 {
		return SingleRunResult{}, nil
	}
	if len(pool) == 0 {
		return SingleRunResult{}, ErrEmptyPool
	}
	for _, t := range cfg.SlotTargets {
		if !reachable(t, pool) {
			return SingleRunResult{}, ErrUnsatisfiableTarget
		}
	}
	if rng == nil {
		rng = DefaultRNG()
	}

	locked := len(cfg.PreLockedEffects)
	openSlots := cfg.SlotCount - locked
	if openSlots < len(cfg.SlotTargets) {
		openSlots = len(cfg.SlotTargets)
	}
	remaining := append([]SlotTarget(nil), cfg.SlotTargets...)

	var (
		rounds    int
		totalCost int
		lockOrder []LockEvent
		outcomes  = make([]RollOption, 0, openSlots)
	)
	for len(remaining) > 0 {
		rounds++
		cost := roundCost(locked)
		totalCost += cost

		// one uniform draw per open slot; the round's outcomes are fixed
		// before any target matching happens
		outcomes = outcomes[:0]
		for i := 0; i < openSlots; i++ {
			outcomes = append(outcomes, pool[pickIndex(rng, len(pool))])
		}

		var hits []lockedTarget
		remaining, hits = applyOutcomes(remaining, outcomes)
		for _, h := range hits {
			lockOrder = append(lockOrder, LockEvent{
				EffectID:         h.outcome.EffectID,
				Rarity:           h.outcome.Rarity,
				SlotNumber:       h.target.SlotNumber,
				RollsToAcquire:   rounds,
				ShardCostPerRoll: cost,
			})
			locked++
			openSlots--
		}
	}

	return SingleRunResult{
		TotalRolls:     rounds,
		TotalShardCost: totalCost,
		LockOrder:      lockOrder,
	}, nil
}
