package reroll

// EffectID identifies one module effect (e.g. "attackSpeed").
type EffectID string

// SlotTarget is a desired outcome for one slot: any effect in
// AcceptableEffects at or above MinRarity satisfies it. Immutable input to a
// trial; two targets with the same acceptable set are still two targets and
// must both be locked eventually.
type SlotTarget struct {
	SlotNumber        int        `json:"slot_number" yaml:"slot_number"`
	AcceptableEffects []EffectID `json:"acceptable_effects" yaml:"acceptable_effects"`
	MinRarity         RarityTier `json:"min_rarity" yaml:"min_rarity"`
}

// PreLockedEffect is fixed before the trial starts. It raises the per-round
// cost but is never part of the to-be-filled targets.
type PreLockedEffect struct {
	EffectID EffectID   `json:"effect_id" yaml:"effect_id"`
	Rarity   RarityTier `json:"rarity" yaml:"rarity"`
}

// CalculatorConfig is the full problem statement for one simulation batch.
// Invariant (enforced upstream): len(SlotTargets)+len(PreLockedEffects) <= SlotCount.
type CalculatorConfig struct {
	ModuleType       string            `json:"module_type" yaml:"module_type"`
	ModuleLevel      int               `json:"module_level" yaml:"module_level"`
	ModuleRarity     RarityTier        `json:"module_rarity" yaml:"module_rarity"`
	SlotCount        int               `json:"slot_count" yaml:"slot_count"`
	BannedEffects    []EffectID        `json:"banned_effects,omitempty" yaml:"banned_effects,omitempty"`
	SlotTargets      []SlotTarget      `json:"slot_targets" yaml:"slot_targets"`
	PreLockedEffects []PreLockedEffect `json:"pre_locked_effects,omitempty" yaml:"pre_locked_effects,omitempty"`
}

// RollOption is one (effect, rarity) pair the game can produce for a slot.
type RollOption struct {
	EffectID EffectID   `json:"effect_id"`
	Rarity   RarityTier `json:"rarity"`
}

// Pool is the legal uniform draw pool for a module, with banned effects and
// unreachable rarities already filtered out by the catalog layer.
type Pool []RollOption

// LockEvent records one filled target. Ordering in SingleRunResult.LockOrder
// is lock order, not slot-number order.
type LockEvent struct {
	EffectID         EffectID   `json:"effect_id"`
	Rarity           RarityTier `json:"rarity"`
	SlotNumber       int        `json:"slot_number"`
	RollsToAcquire   int        `json:"rolls_to_acquire"`
	ShardCostPerRoll int        `json:"shard_cost_per_roll"`
}

// SingleRunResult is the output of one trial.
type SingleRunResult struct {
	TotalRolls     int         `json:"total_rolls"`
	TotalShardCost int         `json:"total_shard_cost"`
	LockOrder      []LockEvent `json:"lock_order"`
}

// Defaults for a simulation batch.
const (
	DefaultIterations       = 10000
	DefaultShardCostPerRoll = 100
)

// SimulationRunConfig drives one batch of trials.
type SimulationRunConfig struct {
	Calculator       CalculatorConfig
	Pool             Pool
	Iterations       int
	ShardCostPerRoll int
	RNG              RandomSource // nil -> DefaultRNG
}

// NewSimulationConfig assembles a batch config with defaulting only; no
// validation, no side effects.
func NewSimulationConfig(calc CalculatorConfig, pool Pool) SimulationRunConfig {
	return SimulationRunConfig{
		Calculator:       calc,
		Pool:             pool,
		Iterations:       DefaultIterations,
		ShardCostPerRoll: DefaultShardCostPerRoll,
	}
}
