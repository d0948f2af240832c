package catalog

import (
	"fmt"
	"strings"

	"github.com/towertracking/reroll-backend/internal/reroll"
)

// ValidateRaw checks semantic constraints of a merged RawCatalog.
func ValidateRaw(cfg RawCatalog) error {
	var errs []string

	if cfg.SlotCount < 0 {
		errs = append(errs, "slot_count must be >= 0 (0 means default)")
	}
	seen := make(map[string]bool, len(cfg.Effects))
	for i, e := range cfg.Effects {
		if e.ID == "" {
			errs = append(errs, fmt.Sprintf("effects[%d].id must not be empty", i))
			continue
		}
		if seen[e.ID] {
			errs = append(errs, fmt.Sprintf("effects[%d]: duplicate id %q", i, e.ID))
		}
		seen[e.ID] = true
		if e.UnlockLevel < 0 {
			errs = append(errs, fmt.Sprintf("effects[%s].unlock_level must be >= 0", e.ID))
		}
		if len(e.Magnitudes) == 0 {
			errs = append(errs, fmt.Sprintf("effects[%s].magnitudes must not be empty", e.ID))
		}
		for tier := range e.Magnitudes {
			if !reroll.RarityTier(tier).Valid() {
				errs = append(errs, fmt.Sprintf("effects[%s].magnitudes: unknown rarity %q", e.ID, tier))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ValidateCalculator is the upstream guard the simulation engine relies on:
// it rejects configs the engine would treat as undefined behavior (target
// counts over the slot count, unknown or banned effects, rarities the module
// cannot reach).
func ValidateCalculator(c *Catalog, cfg reroll.CalculatorConfig) error {
	var errs []string

	if !cfg.ModuleRarity.Valid() {
		errs = append(errs, fmt.Sprintf("module_rarity %q is not a rarity tier", cfg.ModuleRarity))
	}
	if cfg.ModuleLevel < 1 {
		errs = append(errs, "module_level must be >= 1")
	}
	if cfg.SlotCount < 1 || cfg.SlotCount > c.SlotCount {
		errs = append(errs, fmt.Sprintf("slot_count must be in 1..%d", c.SlotCount))
	}
	if len(cfg.SlotTargets)+len(cfg.PreLockedEffects) > cfg.SlotCount {
		errs = append(errs, "slot_targets plus pre_locked_effects exceed slot_count")
	}

	banned := make(map[reroll.EffectID]bool, len(cfg.BannedEffects))
	for _, b := range cfg.BannedEffects {
		if _, ok := c.Effect(b); !ok {
			errs = append(errs, fmt.Sprintf("banned effect %q not in %s catalog", b, c.ModuleType))
		}
		banned[b] = true
	}

	seenSlot := make(map[int]bool, len(cfg.SlotTargets))
	for i, t := range cfg.SlotTargets {
		if t.SlotNumber < 1 || t.SlotNumber > cfg.SlotCount {
			errs = append(errs, fmt.Sprintf("slot_targets[%d].slot_number must be in 1..%d", i, cfg.SlotCount))
		}
		if seenSlot[t.SlotNumber] {
			errs = append(errs, fmt.Sprintf("slot_targets[%d]: duplicate slot_number %d", i, t.SlotNumber))
		}
		seenSlot[t.SlotNumber] = true
		if !t.MinRarity.Valid() {
			errs = append(errs, fmt.Sprintf("slot_targets[%d].min_rarity %q is not a rarity tier", i, t.MinRarity))
			continue
		}
		if cfg.ModuleRarity.Valid() && !cfg.ModuleRarity.AtLeast(t.MinRarity) {
			errs = append(errs, fmt.Sprintf("slot_targets[%d].min_rarity %q unreachable at module rarity %q", i, t.MinRarity, cfg.ModuleRarity))
		}
		if len(t.AcceptableEffects) == 0 {
			errs = append(errs, fmt.Sprintf("slot_targets[%d].acceptable_effects must not be empty", i))
		}
		satisfiable := false
		for _, id := range t.AcceptableEffects {
			e, ok := c.Effect(id)
			if !ok {
				errs = append(errs, fmt.Sprintf("slot_targets[%d]: effect %q not in %s catalog", i, id, c.ModuleType))
				continue
			}
			if banned[id] {
				errs = append(errs, fmt.Sprintf("slot_targets[%d]: effect %q is banned", i, id))
				continue
			}
			if e.UnlockLevel > cfg.ModuleLevel {
				continue
			}
			for tier := range e.Magnitudes {
				r := reroll.RarityTier(tier)
				if r.AtLeast(t.MinRarity) && cfg.ModuleRarity.AtLeast(r) {
					satisfiable = true
					break
				}
			}
		}
		if !satisfiable && len(t.AcceptableEffects) > 0 {
			errs = append(errs, fmt.Sprintf("slot_targets[%d] can never be satisfied with this module", i))
		}
	}

	for i, p := range cfg.PreLockedEffects {
		if _, ok := c.Effect(p.EffectID); !ok {
			errs = append(errs, fmt.Sprintf("pre_locked_effects[%d]: effect %q not in %s catalog", i, p.EffectID, c.ModuleType))
		}
		if !p.Rarity.Valid() {
			errs = append(errs, fmt.Sprintf("pre_locked_effects[%d].rarity %q is not a rarity tier", i, p.Rarity))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("calculator validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
