package shards

// MinCostAtLeastShards finds the minimum-cost pack combination granting at
// least targetShards. Per-pack first-time x2 is handled by expanding
// "effective packs": each pack can appear as an x2 variant (if first-time is
// still available) and a normal variant. Quantities are unbounded.
//
// Typical caller: feed it the simulated p95 shard cost for a reroll plan.
func MinCostAtLeastShards(cat Catalog, targetShards int, first FirstTimeState) Plan {
	if targetShards <= 0 || len(cat.Packs) == 0 {
		return Plan{Currency: cat.Currency}
	}

	effs := expandVariants(cat, first)
	maxShards := 0
	for _, e := range effs {
		if e.shards > maxShards {
			maxShards = e.shards
		}
	}
	if maxShards == 0 {
		return Plan{Currency: cat.Currency}
	}
	// permit slight overshoot with minimal cost
	limit := targetShards + maxShards

	const inf = int(^uint(0) >> 1)
	dp := make([]int, limit+1)   // min cost to reach exactly s shards
	pick := make([]int, limit+1) // chosen variant index
	prev := make([]int, limit+1) // previous s
	for s := range dp {
		dp[s], pick[s], prev[s] = inf, -1, -1
	}
	dp[0] = 0

	for s := 0; s <= limit; s++ {
		if dp[s] == inf {
			continue
		}
		for i, e := range effs {
			ns := s + e.shards
			if ns > limit {
				ns = limit
			}
			cost := dp[s] + e.price
			if cost < dp[ns] {
				dp[ns] = cost
				pick[ns] = i
				prev[ns] = s
			}
		}
	}

	// best s >= target
	bestS, bestCost := targetShards, dp[targetShards]
	for s := targetShards; s <= limit; s++ {
		if dp[s] < bestCost {
			bestS, bestCost = s, dp[s]
		}
	}
	if bestCost == inf {
		return Plan{Currency: cat.Currency}
	}

	counts := map[variant]int{}
	for s := bestS; s > 0 && pick[s] != -1; s = prev[s] {
		counts[effs[pick[s]]]++
	}
	return buildPlan(cat, counts)
}

// MaxShardsUnderBudget computes the maximum shards purchasable with
// budgetCents (unbounded knapsack on cost). When prices are pre-tax the
// effective budget is reduced so the taxed total stays within budget.
func MaxShardsUnderBudget(cat Catalog, budgetCents int, first FirstTimeState) Plan {
	if budgetCents <= 0 || len(cat.Packs) == 0 {
		return Plan{Currency: cat.Currency}
	}
	effs := expandVariants(cat, first)
	if len(effs) == 0 {
		return Plan{Currency: cat.Currency}
	}

	effBudget := budgetCents
	if cat.TaxRate > 0 {
		effBudget = int(float64(budgetCents) / (1 + cat.TaxRate))
	}

	dp := make([]int, effBudget+1) // dp[c] = max shards at cost exactly c
	choose := make([]int, effBudget+1)
	for c := range choose {
		choose[c] = -1
	}
	for c := 0; c <= effBudget; c++ {
		for i, e := range effs {
			nc := c + e.price
			if nc <= effBudget && dp[c]+e.shards > dp[nc] {
				dp[nc] = dp[c] + e.shards
				choose[nc] = i
			}
		}
	}
	bestC := 0
	for c := 0; c <= effBudget; c++ {
		if dp[c] > dp[bestC] {
			bestC = c
		}
	}

	counts := map[variant]int{}
	for c := bestC; c > 0 && choose[c] != -1; c -= effs[choose[c]].price {
		counts[effs[choose[c]]]++
	}
	return buildPlan(cat, counts)
}

// variant is one effective pack: a real SKU or its first-time-x2 form.
type variant struct {
	id     string
	name   string
	shards int
	price  int
}

func expandVariants(cat Catalog, first FirstTimeState) []variant {
	var effs []variant
	for _, p := range cat.Packs {
		if p.FirstTimeX2 && first != nil && first[p.ID] {
			// x2 applies to base Shards only, not the bonus
			effs = append(effs, variant{p.ID + "#x2", p.Name + " (x2)", p.Shards*2 + p.BonusShards, p.PriceCents})
		}
		effs = append(effs, variant{p.ID, p.Name, p.Shards + p.BonusShards, p.PriceCents})
	}
	return effs
}

func buildPlan(cat Catalog, counts map[variant]int) Plan {
	plan := Plan{Currency: cat.Currency}
	for v, qty := range counts {
		sub := v.price * qty
		plan.Purchases = append(plan.Purchases, Purchase{
			PackID:     v.id,
			Name:       v.name,
			Qty:        qty,
			UnitPrice:  v.price,
			UnitShards: v.shards,
			Subtotal:   sub,
		})
		plan.SubCents += sub
		plan.TotalShards += v.shards * qty
	}
	sortPurchases(plan.Purchases)
	plan.TaxCents, plan.TotalCents = applyTax(plan.SubCents, cat.TaxRate)
	return plan
}
