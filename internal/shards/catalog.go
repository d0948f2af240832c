package shards

import (
	"math"
	"sort"
)

// Pack models a purchasable shard SKU in the store.
type Pack struct {
	ID          string `json:"id"`           // SKU id, e.g., "shards-2400"
	Name        string `json:"name"`         // display name
	Shards      int    `json:"shards"`       // base shards granted
	BonusShards int    `json:"bonus_shards"` // permanent extra shards (non-first-time)
	FirstTimeX2 bool   `json:"first_time_x2"`
	PriceCents  int    `json:"price_cents"` // price in minor units
}

// Catalog is a regional shard catalog and tax info.
// If prices are pre-tax, TaxRate is applied on the subtotal; for tax-inclusive
// prices set TaxRate=0 and pass the inclusive price as PriceCents.
type Catalog struct {
	Currency string  `json:"currency"` // ISO code, e.g., "USD"
	TaxRate  float64 `json:"tax_rate"` // e.g., 0.13 for 13%
	Packs    []Pack  `json:"packs"`
}

// FirstTimeState describes per-pack first-time eligibility.
type FirstTimeState map[string]bool // packID -> true if first-time x2 is still available

// Plan summarizes a purchase plan.
type Plan struct {
	Purchases   []Purchase `json:"purchases"`
	SubCents    int        `json:"sub_cents"` // subtotal before tax
	TaxCents    int        `json:"tax_cents"`
	TotalCents  int        `json:"total_cents"`
	TotalShards int        `json:"total_shards"`
	Currency    string     `json:"currency"`
}

// Purchase is one line item in the plan.
type Purchase struct {
	PackID     string `json:"pack_id"`
	Name       string `json:"name"`
	Qty        int    `json:"qty"`
	UnitPrice  int    `json:"unit_price"`  // cents
	UnitShards int    `json:"unit_shards"` // shards received per unit (x2/bonus applied)
	Subtotal   int    `json:"subtotal"`    // cents
}

// applyTax computes tax and total given a subtotal and a tax rate.
func applyTax(sub int, taxRate float64) (tax int, total int) {
	if taxRate <= 0 {
		return 0, sub
	}
	t := int(math.Round(float64(sub) * taxRate))
	return t, sub + t
}

// sortPurchases keeps plan output stable for clients and tests.
func sortPurchases(ps []Purchase) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].PackID < ps[j].PackID })
}
