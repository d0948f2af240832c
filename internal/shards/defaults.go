package shards

// DefaultCatalog is the stock shard-pack lineup used when no regional
// catalog is configured. Prices are tax-inclusive USD.
func DefaultCatalog() Catalog {
	return Catalog{
		Currency: "USD",
		TaxRate:  0,
		Packs: []Pack{
			{ID: "shards-60", Name: "Pocket Shards", Shards: 60, PriceCents: 99, FirstTimeX2: true},
			{ID: "shards-330", Name: "Small Shard Crate", Shards: 300, BonusShards: 30, PriceCents: 499, FirstTimeX2: true},
			{ID: "shards-1090", Name: "Shard Crate", Shards: 980, BonusShards: 110, PriceCents: 1499, FirstTimeX2: true},
			{ID: "shards-2240", Name: "Large Shard Crate", Shards: 1980, BonusShards: 260, PriceCents: 2999, FirstTimeX2: true},
			{ID: "shards-3880", Name: "Shard Vault", Shards: 3280, BonusShards: 600, PriceCents: 4999, FirstTimeX2: true},
			{ID: "shards-8080", Name: "Grand Shard Vault", Shards: 6480, BonusShards: 1600, PriceCents: 9999, FirstTimeX2: true},
		},
	}
}
