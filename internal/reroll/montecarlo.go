package reroll

import (
	"math"
	"sort"
)

// Stats summarizes one sampled quantity across a batch.
type Stats struct {
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	Percentile10 float64 `json:"percentile_10"`
	Percentile90 float64 `json:"percentile_90"`
	Percentile95 float64 `json:"percentile_95"`
}

// HistogramBucket counts trials whose shard cost fell in [RangeStart, RangeEnd).
// The last bucket is inclusive of its end so counts sum to the run count.
type HistogramBucket struct {
	RangeStart float64 `json:"range_start"`
	RangeEnd   float64 `json:"range_end"`
	Count      int     `json:"count"`
}

// SimulationResults is the aggregate output of one batch.
type SimulationResults struct {
	RunCount           int               `json:"run_count"`
	ShardCost          Stats             `json:"shard_cost"`
	RollCount          Stats             `json:"roll_count"`
	ShardCostHistogram []HistogramBucket `json:"shard_cost_histogram"`
}

// histogramBuckets is fixed; bucket widths adapt to the sampled range.
const histogramBuckets = 20

// CalculateStatistics reduces samples to descriptive stats. Empty input
// yields the zero value, never a panic.
func CalculateStatistics(xs []float64) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += v
	}

	cp := append([]float64(nil), xs...)
	sort.Float64s(cp)

	// interpolated percentile: rank = p*(n-1), linear between floor and ceil
	percentile := func(p float64) float64 {
		if n == 1 {
			return cp[0]
		}
		if p <= 0 {
			return cp[0]
		}
		if p >= 1 {
			return cp[n-1]
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return cp[i]
		}
		return cp[i]*(1-f) + cp[i+1]*f
	}

	return Stats{
		Min:          cp[0],
		Max:          cp[n-1],
		Mean:         sum / float64(n),
		Median:       percentile(0.50),
		Percentile10: percentile(0.10),
		Percentile90: percentile(0.90),
		Percentile95: percentile(0.95),
	}
}

// buildHistogram spreads samples over equal-width buckets spanning [min, max].
// Every sample lands in exactly one bucket. A degenerate range (min == max)
// collapses to a single bucket holding everything.
func buildHistogram(xs []float64, buckets int) []HistogramBucket {
	if len(xs) == 0 || buckets <= 0 {
		return nil
	}
	min, max := xs[0], xs[0]
	for _, v := range xs {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		return []HistogramBucket{{RangeStart: min, RangeEnd: max, Count: len(xs)}}
	}
	width := (max - min) / float64(buckets)
	out := make([]HistogramBucket, buckets)
	for i := range out {
		out[i].RangeStart = min + float64(i)*width
		out[i].RangeEnd = min + float64(i+1)*width
	}
	out[buckets-1].RangeEnd = max
	for _, v := range xs {
		i := int((v - min) / width)
		if i >= buckets {
			i = buckets - 1
		}
		out[i].Count++
	}
	return out
}

// RunSimulation repeats the single-trial simulator and reduces the samples.
// Raw trial costs use the 10-unit round constant; ShardCostPerRoll rescales
// them into display shards (the default of 100 leaves them unchanged, so a
// zero-lock round shows as ShardCostPerRoll/10). Iterations <= 0 yields a
// zero result, not an error.
func RunSimulation(cfg SimulationRunConfig) (SimulationResults, error) {
	if cfg.Iterations <= 0 {
		return SimulationResults{}, nil
	}
	rng := cfg.RNG
	if rng == nil {
		rng = DefaultRNG()
	}
	shardCostPerRoll := cfg.ShardCostPerRoll
	if shardCostPerRoll <= 0 {
		shardCostPerRoll = DefaultShardCostPerRoll
	}
	scale := float64(shardCostPerRoll) / float64(DefaultShardCostPerRoll)

	costs := make([]float64, cfg.Iterations)
	rolls := make([]float64, cfg.Iterations)
	for i := 0; i < cfg.Iterations; i++ {
		run, err := SimulateSingleRun(cfg.Calculator, cfg.Pool, rng)
		if err != nil {
			return SimulationResults{}, err
		}
		costs[i] = float64(run.TotalShardCost) * scale
		rolls[i] = float64(run.TotalRolls)
	}

	return SimulationResults{
		RunCount:           cfg.Iterations,
		ShardCost:          CalculateStatistics(costs),
		RollCount:          CalculateStatistics(rolls),
		ShardCostHistogram: buildHistogram(costs, histogramBuckets),
	}, nil
}
