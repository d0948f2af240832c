package reroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateStatisticsEmpty(t *testing.T) {
	assert.Equal(t, Stats{}, CalculateStatistics(nil))
	assert.Equal(t, Stats{}, CalculateStatistics([]float64{}))
}

func TestCalculateStatisticsSingle(t *testing.T) {
	s := CalculateStatistics([]float64{42})
	assert.Equal(t, Stats{Min: 42, Max: 42, Mean: 42, Median: 42,
		Percentile10: 42, Percentile90: 42, Percentile95: 42}, s)
}

func TestCalculateStatisticsTens(t *testing.T) {
	xs := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	s := CalculateStatistics(xs)
	assert.Equal(t, 10.0, s.Min)
	assert.Equal(t, 100.0, s.Max)
	assert.Equal(t, 55.0, s.Mean)
	assert.Equal(t, 55.0, s.Median, "even length interpolates the middle pair")
}

func TestCalculateStatisticsPercentiles(t *testing.T) {
	// interpolated rank percentile over 1..100: rank = p*(n-1)
	xs := make([]float64, 100)
	for i := range xs {
		xs[i] = float64(i + 1)
	}
	s := CalculateStatistics(xs)
	assert.InDelta(t, 10.9, s.Percentile10, 1e-9)
	assert.InDelta(t, 90.1, s.Percentile90, 1e-9)
	assert.InDelta(t, 95.05, s.Percentile95, 1e-9)
	assert.InDelta(t, 50.5, s.Median, 1e-9)
}

func TestBuildHistogram(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	buckets := buildHistogram(xs, 5)
	require.Len(t, buckets, 5)

	sum := 0
	for _, b := range buckets {
		sum += b.Count
	}
	assert.Equal(t, len(xs), sum, "bucket counts must sum to the sample count")
	assert.Equal(t, 1.0, buckets[0].RangeStart)
	assert.Equal(t, 10.0, buckets[4].RangeEnd)
}

func TestBuildHistogramDegenerateRange(t *testing.T) {
	buckets := buildHistogram([]float64{5, 5, 5}, 20)
	require.Len(t, buckets, 1)
	assert.Equal(t, 3, buckets[0].Count)
}

func TestNewSimulationConfigDefaults(t *testing.T) {
	cfg := NewSimulationConfig(CalculatorConfig{ModuleType: "cannon"}, testPool())
	assert.Equal(t, DefaultIterations, cfg.Iterations)
	assert.Equal(t, DefaultShardCostPerRoll, cfg.ShardCostPerRoll)
	assert.Nil(t, cfg.RNG)
}

func batchConfig(iterations int, seed uint64) SimulationRunConfig {
	calc := CalculatorConfig{
		ModuleType:  "cannon",
		SlotCount:   5,
		SlotTargets: []SlotTarget{target(1, RarityEpic, "attackSpeed", "critChance")},
	}
	cfg := NewSimulationConfig(calc, testPool())
	cfg.Iterations = iterations
	cfg.RNG = NewSeededRNG(seed)
	return cfg
}

func TestRunSimulationCounts(t *testing.T) {
	res, err := RunSimulation(batchConfig(100, 5))
	require.NoError(t, err)

	assert.Equal(t, 100, res.RunCount)
	sum := 0
	for _, b := range res.ShardCostHistogram {
		sum += b.Count
	}
	assert.Equal(t, 100, sum, "every trial falls into exactly one bucket")
	assert.GreaterOrEqual(t, res.ShardCost.Max, res.ShardCost.Min)
	assert.GreaterOrEqual(t, res.RollCount.Mean, 1.0)
}

func TestRunSimulationZeroIterations(t *testing.T) {
	cfg := batchConfig(100, 5)
	cfg.Iterations = 0
	res, err := RunSimulation(cfg)
	require.NoError(t, err)
	assert.Equal(t, SimulationResults{}, res)
}

func TestRunSimulationShardCostScaling(t *testing.T) {
	// same seed, doubled shard cost per roll: the whole distribution scales
	base, err := RunSimulation(batchConfig(200, 17))
	require.NoError(t, err)
	doubled := batchConfig(200, 17)
	doubled.ShardCostPerRoll = 200
	scaled, err := RunSimulation(doubled)
	require.NoError(t, err)

	assert.InDelta(t, base.ShardCost.Mean*2, scaled.ShardCost.Mean, 1e-9)
	assert.InDelta(t, base.ShardCost.Percentile95*2, scaled.ShardCost.Percentile95, 1e-9)
	assert.Equal(t, base.RollCount, scaled.RollCount, "roll counts are unaffected by cost scaling")
}
