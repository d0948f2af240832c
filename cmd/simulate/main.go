// Offline batch runner: reads a scenario YAML, runs the Monte Carlo batch
// against the builtin (or a file-based) catalog, prints a summary.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/towertracking/reroll-backend/internal/catalog"
	"github.com/towertracking/reroll-backend/internal/reroll"
)

type scenario struct {
	Calculator       reroll.CalculatorConfig `yaml:"calculator"`
	Iterations       int                     `yaml:"iterations"`
	ShardCostPerRoll int                     `yaml:"shard_cost_per_roll"`
	Seed             uint64                  `yaml:"seed"`
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	scenarioPath := flag.String("scenario", "", "path to scenario YAML (required)")
	catalogDir := flag.String("catalog", "", "catalog base dir (default: builtin catalog)")
	flag.Parse()

	if *scenarioPath == "" {
		fatalf("usage: simulate -scenario scenario.yaml [-catalog dir]")
	}
	b, err := os.ReadFile(*scenarioPath)
	if err != nil {
		fatalf("read scenario: %v", err)
	}
	var sc scenario
	if err := yaml.Unmarshal(b, &sc); err != nil {
		fatalf("parse scenario: %v", err)
	}

	var source catalog.Source = catalog.BuiltinSource()
	if *catalogDir != "" {
		source = catalog.NewLoader(*catalogDir)
	}
	cat, err := source.Load(sc.Calculator.ModuleType)
	if err != nil {
		fatalf("load catalog: %v", err)
	}
	if err := catalog.ValidateCalculator(cat, sc.Calculator); err != nil {
		fatalf("%v", err)
	}

	pool := cat.Pool(sc.Calculator.ModuleRarity, sc.Calculator.ModuleLevel, sc.Calculator.BannedEffects)
	runCfg := reroll.NewSimulationConfig(sc.Calculator, pool)
	if sc.Iterations > 0 {
		runCfg.Iterations = sc.Iterations
	}
	if sc.ShardCostPerRoll > 0 {
		runCfg.ShardCostPerRoll = sc.ShardCostPerRoll
	}
	if sc.Seed != 0 {
		runCfg.RNG = reroll.NewSeededRNG(sc.Seed)
	}

	results, err := reroll.RunSimulation(runCfg)
	if err != nil {
		fatalf("simulation: %v", err)
	}

	fmt.Printf("module %s (rarity %s, level %d), %d targets, %d trials\n",
		sc.Calculator.ModuleType, sc.Calculator.ModuleRarity, sc.Calculator.ModuleLevel,
		len(sc.Calculator.SlotTargets), results.RunCount)
	printStats("shard cost", results.ShardCost)
	printStats("rolls", results.RollCount)

	fmt.Println("\nshard cost histogram:")
	maxCount := 0
	for _, b := range results.ShardCostHistogram {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	for _, b := range results.ShardCostHistogram {
		bar := ""
		if maxCount > 0 {
			bar = strings.Repeat("#", b.Count*50/maxCount)
		}
		fmt.Printf("%10.0f..%-10.0f %6d %s\n", b.RangeStart, b.RangeEnd, b.Count, bar)
	}
}

func printStats(name string, s reroll.Stats) {
	fmt.Printf("%s: min=%.0f p10=%.0f median=%.0f mean=%.1f p90=%.0f p95=%.0f max=%.0f\n",
		name, s.Min, s.Percentile10, s.Median, s.Mean, s.Percentile90, s.Percentile95, s.Max)
}
