package main

import (
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/towertracking/reroll-backend/internal/catalog"
	"github.com/towertracking/reroll-backend/internal/config"
	"github.com/towertracking/reroll-backend/internal/observability"
	"github.com/towertracking/reroll-backend/internal/reroll"
	"github.com/towertracking/reroll-backend/internal/shards"
	"github.com/towertracking/reroll-backend/internal/store"
)

type server struct {
	cfg      *config.Config
	log      *zap.Logger
	catalogs catalog.Source
	runs     *store.Store // nil when archiving is disabled
	packs    shards.Catalog
}

type errResp struct {
	Err string `json:"err"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errResp{Err: msg})
}

// simulateReq is the body of /simulate and /simulate_single. The calculator
// fields are inlined; batch controls ride alongside them.
type simulateReq struct {
	reroll.CalculatorConfig
	Iterations       int    `json:"iterations,omitempty"`
	ShardCostPerRoll int    `json:"shard_cost_per_roll,omitempty"`
	Seed             uint64 `json:"seed,omitempty"`
	Save             bool   `json:"save,omitempty"`
}

// prepare decodes and validates a request and builds the batch config. The
// engine itself assumes validated input, so every guard lives here.
func (s *server) prepare(w http.ResponseWriter, r *http.Request) (reroll.SimulationRunConfig, *simulateReq, bool) {
	var req simulateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body: "+err.Error())
		return reroll.SimulationRunConfig{}, nil, false
	}
	cat, err := s.catalogs.Load(req.ModuleType)
	if err != nil {
		badRequest(w, err.Error())
		return reroll.SimulationRunConfig{}, nil, false
	}
	if err := catalog.ValidateCalculator(cat, req.CalculatorConfig); err != nil {
		badRequest(w, err.Error())
		return reroll.SimulationRunConfig{}, nil, false
	}

	pool := cat.Pool(req.ModuleRarity, req.ModuleLevel, req.BannedEffects)
	runCfg := reroll.NewSimulationConfig(req.CalculatorConfig, pool)
	runCfg.Iterations = s.cfg.Simulation.Iterations
	runCfg.ShardCostPerRoll = s.cfg.Simulation.ShardCostPerRoll
	if req.Iterations > 0 {
		runCfg.Iterations = req.Iterations
	}
	if runCfg.Iterations > s.cfg.Simulation.MaxIterations {
		badRequest(w, "iterations exceed configured maximum of "+strconv.Itoa(s.cfg.Simulation.MaxIterations))
		return reroll.SimulationRunConfig{}, nil, false
	}
	if req.ShardCostPerRoll > 0 {
		runCfg.ShardCostPerRoll = req.ShardCostPerRoll
	}
	if req.Seed != 0 {
		runCfg.RNG = reroll.NewSeededRNG(req.Seed)
	}
	return runCfg, &req, true
}

type simulateResp struct {
	reroll.SimulationResults
	RunID string `json:"run_id,omitempty"`
}

func (s *server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	runCfg, req, ok := s.prepare(w, r)
	if !ok {
		return
	}
	results, err := reroll.RunSimulation(runCfg)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	resp := simulateResp{SimulationResults: results}
	if req.Save {
		if s.runs == nil {
			badRequest(w, "run archive is not configured")
			return
		}
		id, err := s.runs.SaveRun(req.CalculatorConfig, results)
		if err != nil {
			s.log.Error("saving run", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, errResp{Err: "failed to save run"})
			return
		}
		resp.RunID = id
	}
	s.log.Info("simulated batch",
		zap.String("module_type", req.ModuleType),
		zap.Int("iterations", results.RunCount),
		zap.Float64("mean_shard_cost", results.ShardCost.Mean),
	)
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleSimulateSingle(w http.ResponseWriter, r *http.Request) {
	runCfg, req, ok := s.prepare(w, r)
	if !ok {
		return
	}
	rng := runCfg.RNG
	if rng == nil {
		rng = reroll.DefaultRNG()
	}
	run, err := reroll.SimulateSingleRun(req.CalculatorConfig, runCfg.Pool, rng)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	moduleType := r.URL.Query().Get("module")
	if moduleType == "" {
		badRequest(w, "missing param module")
		return
	}
	cat, err := s.catalogs.Load(moduleType)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

type planReq struct {
	TargetShards int             `json:"target_shards,omitempty"`
	BudgetCents  int             `json:"budget_cents,omitempty"`
	FirstTime    map[string]bool `json:"first_time,omitempty"`
}

func (s *server) handlePlanShards(w http.ResponseWriter, r *http.Request) {
	var req planReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body: "+err.Error())
		return
	}
	var plan shards.Plan
	switch {
	case req.TargetShards > 0:
		plan = shards.MinCostAtLeastShards(s.packs, req.TargetShards, req.FirstTime)
	case req.BudgetCents > 0:
		plan = shards.MaxShardsUnderBudget(s.packs, req.BudgetCents, req.FirstTime)
	default:
		badRequest(w, "one of target_shards or budget_cents is required")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		badRequest(w, "run archive is not configured")
		return
	}
	if id := r.URL.Query().Get("id"); id != "" {
		run, err := s.runs.GetRun(id)
		if err != nil {
			writeJSON(w, http.StatusNotFound, errResp{Err: "run not found"})
			return
		}
		writeJSON(w, http.StatusOK, run)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := s.runs.ListRuns(limit)
	if err != nil {
		s.log.Error("listing runs", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errResp{Err: "failed to list runs"})
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func main() {
	configPath := flag.String("config", "", "path to config YAML (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		println("config:", err.Error())
		os.Exit(1)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		println("logger:", err.Error())
		os.Exit(1)
	}
	defer logger.Sync()

	var source catalog.Source
	if cfg.Catalog.Dir != "" {
		loader := catalog.NewLoader(cfg.Catalog.Dir)
		watcher := catalog.NewDirWatcher(loader.Paths().ModulesDir(), cfg.Catalog.WatchInterval, func(path string) {
			logger.Info("catalog file changed, reloading", zap.String("path", path))
			loader.Invalidate()
		})
		watcher.Start()
		defer watcher.Stop()
		source = loader
	} else {
		logger.Info("no catalog dir configured, using builtin catalog")
		source = catalog.BuiltinSource()
	}

	var runs *store.Store
	if cfg.Store.Path != "" {
		runs, err = store.Open(cfg.Store.Path)
		if err != nil {
			logger.Fatal("opening run archive", zap.Error(err))
		}
		defer runs.Close()
	}

	s := &server{
		cfg:      cfg,
		log:      logger,
		catalogs: source,
		runs:     runs,
		packs:    shards.DefaultCatalog(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /simulate", s.handleSimulate)
	mux.HandleFunc("POST /simulate_single", s.handleSimulateSingle)
	mux.HandleFunc("POST /plan_shards", s.handlePlanShards)
	mux.HandleFunc("GET /catalog", s.handleCatalog)
	mux.HandleFunc("GET /runs", s.handleRuns)
	mux.HandleFunc("GET /healthz", handleHealthz)

	logger.Info("listening", zap.String("addr", cfg.Server.Addr()))
	if err := http.ListenAndServe(cfg.Server.Addr(), mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server", zap.Error(err))
	}
}
