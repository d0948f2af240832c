// Package store is the explicit save-result boundary for simulation runs:
// nothing is persisted unless a caller asks for it.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/towertracking/reroll-backend/internal/reroll"
)

type Store struct {
	db *sql.DB
}

// Run is one archived simulation batch.
type Run struct {
	ID         string                   `json:"id"`
	ModuleType string                   `json:"module_type"`
	Iterations int                      `json:"iterations"`
	Config     reroll.CalculatorConfig  `json:"config"`
	Results    reroll.SimulationResults `json:"results"`
	CreatedAt  time.Time                `json:"created_at"`
}

// RunSummary is the listing row: everything but the payloads.
type RunSummary struct {
	ID            string    `json:"id"`
	ModuleType    string    `json:"module_type"`
	Iterations    int       `json:"iterations"`
	MeanShardCost float64   `json:"mean_shard_cost"`
	CreatedAt     time.Time `json:"created_at"`
}

// Open initializes the SQLite database and creates tables.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		module_type TEXT NOT NULL,
		iterations INTEGER NOT NULL,
		mean_shard_cost REAL NOT NULL,
		config_json TEXT NOT NULL,
		results_json TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_module_type ON runs(module_type);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun archives one batch and returns its generated run id.
func (s *Store) SaveRun(cfg reroll.CalculatorConfig, res reroll.SimulationResults) (string, error) {
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	resJSON, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("encode results: %w", err)
	}
	id := uuid.New().String()
	_, err = s.db.Exec(`
		INSERT INTO runs (id, module_type, iterations, mean_shard_cost, config_json, results_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, cfg.ModuleType, res.RunCount, res.ShardCost.Mean,
		string(cfgJSON), string(resJSON), time.Now().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// GetRun loads one archived run by id.
func (s *Store) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow(`
		SELECT id, module_type, iterations, config_json, results_json, created_at
		FROM runs WHERE id = ?`, id)

	var (
		run       Run
		cfgJSON   string
		resJSON   string
		createdAt int64
	)
	if err := row.Scan(&run.ID, &run.ModuleType, &run.Iterations, &cfgJSON, &resJSON, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(cfgJSON), &run.Config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := json.Unmarshal([]byte(resJSON), &run.Results); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	run.CreatedAt = time.Unix(createdAt, 0)
	return &run, nil
}

// ListRuns returns the newest runs first, capped at limit.
func (s *Store) ListRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, module_type, iterations, mean_shard_cost, created_at
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			r         RunSummary
			createdAt int64
		)
		if err := rows.Scan(&r.ID, &r.ModuleType, &r.Iterations, &r.MeanShardCost, &createdAt); err != nil {
			return nil, err
		}
		r.CreatedAt = time.Unix(createdAt, 0)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Close() error { return s.db.Close() }
