package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for default/module-type catalog files.
type Paths struct {
	BaseDir string // base directory, e.g., /opt/app/config
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "modules", "default.yaml")
}
func (p Paths) ModulePath(moduleType string) string {
	return filepath.Join(p.BaseDir, "modules", moduleType+".yaml")
}
func (p Paths) ModulesDir() string {
	return filepath.Join(p.BaseDir, "modules")
}

// Loader reads YAML catalogs and merges default → module type.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]*Catalog // key: module type
}

// NewLoader creates a catalog loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]*Catalog),
	}
}

// Load returns the merged, normalized catalog for a module type. The default
// file must exist; the module-type file is optional and overrides it.
func (l *Loader) Load(moduleType string) (*Catalog, error) {
	l.mu.RLock()
	if c, ok := l.cache[moduleType]; ok {
		l.mu.RUnlock()
		return c, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return nil, fmt.Errorf("read default catalog: %w", err)
	}
	modCfg, _ := readYAML(l.paths.ModulePath(moduleType)) // module file may not exist

	merged := mergeRaw(defCfg, modCfg)
	if err := ValidateRaw(merged); err != nil {
		return nil, fmt.Errorf("catalog %q: %w", moduleType, err)
	}
	c, err := Normalize(merged, moduleType)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[moduleType] = c
	l.mu.Unlock()
	return c, nil
}

// Paths exposes the loader's file layout (used to point the watcher at the
// modules directory).
func (l *Loader) Paths() Paths { return l.paths }

// Invalidate clears the loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]*Catalog)
}

// readYAML loads a YAML file into RawCatalog. Missing files return zero cfg, no error.
func readYAML(path string) (RawCatalog, error) {
	var cfg RawCatalog
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawCatalog{}, nil
		}
		return RawCatalog{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawCatalog{}, err
	}
	return cfg, nil
}

// mergeRaw overlays 'b' onto 'a': scalars override where non-zero, effects
// merge by id (b's entry replaces a's, new ids append in b's order).
func mergeRaw(a, b RawCatalog) RawCatalog {
	out := a
	out.Effects = append([]EffectConfig(nil), a.Effects...)

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}
	if b.SlotCount != 0 {
		out.SlotCount = b.SlotCount
	}

	idx := make(map[string]int, len(out.Effects))
	for i, e := range out.Effects {
		idx[e.ID] = i
	}
	for _, e := range b.Effects {
		if i, ok := idx[e.ID]; ok {
			out.Effects[i] = e
		} else {
			idx[e.ID] = len(out.Effects)
			out.Effects = append(out.Effects, e)
		}
	}
	return out
}
