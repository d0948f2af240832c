package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DirWatcher polls the modules directory for changed YAML files and triggers
// a callback on change. Poll-based on purpose: catalog edits are rare and
// this avoids platform-specific watch plumbing.
type DirWatcher struct {
	Dir      string
	Interval time.Duration
	onChange func(string) // called with the path that changed

	stopCh    chan struct{}
	lastMTime map[string]time.Time
}

// NewDirWatcher creates a watcher over dir with the given poll interval.
func NewDirWatcher(dir string, interval time.Duration, onChange func(string)) *DirWatcher {
	return &DirWatcher{
		Dir:       dir,
		Interval:  interval,
		onChange:  onChange,
		stopCh:    make(chan struct{}),
		lastMTime: make(map[string]time.Time),
	}
}

// Start begins polling in a goroutine.
func (w *DirWatcher) Start() {
	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		// prime cache
		w.scan(true)
		for {
			select {
			case <-ticker.C:
				w.scan(false)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher.
func (w *DirWatcher) Stop() {
	close(w.stopCh)
}

// scan checks mtimes of every .yaml file in the directory and invokes
// onChange for files that changed (or appeared) since the last scan.
func (w *DirWatcher) scan(prime bool) {
	entries, err := os.ReadDir(w.Dir)
	if err != nil {
		// missing dir: nothing to watch this tick
		return
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		p := filepath.Join(w.Dir, e.Name())
		fi, err := e.Info()
		if err != nil {
			continue
		}
		mt := fi.ModTime()
		last, ok := w.lastMTime[p]
		if !ok {
			w.lastMTime[p] = mt
			if !prime && w.onChange != nil {
				w.onChange(p)
			}
			continue
		}
		if mt.After(last) {
			w.lastMTime[p] = mt
			if !prime && w.onChange != nil {
				w.onChange(p)
			}
		}
	}
}
