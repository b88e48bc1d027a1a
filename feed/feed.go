// Package feed reads the listing records exported by the external
// automation agent. Each platform exports one JSON file containing an
// ordered array of raw records; that file boundary is the only coupling to
// the agent's perception pipeline.
package feed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"smart-shopper/models"
	"smart-shopper/utils"
)

// Loader ingests agent feed files from a directory.
type Loader struct {
	dir            string
	maxConcurrency int
	logger         *utils.Logger
}

// NewLoader creates a Loader reading from dir with the given concurrency.
func NewLoader(dir string, maxConcurrency int, logger *utils.Logger) *Loader {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &Loader{dir: dir, maxConcurrency: maxConcurrency, logger: logger}
}

// Load reads every *.json feed file in the directory. Files are processed
// concurrently but results keep a deterministic order: files sorted by
// name, records in file order. A record without an explicit platform
// inherits the file's base name.
func (l *Loader) Load() ([]*models.RawListing, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("feed: read dir %q: %w", l.dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(l.dir, e.Name()))
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		l.logger.Warn("[feed] No feed files found in %s", l.dir)
		return nil, nil
	}

	results := make([][]*models.RawListing, len(paths))
	errs := make([]error, len(paths))
	var mu sync.Mutex

	pool := utils.NewWorkerPool(l.maxConcurrency, 0)
	for i, path := range paths {
		i, path := i, path
		pool.Submit(func() {
			records, err := l.loadFile(path)
			mu.Lock()
			results[i], errs[i] = records, err
			mu.Unlock()
		})
	}
	pool.Wait()

	var all []*models.RawListing
	for i, records := range results {
		if errs[i] != nil {
			return nil, errs[i]
		}
		all = append(all, records...)
	}

	l.logger.Info("[feed] Loaded %d records from %d feed files", len(all), len(paths))
	return all, nil
}

func (l *Loader) loadFile(path string) ([]*models.RawListing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("feed: read %q: %w", path, err)
	}

	var records []*models.RawListing
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("feed: parse %q: %w", path, err)
	}

	platform := strings.TrimSuffix(filepath.Base(path), ".json")
	now := time.Now()
	for _, r := range records {
		if r.Platform == "" {
			r.Platform = platform
		}
		if r.CollectedAt.IsZero() {
			r.CollectedAt = now
		}
	}

	l.logger.Debug("[feed] %s: %d records", path, len(records))
	return records, nil
}
