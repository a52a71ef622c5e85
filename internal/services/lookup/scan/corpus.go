package scan

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"bighole/internal/core/keynorm"
	"bighole/internal/platform/logger"
	"bighole/internal/services/lookup/domain"
)

// Config for the scan engine
// Pool sizes are fixed at construction, not adaptive; a corpus larger than
// FileWorkers queues rather than spawning unbounded workers
type Config struct {
	// Dir is scanned for additional corpus files on every call
	Dir string
	// Manifest lists fixed corpus files, relative entries resolve under Dir
	Manifest []string
	// Ext filters discovered files, defaults to ".csv"
	Ext string
	// ChunksPerFile bounds cross-chunk concurrency within one file
	ChunksPerFile int
	// FileWorkers bounds cross-file concurrency for the whole engine
	FileWorkers int
	// MaxResults caps the flattened result list per call
	MaxResults int
}

func (c Config) withDefaults() Config {
	if c.Ext == "" {
		c.Ext = ".csv"
	}
	if c.ChunksPerFile < 1 {
		c.ChunksPerFile = 8
	}
	if c.FileWorkers < 1 {
		c.FileWorkers = 8
	}
	if c.MaxResults < 1 {
		c.MaxResults = 100
	}
	return c
}

// Engine runs lookup calls against the file corpus
// It owns a long-lived file worker pool reused across calls, each call is
// an independent plan/execute/aggregate cycle with no persisted progress
type Engine struct {
	cfg  Config
	log  *logger.Logger
	pool *Pool
}

// NewEngine constructs an Engine and starts its worker pool
func NewEngine(cfg Config, log *logger.Logger) *Engine {
	cfg = cfg.withDefaults()
	if log == nil {
		log = logger.Named("scan")
	}
	return &Engine{
		cfg:  cfg,
		log:  log,
		pool: NewPool(cfg.FileWorkers, cfg.FileWorkers),
	}
}

// Close stops the worker pool, letting in-flight scans finish
func (e *Engine) Close() { e.pool.Close() }

// Search implements domain.SearcherPort over the file corpus
// It never fails: an empty term, an empty corpus, and no matches all yield
// an empty list, and contained task failures surface only in the log
func (e *Engine) Search(_ context.Context, q domain.Query) ([]domain.WireRecord, error) {
	vs := keynorm.Variants(q.Term, q.Kind)
	if vs.Empty() {
		return []domain.WireRecord{}, nil
	}

	log := e.log.With().
		Str("call_id", uuid.NewString()).
		Str("kind", string(q.Kind)).
		Logger()

	files := e.resolveCorpus(&log)
	if len(files) == 0 {
		return []domain.WireRecord{}, nil
	}

	// one slot per file task, written once by its task, merged after the wait
	results := make([][]domain.Match, len(files))
	var wg sync.WaitGroup
	for i, path := range files {
		wg.Add(1)
		e.pool.Submit(func() {
			defer wg.Done()
			results[i] = e.scanFile(&log, path, vs)
		})
	}
	wg.Wait()

	out := make([]domain.WireRecord, 0, e.cfg.MaxResults)
	var total int
	for i := range results {
		for _, m := range results[i] {
			total++
			if len(out) < e.cfg.MaxResults {
				out = append(out, domain.Wire(m.Record))
			}
		}
	}
	log.Debug().Int("files", len(files)).Int("matches", total).Int("returned", len(out)).Msg("scan complete")
	return out, nil
}

// Matches is Search without the wire mapping, keeping file and line
// provenance for callers that need per-row origin
func (e *Engine) Matches(_ context.Context, q domain.Query) []domain.Match {
	vs := keynorm.Variants(q.Term, q.Kind)
	if vs.Empty() {
		return nil
	}
	log := e.log.With().Str("call_id", uuid.NewString()).Logger()
	files := e.resolveCorpus(&log)

	results := make([][]domain.Match, len(files))
	var wg sync.WaitGroup
	for i, path := range files {
		wg.Add(1)
		e.pool.Submit(func() {
			defer wg.Done()
			results[i] = e.scanFile(&log, path, vs)
		})
	}
	wg.Wait()

	var flat []domain.Match
	for i := range results {
		flat = append(flat, results[i]...)
	}
	if len(flat) > e.cfg.MaxResults {
		flat = flat[:e.cfg.MaxResults]
	}
	return flat
}

// resolveCorpus re-derives the visible file set on every call: the fixed
// manifest unioned with matching files found in Dir, deduplicated by path
// and filtered to files that exist right now
// An unlistable directory falls back to the manifest alone
func (e *Engine) resolveCorpus(log *logger.Logger) []string {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		if st, err := os.Stat(path); err != nil || st.IsDir() {
			return
		}
		files = append(files, path)
	}

	for _, name := range e.cfg.Manifest {
		if !filepath.IsAbs(name) {
			name = filepath.Join(e.cfg.Dir, name)
		}
		add(name)
	}

	entries, err := os.ReadDir(e.cfg.Dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", e.cfg.Dir).Msg("corpus dir unlistable, using manifest only")
		return files
	}
	for _, ent := range entries {
		if ent.IsDir() || !strings.EqualFold(filepath.Ext(ent.Name()), e.cfg.Ext) {
			continue
		}
		add(filepath.Join(e.cfg.Dir, ent.Name()))
	}
	return files
}
