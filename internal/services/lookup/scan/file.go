package scan

import (
	"os"
	"sync"

	"bighole/internal/core/keynorm"
	"bighole/internal/platform/logger"
	"bighole/internal/services/lookup/domain"
)

// chunkResult is the explicit per-task outcome, success with matches or a
// contained failure; failures never abort sibling chunks
type chunkResult struct {
	matches []domain.Match
	err     error
}

// scanFile plans one file and runs its chunk scans under a semaphore sized
// to the chunk count, then flattens whatever the chunks produced
// Every failure is contained here: a missing file skips silently, a failed
// chunk logs and contributes zero matches
func (e *Engine) scanFile(log *logger.Logger, path string, vs keynorm.VariantSet) []domain.Match {
	chunks, err := Plan(path, e.cfg.ChunksPerFile)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("file", path).Msg("plan failed, skipping file")
		}
		return nil
	}
	if len(chunks) == 0 {
		return nil
	}

	out := make([]chunkResult, len(chunks))
	sem := make(chan struct{}, len(chunks))
	var wg sync.WaitGroup

	for i, c := range chunks {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, c domain.Chunk) {
			defer func() { <-sem; wg.Done() }()
			ms, err := ScanChunk(path, c, vs)
			out[i] = chunkResult{matches: ms, err: err}
		}(i, c)
	}
	wg.Wait()

	var flat []domain.Match
	for i := range out {
		if out[i].err != nil {
			log.Error().Err(out[i].err).
				Str("file", path).
				Int("chunk_start", chunks[i].Start).
				Int("chunk_end", chunks[i].End).
				Msg("chunk scan failed, partial results kept")
		}
		flat = append(flat, out[i].matches...)
	}
	return flat
}
