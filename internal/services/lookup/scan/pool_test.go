package scan

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestPool_RunsEverythingAndBoundsConcurrency(t *testing.T) {
	const workers = 3
	p := NewPool(workers, workers)
	defer p.Close()

	var inFlight, peak, done atomic.Int64
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		p.Submit(func() {
			defer wg.Done()
			n := inFlight.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			done.Add(1)
			inFlight.Add(-1)
		})
	}
	wg.Wait()

	if done.Load() != 50 {
		t.Fatalf("done = %d, want 50", done.Load())
	}
	if p := peak.Load(); p > workers {
		t.Fatalf("peak concurrency = %d, want <= %d", p, workers)
	}
}

func TestPool_CloseDrains(t *testing.T) {
	p := NewPool(2, 4)
	var done atomic.Int64
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		p.Submit(func() { defer wg.Done(); done.Add(1) })
	}
	p.Close() // waits for workers
	wg.Wait()
	if done.Load() != 8 {
		t.Fatalf("done = %d, want 8", done.Load())
	}
}
