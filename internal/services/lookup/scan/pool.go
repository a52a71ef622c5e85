// Package scan implements the corpus scan engine: chunk planning, parallel
// chunk scanning, and aggregation of matches across files
package scan

import "sync"

// Pool is a long-lived bounded worker pool
// Workers are started once at construction and reused across search calls,
// submissions beyond the backlog block rather than spawning new goroutines
type Pool struct {
	tasks chan func()
	wg    sync.WaitGroup

	closeOnce sync.Once
}

// NewPool starts workers goroutines consuming a backlog-deep task queue
func NewPool(workers, backlog int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if backlog < 0 {
		backlog = 0
	}
	p := &Pool{tasks: make(chan func(), backlog)}
	for range workers {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for fn := range p.tasks {
				fn()
			}
		}()
	}
	return p
}

// Submit enqueues fn, blocking while the backlog is full
// Submitting after Close panics, callers own that ordering
func (p *Pool) Submit(fn func()) {
	p.tasks <- fn
}

// Close stops accepting work and waits for in-flight tasks to finish
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.tasks)
	})
	p.wg.Wait()
}
