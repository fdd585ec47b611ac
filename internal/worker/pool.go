// Package worker provides a bounded pool for parallel per-file processing.
package worker

import (
	"context"
	"sync"
)

// Job is one indexed unit of batch work. Jobs never fail the pool; any
// failure is folded into the Result they produce.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the indexed outcome of a job. The index ties a result back to
// its position in the sorted input, so callers can reassemble deterministic
// order from out-of-order completions.
type Result interface {
	Index() int
}

// Pool fans indexed jobs out to a fixed number of workers and funnels their
// results into a single channel. Usage: Start, Submit from one goroutine,
// Close when done submitting, range over Results.
type Pool struct {
	workers int
	jobs    chan Job
	results chan Result
	wg      sync.WaitGroup
}

// NewPool creates a pool with the given number of workers, minimum 1.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{
		workers: workers,
		jobs:    make(chan Job, workers*2),
		results: make(chan Result, workers*2),
	}
}

// Start launches the workers. The results channel closes after Close has
// been called and every submitted job has finished.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
	go func() {
		p.wg.Wait()
		close(p.results)
	}()
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()

	for job := range p.jobs {
		select {
		case <-ctx.Done():
			// Drain without executing so Close still unblocks Submit.
			continue
		default:
		}
		p.results <- job.Execute(ctx)
	}
}

// Submit queues a job. It blocks when all workers are busy and the queue is
// full, which bounds in-flight isolation units to the pool size.
func (p *Pool) Submit(job Job) {
	p.jobs <- job
}

// Close signals that no more jobs will be submitted.
func (p *Pool) Close() {
	close(p.jobs)
}

// Results returns the channel of completed results.
func (p *Pool) Results() <-chan Result {
	return p.results
}
