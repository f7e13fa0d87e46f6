// Package worker provides a worker pool that replays move scripts in
// parallel.
package worker

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chess-rules-go/internal/replay"
	"github.com/lgbarn/chess-rules-go/internal/script"
)

// WorkItem represents a script to be replayed.
type WorkItem struct {
	Script *script.Script
	Index  int // Original index for tracking
}

// ProcessResult represents the result of replaying a script.
type ProcessResult struct {
	Script *script.Script
	Index  int
	Report *replay.Report // nil when Error is set
	Error  error
}

// ProcessFunc is the function signature for processing a work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool manages a pool of workers. Each game lives inside a single worker,
// so no engine state is shared between goroutines.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopFlag    int32 // Atomic flag for early termination
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a worker pool using functional options.
// Default: 1 worker, buffer size of 10.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes items from the work channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit submits a work item for processing.
// This may block if the work channel buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// Stop signals workers to stop processing new items.
// Items already in the channel will be drained but not processed.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish.
// After calling Close, the result channel will be closed when all workers are done.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// ReplayFunc returns a ProcessFunc that replays each script with opts.
func ReplayFunc(opts replay.Options) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		report, err := replay.Run(item.Script, opts)
		return ProcessResult{Script: item.Script, Index: item.Index, Report: report, Error: err}
	}
}

// RunAll replays scripts on a pool and returns the results in script
// order. When ctx is cancelled the pool stops taking new scripts; the
// results gathered so far are returned with ctx's error.
func RunAll(ctx context.Context, scripts []*script.Script, opts replay.Options, poolOpts ...PoolOption) ([]ProcessResult, error) {
	pool := NewPool(ReplayFunc(opts), poolOpts...)
	pool.Start()

	go func() {
		defer pool.Close()
		for i, s := range scripts {
			if ctx.Err() != nil {
				pool.Stop()
				return
			}
			pool.Submit(WorkItem{Script: s, Index: i})
		}
	}()

	// results is only appended to from this consumer goroutine.
	results := make([]ProcessResult, 0, len(scripts))
	for result := range pool.Results() {
		results = append(results, result)
	}
	slices.SortFunc(results, func(a, b ProcessResult) int {
		return cmp.Compare(a.Index, b.Index)
	})
	return results, ctx.Err()
}
