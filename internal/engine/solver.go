// Package engine runs the max-flow computation over a residual graph.
//
// The entry point is Solve, which validates its input, applies the
// configured timeout and executes Edmonds-Karp. SolverPool adds a
// bounded-concurrency layer on top for batch workloads.
package engine

import (
	"context"
	"sync"
	"time"

	"netflow/internal/graph"
	"netflow/pkg/apperror"
)

// =============================================================================
// Sentinel Errors
// =============================================================================

// Validation and termination errors returned by Solve. All of them are
// apperror values, so callers can match either via errors.Is or via
// apperror.Code.
var (
	ErrNilGraph         = apperror.ErrNilGraph
	ErrInvalidSource    = apperror.ErrInvalidSource
	ErrInvalidSink      = apperror.ErrInvalidSink
	ErrSourceEqualsSink = apperror.ErrSourceEqualsSink
	ErrTimeout          = apperror.ErrTimeout
	ErrCanceled         = apperror.New(apperror.CodeCanceled, "solve canceled")
	ErrIterationLimit   = apperror.ErrIterationLimit
)

// =============================================================================
// Options
// =============================================================================

// Options configures a solver run.
type Options struct {
	// Timeout for the entire solve operation. Zero disables the timeout.
	Timeout time.Duration

	// MaxIterations limits the number of augmenting paths.
	// Zero means unlimited.
	MaxIterations int64

	// ReturnPaths controls whether augmenting paths are collected.
	// Collecting paths costs one allocation per iteration.
	ReturnPaths bool
}

// DefaultOptions returns solver options with sensible defaults.
func DefaultOptions() *Options {
	return &Options{
		Timeout:       30 * time.Second,
		MaxIterations: 0,
		ReturnPaths:   true,
	}
}

// WithTimeout sets the solve timeout.
func (o *Options) WithTimeout(timeout time.Duration) *Options {
	o.Timeout = timeout
	return o
}

// WithMaxIterations sets the iteration limit.
func (o *Options) WithMaxIterations(max int64) *Options {
	o.MaxIterations = max
	return o
}

// WithReturnPaths controls augmenting path collection.
func (o *Options) WithReturnPaths(enabled bool) *Options {
	o.ReturnPaths = enabled
	return o
}

// =============================================================================
// Result
// =============================================================================

// Status classifies how a solve run ended.
type Status string

const (
	// StatusOptimal means the run terminated normally: the sink is no
	// longer reachable in the residual graph and the flow is maximal.
	StatusOptimal Status = "optimal"

	// StatusCanceled means the context was canceled or the timeout
	// expired before termination.
	StatusCanceled Status = "canceled"

	// StatusLimit means the iteration limit stopped the run early.
	StatusLimit Status = "iteration_limit"
)

// Result contains the outcome of a solve run.
type Result struct {
	// MaxFlow is the computed maximum flow value.
	MaxFlow int64

	// Iterations is the number of augmenting paths found.
	Iterations int64

	// Paths contains the augmenting paths (if Options.ReturnPaths).
	Paths []PathWithFlow

	// Status classifies the termination.
	Status Status

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// =============================================================================
// Validation
// =============================================================================

// validate performs fail-fast checks before the first BFS.
func validate(g *graph.ResidualGraph, source, sink int) error {
	if g == nil {
		return ErrNilGraph
	}
	if !g.ContainsNode(source) {
		return ErrInvalidSource
	}
	if !g.ContainsNode(sink) {
		return ErrInvalidSink
	}
	if source == sink {
		return ErrSourceEqualsSink
	}
	return nil
}

// =============================================================================
// Solve
// =============================================================================

// Solve computes the maximum flow from source to sink.
//
// The graph is modified in place: after a successful run its edges
// carry the final flow assignment. Call g.Reset() to solve again, or
// clone the graph beforehand to keep the original untouched.
//
// A graph with no path from source to sink is not an error; the result
// is a zero flow with zero iterations and StatusOptimal.
func Solve(ctx context.Context, g *graph.ResidualGraph, source, sink int, options *Options) (*Result, error) {
	if options == nil {
		options = DefaultOptions()
	}
	if err := validate(g, source, sink); err != nil {
		return nil, err
	}

	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	start := time.Now()
	raw := EdmondsKarpWithContext(ctx, g, source, sink, options)
	duration := time.Since(start)

	result := &Result{
		MaxFlow:    raw.MaxFlow,
		Iterations: raw.Iterations,
		Paths:      raw.Paths,
		Status:     StatusOptimal,
		Duration:   duration,
	}

	switch {
	case raw.Canceled:
		result.Status = StatusCanceled
		if ctx.Err() == context.DeadlineExceeded {
			return result, ErrTimeout
		}
		return result, ErrCanceled
	case raw.LimitReached:
		result.Status = StatusLimit
		return result, ErrIterationLimit
	}

	return result, nil
}

// =============================================================================
// Solver Pool
// =============================================================================

// SolverPool bounds the number of concurrent solve operations and
// reuses graph clones through the global graph pool.
type SolverPool struct {
	workers   chan struct{}
	graphPool *graph.GraphPool
}

// NewSolverPool creates a solver pool with the given concurrency limit.
// Limits below one are raised to one.
func NewSolverPool(maxConcurrency int) *SolverPool {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &SolverPool{
		workers:   make(chan struct{}, maxConcurrency),
		graphPool: graph.GetPool(),
	}
}

// Acquire blocks until a worker slot is available or the context is done.
func (p *SolverPool) Acquire(ctx context.Context) error {
	select {
	case p.workers <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a worker slot.
func (p *SolverPool) Release() {
	<-p.workers
}

// SolvePooled runs Solve on a pooled clone of the graph, leaving the
// original untouched. The clone is released back to the pool after the
// run, so the returned result never references pooled storage.
func (p *SolverPool) SolvePooled(ctx context.Context, g *graph.ResidualGraph, source, sink int, options *Options) (*Result, error) {
	if err := p.Acquire(ctx); err != nil {
		return nil, err
	}
	defer p.Release()

	if err := validate(g, source, sink); err != nil {
		return nil, err
	}

	clone := g.CloneToPooled(p.graphPool)
	defer p.graphPool.ReleaseGraph(clone)
	clone.Reset()

	return Solve(ctx, clone, source, sink, options)
}

// BatchTask describes one solve in a batch.
type BatchTask struct {
	Graph   *graph.ResidualGraph
	Source  int
	Sink    int
	Options *Options
}

// BatchResult pairs a batch task index with its outcome.
type BatchResult struct {
	Index  int
	Result *Result
	Err    error
}

// BatchSolve runs all tasks through the pool and returns results in
// task order. Individual task failures are reported per result and do
// not stop the batch.
func (p *SolverPool) BatchSolve(ctx context.Context, tasks []BatchTask) []BatchResult {
	results := make([]BatchResult, len(tasks))

	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func(idx int, t BatchTask) {
			defer wg.Done()
			res, err := p.SolvePooled(ctx, t.Graph, t.Source, t.Sink, t.Options)
			results[idx] = BatchResult{Index: idx, Result: res, Err: err}
		}(i, task)
	}
	wg.Wait()

	return results
}

// =============================================================================
// Algorithm Info
// =============================================================================

// AlgorithmInfo describes the algorithm for reports and diagnostics.
type AlgorithmInfo struct {
	Name        string
	DisplayName string
	Complexity  string
	Description string
}

// Info returns metadata about the Edmonds-Karp implementation.
func Info() AlgorithmInfo {
	return AlgorithmInfo{
		Name:        AlgorithmEdmondsKarp,
		DisplayName: "Edmonds-Karp",
		Complexity:  "O(V × E²)",
		Description: "Ford-Fulkerson with BFS shortest augmenting paths",
	}
}
