// Package service orchestrates a solver run: cache lookup, the actual
// computation, metrics, tracing and optional history persistence.
package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"netflow/internal/engine"
	"netflow/internal/graph"
	"netflow/internal/history"
	"netflow/internal/parser"
	"netflow/pkg/cache"
	"netflow/pkg/config"
	"netflow/pkg/logger"
	"netflow/pkg/metrics"
	"netflow/pkg/telemetry"
)

// SolverService runs max-flow computations with the surrounding
// production concerns wired in. Cache and history are optional; a nil
// SolverCache or RunRepository disables the respective step.
type SolverService struct {
	cfg         *config.SolverConfig
	metrics     *metrics.Metrics
	solverCache *cache.SolverCache
	runs        history.RunRepository
	pool        *engine.SolverPool
}

// NewSolverService creates a service around the given configuration.
func NewSolverService(cfg *config.SolverConfig, solverCache *cache.SolverCache, runs history.RunRepository) *SolverService {
	return &SolverService{
		cfg:         cfg,
		metrics:     metrics.Get(),
		solverCache: solverCache,
		runs:        runs,
		pool:        engine.NewSolverPool(cfg.MaxConcurrency),
	}
}

// Pool exposes the concurrency-bounded solver pool for batch callers.
func (s *SolverService) Pool() *engine.SolverPool {
	return s.pool
}

// Output is the outcome of a service-level solve.
type Output struct {
	Result    *engine.Result
	FromCache bool

	// RunID is set when the run was persisted to history.
	RunID string
}

// Solve computes the maximum flow for a parsed network.
//
// The network's graph is solved in place so callers can report final
// edge flows. On a cache hit the graph is left untouched and the
// returned result carries no augmenting paths.
func (s *SolverService) Solve(ctx context.Context, network *parser.Network) (*Output, error) {
	ctx, span := telemetry.StartSpan(ctx, "SolverService.Solve",
		trace.WithAttributes(
			attribute.String("input", network.Name),
			attribute.String("algorithm", engine.AlgorithmEdmondsKarp),
		),
	)
	defer span.End()

	g := network.Graph
	networkHash := s.hashNetwork(network)

	if s.metrics != nil {
		s.metrics.RecordGraphSize("solve", g.NodeCount(), g.EdgeCount())
	}

	// Cache lookup
	if s.solverCache != nil {
		cached, found, err := s.solverCache.Get(ctx, networkHash, engine.AlgorithmEdmondsKarp)
		if err != nil {
			logger.Log.Warn("Cache lookup failed", "error", err)
		}
		if found {
			telemetry.AddEvent(ctx, "cache_hit",
				attribute.Int64("max_flow", cached.MaxFlow),
			)
			span.SetAttributes(attribute.Bool("cache_hit", true))
			if s.metrics != nil {
				s.metrics.RecordCacheOperation("get", "hit")
			}

			return &Output{
				Result: &engine.Result{
					MaxFlow:    cached.MaxFlow,
					Iterations: cached.Iterations,
					Status:     engine.Status(cached.Status),
				},
				FromCache: true,
			}, nil
		}
		if s.metrics != nil {
			s.metrics.RecordCacheOperation("get", "miss")
		}
	}
	span.SetAttributes(attribute.Bool("cache_hit", false))

	// Bound concurrency through the pool; the graph itself is solved
	// in place so the caller keeps the final flow assignment.
	if err := s.pool.Acquire(ctx); err != nil {
		return nil, err
	}
	result, err := engine.Solve(ctx, g, network.Source, network.Sink, s.options())
	s.pool.Release()

	if s.metrics != nil {
		success := err == nil
		var flow float64
		var elapsed time.Duration
		if result != nil {
			flow = float64(result.MaxFlow)
			elapsed = result.Duration
		}
		s.metrics.RecordSolveOperation(engine.AlgorithmEdmondsKarp, success, elapsed, flow)
		if result != nil {
			s.metrics.RecordSolveIterations(engine.AlgorithmEdmondsKarp, result.Iterations)
		}
	}

	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("max_flow", result.MaxFlow),
		attribute.Int64("iterations", result.Iterations),
	)

	// Populate the cache
	if s.solverCache != nil {
		entry := &cache.CachedSolveResult{
			MaxFlow:           result.MaxFlow,
			Status:            string(result.Status),
			Iterations:        result.Iterations,
			ComputationTimeMs: float64(result.Duration.Microseconds()) / 1000,
			FlowEdges:         flowEdges(g),
		}
		if err := s.solverCache.Set(ctx, networkHash, engine.AlgorithmEdmondsKarp, entry, 0); err != nil {
			logger.Log.Warn("Failed to cache solve result", "error", err)
		}
	}

	out := &Output{Result: result}

	// Persist to history
	if s.runs != nil {
		run := &history.Run{
			InputName:         network.Name,
			Algorithm:         engine.AlgorithmEdmondsKarp,
			MaxFlow:           result.MaxFlow,
			Iterations:        result.Iterations,
			NodeCount:         g.NodeCount(),
			EdgeCount:         g.EdgeCount(),
			ComputationTimeMs: float64(result.Duration.Microseconds()) / 1000,
		}
		if err := s.runs.Create(ctx, run); err != nil {
			logger.Log.Warn("Failed to persist run history", "error", err)
		} else {
			out.RunID = run.ID
		}
	}

	return out, nil
}

// options translates the solver configuration into engine options.
func (s *SolverService) options() *engine.Options {
	return &engine.Options{
		Timeout:       s.cfg.Timeout,
		MaxIterations: s.cfg.MaxIterations,
		ReturnPaths:   s.cfg.ReturnPaths,
	}
}

// hashNetwork builds the canonical cache hash for a network.
func (s *SolverService) hashNetwork(network *parser.Network) string {
	g := network.Graph
	specs := make([]cache.EdgeSpec, 0, g.EdgeCount())
	for _, i := range g.ForwardEdges() {
		e := g.Edge(i)
		specs = append(specs, cache.EdgeSpec{From: e.From, To: e.To, Capacity: e.Capacity})
	}
	return cache.NetworkHash(g.NodeCount(), network.Source, network.Sink, specs)
}

// flowEdges collects the flow-carrying original edges for caching.
func flowEdges(g *graph.ResidualGraph) []*cache.FlowEdgeCache {
	var edges []*cache.FlowEdgeCache
	for _, i := range g.ForwardEdges() {
		e := g.Edge(i)
		if e.Flow <= 0 {
			continue
		}
		var utilization float64
		if e.Capacity > 0 {
			utilization = float64(e.Flow) / float64(e.Capacity)
		}
		edges = append(edges, &cache.FlowEdgeCache{
			From:        e.From,
			To:          e.To,
			Flow:        e.Flow,
			Capacity:    e.Capacity,
			Utilization: utilization,
		})
	}
	return edges
}
