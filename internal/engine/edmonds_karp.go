package engine

import (
	"context"

	"netflow/internal/graph"
)

// =============================================================================
// Edmonds-Karp Algorithm
// =============================================================================
//
// The Edmonds-Karp algorithm is an implementation of the Ford-Fulkerson method
// using BFS to find augmenting paths. By always choosing the shortest augmenting
// path (in terms of number of edges), it guarantees polynomial time complexity.
//
// Time Complexity: O(V × E²)
// Space Complexity: O(V + E)
//
// The run proceeds in rounds: search for a shortest augmenting path, compute
// its bottleneck, push the bottleneck along the path, accumulate it into the
// total. The run is done when BFS no longer reaches the sink; the accumulated
// total is then maximal and integral, since capacities are integers and every
// bottleneck is a positive integer.
//
// References:
//   - Edmonds, J. & Karp, R.M. (1972). "Theoretical improvements in
//     algorithmic efficiency for network flow problems"
// =============================================================================

// AlgorithmEdmondsKarp is the canonical name of the algorithm, used in
// metrics labels and cache keys.
const AlgorithmEdmondsKarp = "edmonds_karp"

// checkInterval controls how often the context is polled inside the
// augmentation loop.
const checkInterval = 100

// PathWithFlow describes one augmenting path found during a run.
type PathWithFlow struct {
	// Nodes is the node sequence from source to sink.
	Nodes []int

	// Flow is the bottleneck pushed along this path.
	Flow int64
}

// EdmondsKarpResult contains the result of the Edmonds-Karp algorithm.
type EdmondsKarpResult struct {
	// MaxFlow is the maximum flow value computed.
	MaxFlow int64

	// Iterations is the number of augmenting paths found.
	Iterations int64

	// Paths contains the augmenting paths found (if ReturnPaths option is enabled).
	Paths []PathWithFlow

	// Canceled indicates whether the operation was canceled via context.
	Canceled bool

	// LimitReached indicates the iteration limit stopped the run before
	// the sink became unreachable.
	LimitReached bool
}

// EdmondsKarp executes the Edmonds-Karp algorithm without context cancellation.
//
// Parameters:
//   - g: The residual graph (will be modified)
//   - source: The source node
//   - sink: The sink node
//   - options: Solver options (nil for defaults)
func EdmondsKarp(g *graph.ResidualGraph, source, sink int, options *Options) *EdmondsKarpResult {
	return EdmondsKarpWithContext(context.Background(), g, source, sink, options)
}

// EdmondsKarpWithContext executes the Edmonds-Karp algorithm with context
// cancellation.
//
// The caller must have validated the graph and endpoints; this function
// assumes 0 <= source, sink < g.NodeCount() and source != sink. Nothing
// inside the loop can fail: every BFS either finds a path with positive
// bottleneck or ends the run.
func EdmondsKarpWithContext(ctx context.Context, g *graph.ResidualGraph, source, sink int, options *Options) *EdmondsKarpResult {
	if options == nil {
		options = DefaultOptions()
	}

	var maxFlow int64
	var iterations int64
	var paths []PathWithFlow

	for {
		if options.MaxIterations > 0 && iterations >= options.MaxIterations {
			return &EdmondsKarpResult{
				MaxFlow:      maxFlow,
				Iterations:   iterations,
				Paths:        paths,
				LimitReached: true,
			}
		}

		// Periodic context check
		if iterations%checkInterval == 0 {
			select {
			case <-ctx.Done():
				return &EdmondsKarpResult{
					MaxFlow:    maxFlow,
					Iterations: iterations,
					Paths:      paths,
					Canceled:   true,
				}
			default:
			}
		}

		// Find shortest augmenting path using BFS
		bfsResult := graph.BFS(g, source, sink)
		if !bfsResult.Found {
			break
		}

		// Bottleneck is positive by construction: BFS only traverses
		// edges with residual capacity.
		bottleneck := graph.BottleneckOnPath(g, bfsResult.ParentEdge, source, sink)

		// Augment flow along the path
		graph.AugmentParentChain(g, bfsResult.ParentEdge, source, sink, bottleneck)

		maxFlow += bottleneck
		iterations++

		if options.ReturnPaths {
			paths = append(paths, PathWithFlow{
				Nodes: graph.ReconstructPath(g, bfsResult.ParentEdge, source, sink),
				Flow:  bottleneck,
			})
		}
	}

	return &EdmondsKarpResult{
		MaxFlow:    maxFlow,
		Iterations: iterations,
		Paths:      paths,
	}
}
