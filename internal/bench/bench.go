// Package bench measures solver performance over repeated runs of the
// same network.
package bench

import (
	"context"
	"math"
	"time"

	"netflow/internal/engine"
	"netflow/internal/graph"
	"netflow/pkg/apperror"
)

// Stats aggregates timing over a benchmark run.
type Stats struct {
	// Runs is the number of completed solver runs.
	Runs int

	// Times holds the duration of each run in order.
	Times []time.Duration

	// MaxFlow is the flow value, identical across runs.
	MaxFlow int64

	Mean   time.Duration
	StdDev time.Duration
	Min    time.Duration
	Max    time.Duration
}

// Run executes the solver the given number of times over the same
// graph, resetting flow between runs, and aggregates wall-clock
// timings.
//
// Path collection is disabled regardless of the passed options: the
// benchmark measures the algorithm, not result assembly. The graph is
// left in its solved state after the final run.
func Run(ctx context.Context, g *graph.ResidualGraph, source, sink int, options *engine.Options, runs int) (*Stats, error) {
	if runs < 1 {
		return nil, apperror.Newf(apperror.CodeInvalidArgument,
			"benchmark needs at least 1 run, got %d", runs)
	}
	if options == nil {
		options = engine.DefaultOptions()
	}
	opts := *options
	opts.ReturnPaths = false

	stats := &Stats{
		Runs:  runs,
		Times: make([]time.Duration, 0, runs),
	}

	for i := 0; i < runs; i++ {
		g.Reset()

		result, err := engine.Solve(ctx, g, source, sink, &opts)
		if err != nil {
			return nil, err
		}

		stats.MaxFlow = result.MaxFlow
		stats.Times = append(stats.Times, result.Duration)
	}

	stats.aggregate()
	return stats, nil
}

// aggregate computes mean, standard deviation and extrema.
func (s *Stats) aggregate() {
	if len(s.Times) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Times[0]
	s.Max = s.Times[0]
	for _, t := range s.Times {
		total += t
		if t < s.Min {
			s.Min = t
		}
		if t > s.Max {
			s.Max = t
		}
	}
	mean := float64(total) / float64(len(s.Times))
	s.Mean = time.Duration(mean)

	var variance float64
	for _, t := range s.Times {
		d := float64(t) - mean
		variance += d * d
	}
	variance /= float64(len(s.Times))
	s.StdDev = time.Duration(math.Sqrt(variance))
}
