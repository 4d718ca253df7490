package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netflow/internal/bench"
	"netflow/internal/engine"
	"netflow/internal/graph"
)

func solvedNetwork(t *testing.T) *graph.ResidualGraph {
	t.Helper()
	g := graph.MustNewResidualGraph(4)
	require.NoError(t, g.AddEdge(0, 1, 3))
	require.NoError(t, g.AddEdge(0, 2, 2))
	require.NoError(t, g.AddEdge(1, 2, 5))
	require.NoError(t, g.AddEdge(1, 3, 2))
	require.NoError(t, g.AddEdge(2, 3, 3))
	return g
}

func TestConsoleReporter_PrintSummary(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleReporter(&buf)

	r.PrintSummary(&Summary{
		InputFile:  "bridge_1.txt",
		Nodes:      4,
		Edges:      5,
		Source:     0,
		Sink:       3,
		MaxFlow:    4,
		Iterations: 3,
		Algorithm:  "Edmonds-Karp",
		ParseTime:  2 * time.Millisecond,
		SolveTime:  5 * time.Millisecond,
	})

	out := buf.String()
	assert.Contains(t, out, "Input file: bridge_1.txt")
	assert.Contains(t, out, "Maximum flow: 4")
	assert.Contains(t, out, "Number of nodes: 4")
	assert.Contains(t, out, "Number of edges: 5")
	assert.Contains(t, out, "Augmenting paths: 3")
	assert.Contains(t, out, "Total time (parsing + algorithm): 7ms")
	assert.Contains(t, out, "Average edges per node: 1.25")
}

func TestConsoleReporter_PrintPaths(t *testing.T) {
	paths := []engine.PathWithFlow{
		{Nodes: []int{0, 1, 3}, Flow: 2},
		{Nodes: []int{0, 2, 3}, Flow: 2},
	}

	var buf bytes.Buffer
	r := NewConsoleReporter(&buf)

	// Quiet by default.
	r.PrintPaths(paths)
	assert.Empty(t, buf.String())

	r.Verbose = true
	r.PrintPaths(paths)
	out := buf.String()
	assert.Contains(t, out, "Iteration 1: path 0 -> 1 -> 3, bottleneck 2, total flow 2")
	assert.Contains(t, out, "Iteration 2: path 0 -> 2 -> 3, bottleneck 2, total flow 4")
}

func TestConsoleReporter_PrintEdgeFlows(t *testing.T) {
	g := solvedNetwork(t)
	result := engine.EdmondsKarp(g, 0, 3, nil)
	require.Equal(t, int64(5), result.MaxFlow)

	var buf bytes.Buffer
	r := NewConsoleReporter(&buf)
	r.Verbose = true
	r.PrintEdgeFlows(g)

	out := buf.String()
	assert.Contains(t, out, "Edge flows:")
	assert.Contains(t, out, "1 -> 3: 2/2")
}

func TestConsoleReporter_EdgeLimit(t *testing.T) {
	g := solvedNetwork(t)
	engine.EdmondsKarp(g, 0, 3, nil)

	var buf bytes.Buffer
	r := NewConsoleReporter(&buf)
	r.Verbose = true
	r.EdgeLimit = 1
	r.PrintEdgeFlows(g)

	assert.Contains(t, buf.String(), "more edges omitted")
}

func TestConsoleReporter_PrintMinCut(t *testing.T) {
	g := solvedNetwork(t)
	engine.EdmondsKarp(g, 0, 3, nil)

	var buf bytes.Buffer
	r := NewConsoleReporter(&buf)
	r.PrintMinCut(engine.ComputeMinCut(g, 0))

	out := buf.String()
	assert.Contains(t, out, "Minimum cut (capacity 5):")
}

func TestConsoleReporter_PrintFileMenu(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleReporter(&buf)
	r.PrintFileMenu([]string{"networks/bridge_1.txt", "networks/ladder_2.txt"})

	out := buf.String()
	assert.Contains(t, out, "1. bridge_1.txt")
	assert.Contains(t, out, "2. ladder_2.txt")
}

func TestConsoleReporter_PrintBenchmark(t *testing.T) {
	stats := &bench.Stats{
		Runs:   3,
		Times:  []time.Duration{time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond},
		Mean:   2 * time.Millisecond,
		StdDev: 816 * time.Microsecond,
		Min:    time.Millisecond,
		Max:    3 * time.Millisecond,
	}

	var buf bytes.Buffer
	r := NewConsoleReporter(&buf)
	r.PrintBenchmark(stats)

	out := buf.String()
	assert.Contains(t, out, "Running benchmark (3 iterations)")
	assert.Contains(t, out, "Iteration 2: 2ms")
	assert.Contains(t, out, "Average execution time: 2ms")
	assert.Contains(t, out, "Minimum time: 1ms")
	assert.Contains(t, out, "Maximum time: 3ms")
}
