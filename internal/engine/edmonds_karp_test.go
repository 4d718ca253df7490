package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netflow/internal/graph"
)

type edgeSpec struct {
	from, to int
	capacity int64
}

func buildGraph(t *testing.T, n int, edges []edgeSpec) *graph.ResidualGraph {
	t.Helper()
	g := graph.MustNewResidualGraph(n)
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e.from, e.to, e.capacity))
	}
	return g
}

// classicNetwork is the textbook 4-node example with max flow 5.
func classicNetwork(t *testing.T) *graph.ResidualGraph {
	return buildGraph(t, 4, []edgeSpec{
		{0, 1, 3},
		{0, 2, 2},
		{1, 2, 5},
		{1, 3, 2},
		{2, 3, 3},
	})
}

func TestEdmondsKarp_MaxFlow(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		edges []edgeSpec
		want  int64
	}{
		{
			name: "classic textbook network",
			n:    4,
			edges: []edgeSpec{
				{0, 1, 3}, {0, 2, 2}, {1, 2, 5}, {1, 3, 2}, {2, 3, 3},
			},
			want: 5,
		},
		{
			name:  "single edge",
			n:     2,
			edges: []edgeSpec{{0, 1, 7}},
			want:  7,
		},
		{
			name:  "sink unreachable",
			n:     3,
			edges: []edgeSpec{{0, 1, 5}},
			want:  0,
		},
		{
			name:  "no edges at all",
			n:     2,
			edges: nil,
			want:  0,
		},
		{
			name:  "parallel edges add up",
			n:     2,
			edges: []edgeSpec{{0, 1, 3}, {0, 1, 4}},
			want:  7,
		},
		{
			name:  "zero capacity edges carry nothing",
			n:     3,
			edges: []edgeSpec{{0, 1, 0}, {0, 1, 5}, {1, 2, 5}, {1, 2, 0}},
			want:  5,
		},
		{
			name: "flow must cancel through the middle",
			n:    6,
			edges: []edgeSpec{
				{0, 1, 10}, {0, 2, 10},
				{1, 3, 4}, {1, 4, 8}, {2, 4, 9},
				{3, 5, 10}, {4, 3, 6}, {4, 5, 10},
			},
			want: 19,
		},
		{
			name: "diamond with cross edge",
			n:    4,
			edges: []edgeSpec{
				{0, 1, 10}, {0, 2, 10}, {1, 2, 1}, {1, 3, 10}, {2, 3, 10},
			},
			want: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(t, tt.n, tt.edges)
			result := EdmondsKarp(g, 0, tt.n-1, nil)

			assert.Equal(t, tt.want, result.MaxFlow)
			assert.False(t, result.Canceled)
			assert.False(t, result.LimitReached)
			assert.Equal(t, tt.want, g.TotalFlow(0), "net outflow of source equals max flow")
		})
	}
}

func TestEdmondsKarp_FlowInvariants(t *testing.T) {
	g := classicNetwork(t)
	result := EdmondsKarp(g, 0, 3, nil)
	require.Equal(t, int64(5), result.MaxFlow)

	// Capacity bound and antisymmetry on every edge pair.
	for _, i := range g.ForwardEdges() {
		e := g.Edge(i)
		rev := g.Edge(graph.Reverse(i))
		assert.GreaterOrEqual(t, e.Flow, int64(0))
		assert.LessOrEqual(t, e.Flow, e.Capacity)
		assert.Equal(t, -e.Flow, rev.Flow)
	}

	// Conservation at interior nodes: net outflow is zero.
	for node := 1; node < 3; node++ {
		var net int64
		for _, i := range g.EdgesFrom(node) {
			net += g.Edge(i).Flow
		}
		assert.Zero(t, net, "node %d must conserve flow", node)
	}
}

func TestEdmondsKarp_MinCutEqualsMaxFlow(t *testing.T) {
	g := classicNetwork(t)
	result := EdmondsKarp(g, 0, 3, nil)

	cut := ComputeMinCut(g, 0)
	assert.Equal(t, result.MaxFlow, cut.Capacity)
	assert.True(t, cut.SourceSide[0])
	assert.False(t, cut.SourceSide[3], "sink is never on the source side after termination")

	// All crossing edges are saturated.
	for _, ce := range cut.Edges {
		for _, i := range g.ForwardEdges() {
			e := g.Edge(i)
			if e.From == ce.From && e.To == ce.To {
				assert.Equal(t, e.Capacity, e.Flow)
			}
		}
	}
}

func TestEdmondsKarp_IterationBound(t *testing.T) {
	g := classicNetwork(t)
	result := EdmondsKarp(g, 0, 3, nil)

	// Edmonds-Karp performs at most V*E augmentations.
	bound := int64(g.NodeCount()) * int64(g.EdgeCount())
	assert.LessOrEqual(t, result.Iterations, bound)
	assert.Greater(t, result.Iterations, int64(0))
}

func TestEdmondsKarp_ReturnPaths(t *testing.T) {
	g := classicNetwork(t)
	opts := DefaultOptions().WithReturnPaths(true)
	result := EdmondsKarp(g, 0, 3, opts)

	require.Len(t, result.Paths, int(result.Iterations))

	var total int64
	for _, p := range result.Paths {
		assert.Equal(t, 0, p.Nodes[0])
		assert.Equal(t, 3, p.Nodes[len(p.Nodes)-1])
		assert.Greater(t, p.Flow, int64(0))
		total += p.Flow
	}
	assert.Equal(t, result.MaxFlow, total)

	// BFS yields monotonically non-decreasing path lengths.
	for i := 1; i < len(result.Paths); i++ {
		assert.GreaterOrEqual(t, len(result.Paths[i].Nodes), len(result.Paths[i-1].Nodes))
	}
}

func TestEdmondsKarp_NoPathsWhenDisabled(t *testing.T) {
	g := classicNetwork(t)
	opts := DefaultOptions().WithReturnPaths(false)
	result := EdmondsKarp(g, 0, 3, opts)

	assert.Equal(t, int64(5), result.MaxFlow)
	assert.Nil(t, result.Paths)
}

func TestEdmondsKarp_ContextCanceled(t *testing.T) {
	g := classicNetwork(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := EdmondsKarpWithContext(ctx, g, 0, 3, nil)
	assert.True(t, result.Canceled)
	assert.Equal(t, int64(0), result.MaxFlow, "cancellation before the first check yields no flow")
}

func TestEdmondsKarp_IterationLimit(t *testing.T) {
	g := classicNetwork(t)
	opts := DefaultOptions().WithMaxIterations(1)

	result := EdmondsKarp(g, 0, 3, opts)
	assert.True(t, result.LimitReached)
	assert.Equal(t, int64(1), result.Iterations)
	assert.Less(t, result.MaxFlow, int64(5), "partial flow under the limit")
}

func TestEdmondsKarp_RepeatableAfterReset(t *testing.T) {
	g := classicNetwork(t)

	first := EdmondsKarp(g, 0, 3, nil)
	g.Reset()
	second := EdmondsKarp(g, 0, 3, nil)

	assert.Equal(t, first.MaxFlow, second.MaxFlow)
	assert.Equal(t, first.Iterations, second.Iterations)
}
