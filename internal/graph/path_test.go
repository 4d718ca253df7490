package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainGraph builds 0 -> 1 -> 2 -> 3 with the given capacities.
func chainGraph(t *testing.T, capacities ...int64) *ResidualGraph {
	t.Helper()
	g := MustNewResidualGraph(len(capacities) + 1)
	for i, c := range capacities {
		require.NoError(t, g.AddEdge(i, i+1, c))
	}
	return g
}

func TestReconstructPath(t *testing.T) {
	g := chainGraph(t, 5, 3, 7)
	result := BFS(g, 0, 3)
	require.True(t, result.Found)

	assert.Equal(t, []int{0, 1, 2, 3}, ReconstructPath(g, result.ParentEdge, 0, 3))
}

func TestReconstructPath_Degenerate(t *testing.T) {
	g := chainGraph(t, 5, 3)
	result := BFS(g, 0, 2)

	assert.Nil(t, ReconstructPath(g, result.ParentEdge, 0, 5), "sink out of range")
	assert.Equal(t, []int{1}, ReconstructPath(g, result.ParentEdge, 1, 1))

	unreached := BFS(g, 2, 0)
	assert.Nil(t, ReconstructPath(g, unreached.ParentEdge, 2, 0))
}

func TestBottleneckOnPath(t *testing.T) {
	tests := []struct {
		name       string
		capacities []int64
		want       int64
	}{
		{name: "middle edge limits", capacities: []int64{5, 3, 7}, want: 3},
		{name: "first edge limits", capacities: []int64{2, 9, 9}, want: 2},
		{name: "uniform capacities", capacities: []int64{4, 4, 4}, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := chainGraph(t, tt.capacities...)
			sink := len(tt.capacities)
			result := BFS(g, 0, sink)
			require.True(t, result.Found)

			assert.Equal(t, tt.want, BottleneckOnPath(g, result.ParentEdge, 0, sink))
		})
	}
}

func TestBottleneckOnPath_Unreached(t *testing.T) {
	g := chainGraph(t, 5)
	result := BFS(g, 1, 0)
	assert.Equal(t, int64(0), BottleneckOnPath(g, result.ParentEdge, 1, 0))
}

func TestAugmentParentChain(t *testing.T) {
	g := chainGraph(t, 5, 3, 7)
	result := BFS(g, 0, 3)
	require.True(t, result.Found)

	bottleneck := BottleneckOnPath(g, result.ParentEdge, 0, 3)
	AugmentParentChain(g, result.ParentEdge, 0, 3, bottleneck)

	// Every chain edge carries the bottleneck, reverse partners the negation.
	for i := int32(0); i < 6; i += 2 {
		assert.Equal(t, int64(3), g.Edge(i).Flow)
		assert.Equal(t, int64(-3), g.Edge(Reverse(i)).Flow)
	}

	// The middle edge is now saturated, so no further path exists.
	assert.False(t, BFS(g, 0, 3).Found)
}
