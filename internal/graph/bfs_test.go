package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue(t *testing.T) {
	q := NewQueue(4)
	assert.True(t, q.Empty())
	assert.Equal(t, 0, q.Len())

	q.Push(1)
	q.Push(2)
	q.Push(3)
	assert.Equal(t, 3, q.Len())

	assert.Equal(t, 1, q.Pop())
	assert.Equal(t, 2, q.Pop())
	assert.Equal(t, 1, q.Len())

	q.Reset()
	assert.True(t, q.Empty())

	q.Push(7)
	assert.Equal(t, 7, q.Pop())
	assert.True(t, q.Empty())
}

func TestBFS_FindsShortestPath(t *testing.T) {
	// Two routes from 0 to 3: a two-edge route via 1 and a three-edge
	// route via 1->2. BFS must pick the shorter one.
	g := MustNewResidualGraph(4)
	require.NoError(t, g.AddEdge(0, 1, 1)) // index 0
	require.NoError(t, g.AddEdge(1, 2, 1)) // index 2
	require.NoError(t, g.AddEdge(2, 3, 1)) // index 4
	require.NoError(t, g.AddEdge(1, 3, 1)) // index 6

	result := BFS(g, 0, 3)
	require.True(t, result.Found)

	path := ReconstructPath(g, result.ParentEdge, 0, 3)
	assert.Equal(t, []int{0, 1, 3}, path)
}

func TestBFS_SinkUnreachable(t *testing.T) {
	g := MustNewResidualGraph(3)
	require.NoError(t, g.AddEdge(0, 1, 5))

	result := BFS(g, 0, 2)
	assert.False(t, result.Found)
	assert.Equal(t, NoParent, result.ParentEdge[2])
	assert.False(t, result.Visited[2])
	assert.True(t, result.Visited[1])
}

func TestBFS_SkipsSaturatedEdges(t *testing.T) {
	g := MustNewResidualGraph(3)
	require.NoError(t, g.AddEdge(0, 1, 2))
	require.NoError(t, g.AddEdge(1, 2, 2))

	result := BFS(g, 0, 2)
	require.True(t, result.Found)

	// Saturate the first hop; the sink becomes unreachable.
	g.Push(0, 2)
	result = BFS(g, 0, 2)
	assert.False(t, result.Found)
}

func TestBFS_TraversesResidualBackEdges(t *testing.T) {
	g := MustNewResidualGraph(2)
	require.NoError(t, g.AddEdge(0, 1, 4))

	// With flow on the forward edge, the reverse direction admits
	// traversal from 1 back to 0.
	g.Push(0, 3)
	result := BFS(g, 1, 0)
	require.True(t, result.Found)
	assert.Equal(t, Reverse(0), result.ParentEdge[0])
}

func TestBFS_ZeroCapacityEdges(t *testing.T) {
	g := MustNewResidualGraph(3)
	require.NoError(t, g.AddEdge(0, 1, 0))
	require.NoError(t, g.AddEdge(1, 2, 5))

	result := BFS(g, 0, 2)
	assert.False(t, result.Found, "zero-capacity edges never admit flow")
}

func TestBFS_DisambiguatesParallelEdges(t *testing.T) {
	g := MustNewResidualGraph(2)
	require.NoError(t, g.AddEdge(0, 1, 3)) // index 0
	require.NoError(t, g.AddEdge(0, 1, 4)) // index 2

	// Saturate the first parallel edge; BFS must discover the sink via
	// the second one.
	g.Push(0, 3)
	result := BFS(g, 0, 1)
	require.True(t, result.Found)
	assert.Equal(t, int32(2), result.ParentEdge[1])
}
