package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSolverCache(t *testing.T) (*SolverCache, Cache) {
	t.Helper()
	backend := NewMemoryCache(DefaultOptions())
	t.Cleanup(func() { _ = backend.Close() })
	return NewSolverCache(backend, time.Minute), backend
}

func TestSolverCache_Miss(t *testing.T) {
	sc, _ := newSolverCache(t)

	result, found, err := sc.Get(context.Background(), "deadbeef", "edmonds_karp")
	require.NoError(t, err, "cache miss is not an error")
	assert.False(t, found)
	assert.Nil(t, result)
}

func TestSolverCache_SetGet(t *testing.T) {
	sc, _ := newSolverCache(t)
	ctx := context.Background()

	in := &CachedSolveResult{
		MaxFlow:           5,
		Status:            "optimal",
		Iterations:        3,
		ComputationTimeMs: 1.5,
		FlowEdges: []*FlowEdgeCache{
			{From: 0, To: 1, Flow: 3, Capacity: 3, Utilization: 1.0},
			{From: 0, To: 2, Flow: 2, Capacity: 2, Utilization: 1.0},
		},
	}
	require.NoError(t, sc.Set(ctx, "deadbeef", "edmonds_karp", in, 0))

	out, found, err := sc.Get(ctx, "deadbeef", "edmonds_karp")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(5), out.MaxFlow)
	assert.Equal(t, "optimal", out.Status)
	assert.Equal(t, int64(3), out.Iterations)
	require.Len(t, out.FlowEdges, 2)
	assert.Equal(t, int64(3), out.FlowEdges[0].Flow)
	assert.False(t, out.ComputedAt.IsZero())

	// Разные хеши сети не пересекаются.
	_, found, err = sc.Get(ctx, "cafebabe", "edmonds_karp")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSolverCache_CorruptedEntry(t *testing.T) {
	sc, backend := newSolverCache(t)
	ctx := context.Background()

	key := BuildSolveKey("deadbeef", "edmonds_karp")
	require.NoError(t, backend.Set(ctx, key, []byte("{not json"), time.Minute))

	result, found, err := sc.Get(ctx, "deadbeef", "edmonds_karp")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, result)

	// Повреждённая запись удаляется при чтении.
	exists, err := backend.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSolverCache_Invalidate(t *testing.T) {
	sc, _ := newSolverCache(t)
	ctx := context.Background()

	result := &CachedSolveResult{MaxFlow: 5, Status: "optimal"}
	require.NoError(t, sc.Set(ctx, "aaa", "edmonds_karp", result, 0))
	require.NoError(t, sc.Set(ctx, "bbb", "edmonds_karp", result, 0))

	require.NoError(t, sc.Invalidate(ctx, "aaa"))

	_, found, err := sc.Get(ctx, "aaa", "edmonds_karp")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = sc.Get(ctx, "bbb", "edmonds_karp")
	require.NoError(t, err)
	assert.True(t, found, "other networks keep their entries")
}

func TestSolverCache_InvalidateAll(t *testing.T) {
	sc, backend := newSolverCache(t)
	ctx := context.Background()

	result := &CachedSolveResult{MaxFlow: 5}
	require.NoError(t, sc.Set(ctx, "aaa", "edmonds_karp", result, 0))
	require.NoError(t, sc.Set(ctx, "bbb", "edmonds_karp", result, 0))
	require.NoError(t, backend.Set(ctx, "other:key", []byte("v"), time.Minute))

	deleted, err := sc.InvalidateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	exists, err := backend.Exists(ctx, "other:key")
	require.NoError(t, err)
	assert.True(t, exists, "non-solver keys survive")
}
