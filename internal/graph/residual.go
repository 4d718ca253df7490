// Package graph provides the residual graph representation and search
// utilities used by the max-flow engine.
package graph

import (
	"netflow/pkg/apperror"
)

// =============================================================================
// Residual Edge
// =============================================================================

// Edge represents a directed edge in the residual graph.
//
// Each original edge (u, v) with capacity c is stored together with an
// automatically created reverse edge (v, u) of capacity 0. The pair is
// adjacent in the graph's edge arena: a forward edge lives at an even
// index i and its reverse at i+1, so the partner of any edge index is
// found with i^1 in O(1).
//
// Flow is kept antisymmetric: pushing f units over a forward edge sets
// its Flow to f and the reverse edge's Flow to -f. The residual capacity
// of either direction is Capacity - Flow, which makes flow cancellation
// fall out of the same arithmetic as regular augmentation.
type Edge struct {
	// From is the tail node of this edge.
	From int

	// To is the head node of this edge.
	To int

	// Capacity is the immutable capacity of this edge.
	// Zero for reverse edges.
	Capacity int64

	// Flow is the current flow on this edge.
	// Negative on reverse edges whose partner carries flow.
	Flow int64
}

// ResidualCapacity returns the remaining capacity on this edge.
func (e *Edge) ResidualCapacity() int64 {
	return e.Capacity - e.Flow
}

// HasCapacity returns true if the edge admits more flow.
func (e *Edge) HasCapacity() bool {
	return e.Flow < e.Capacity
}

// =============================================================================
// Residual Graph
// =============================================================================

// ResidualGraph is the core data structure for the max-flow engine.
//
// # Edge Storage
//
// All edges live in a single graph-owned arena slice. Adjacency lists
// hold int32 indices into the arena rather than pointers, which keeps
// the structure compact and makes Clone a pair of slice copies.
//
// Edge indices are assigned in pairs: AddEdge appends the forward edge
// at an even index and its zero-capacity reverse at the following odd
// index. Reverse(i) == i^1 for every valid index.
//
// # Determinism
//
// Adjacency lists preserve insertion order, so traversals are
// reproducible across runs. Parallel edges between the same node pair
// are kept as distinct arena entries.
//
// # Thread Safety
//
// ResidualGraph is NOT thread-safe. Each goroutine should work on its
// own graph; use Clone() to run algorithms concurrently over a shared
// topology.
//
// # Example
//
//	g, _ := NewResidualGraph(4)
//	_ = g.AddEdge(0, 1, 3)
//	_ = g.AddEdge(1, 3, 2)
//	_ = g.AddEdge(0, 2, 2)
//	_ = g.AddEdge(2, 3, 3)
type ResidualGraph struct {
	nodeCount int

	// edges is the arena: forward edges at even indices,
	// their reverse partners at the following odd indices.
	edges []Edge

	// adj holds per-node outgoing edge indices in insertion order.
	adj [][]int32
}

// NewResidualGraph creates a residual graph over nodes [0, nodeCount).
//
// Returns an error if nodeCount is smaller than two: a flow network
// needs at least a source and a sink.
func NewResidualGraph(nodeCount int) (*ResidualGraph, error) {
	if nodeCount < 2 {
		return nil, apperror.Newf(apperror.CodeInvalidGraph,
			"network needs at least 2 nodes, got %d", nodeCount)
	}
	return &ResidualGraph{
		nodeCount: nodeCount,
		adj:       make([][]int32, nodeCount),
	}, nil
}

// MustNewResidualGraph is NewResidualGraph that panics on error.
// Intended for tests and fixed literals.
func MustNewResidualGraph(nodeCount int) *ResidualGraph {
	g, err := NewResidualGraph(nodeCount)
	if err != nil {
		panic(err)
	}
	return g
}

// =============================================================================
// Graph Construction
// =============================================================================

// AddEdge adds a directed edge with the given capacity and its
// zero-capacity reverse partner.
//
// Parallel edges between the same nodes are kept distinct; each call
// creates a new forward/reverse pair. Self-loops are permitted but
// never carry flow (the reverse partner cancels any gain).
//
// Returns an error if either endpoint is outside [0, nodeCount) or the
// capacity is negative. The graph is unchanged on error.
func (rg *ResidualGraph) AddEdge(from, to int, capacity int64) error {
	if err := rg.checkNode(from, "from"); err != nil {
		return err
	}
	if err := rg.checkNode(to, "to"); err != nil {
		return err
	}
	if capacity < 0 {
		return apperror.Newf(apperror.CodeNegativeCapacity,
			"edge %d->%d has negative capacity %d", from, to, capacity)
	}

	forward := int32(len(rg.edges))
	rg.edges = append(rg.edges,
		Edge{From: from, To: to, Capacity: capacity},
		Edge{From: to, To: from, Capacity: 0},
	)

	rg.adj[from] = append(rg.adj[from], forward)
	rg.adj[to] = append(rg.adj[to], forward+1)
	return nil
}

func (rg *ResidualGraph) checkNode(node int, field string) error {
	if node < 0 || node >= rg.nodeCount {
		return apperror.Newf(apperror.CodeNodeOutOfRange,
			"node %d outside [0, %d)", node, rg.nodeCount).WithField(field)
	}
	return nil
}

// ContainsNode reports whether a node id is within the graph's range.
func (rg *ResidualGraph) ContainsNode(node int) bool {
	return node >= 0 && node < rg.nodeCount
}

// =============================================================================
// Edge Access
// =============================================================================

// Reverse returns the arena index of the partner edge.
//
// Forward and reverse edges are allocated pairwise, so the partner of
// index i is always i^1. Time complexity: O(1).
func Reverse(i int32) int32 {
	return i ^ 1
}

// Edge returns a pointer into the arena for flow mutation.
//
// The pointer stays valid until the next AddEdge call.
func (rg *ResidualGraph) Edge(i int32) *Edge {
	return &rg.edges[i]
}

// EdgesFrom returns the outgoing edge indices of a node in insertion
// order. The returned slice is owned by the graph; callers must not
// modify it.
func (rg *ResidualGraph) EdgesFrom(node int) []int32 {
	return rg.adj[node]
}

// IsForward reports whether an arena index refers to an original
// (non-reverse) edge.
func IsForward(i int32) bool {
	return i%2 == 0
}

// ForwardEdges returns the arena indices of all original edges in
// insertion order. Reverse partners are skipped.
func (rg *ResidualGraph) ForwardEdges() []int32 {
	result := make([]int32, 0, len(rg.edges)/2)
	for i := int32(0); i < int32(len(rg.edges)); i += 2 {
		result = append(result, i)
	}
	return result
}

// =============================================================================
// Size
// =============================================================================

// NodeCount returns the number of nodes in the graph.
func (rg *ResidualGraph) NodeCount() int {
	return rg.nodeCount
}

// EdgeCount returns the number of original edges.
// Reverse partners are not counted.
func (rg *ResidualGraph) EdgeCount() int {
	return len(rg.edges) / 2
}

// =============================================================================
// Flow Operations
// =============================================================================

// Push moves flow over the edge at index i and keeps the pair
// antisymmetric: the partner's flow decreases by the same amount.
//
// Callers are expected to push at most ResidualCapacity units; the
// engine guarantees this via its bottleneck computation.
func (rg *ResidualGraph) Push(i int32, flow int64) {
	rg.edges[i].Flow += flow
	rg.edges[i^1].Flow -= flow
}

// TotalFlow computes the net flow leaving the given node.
//
// After a max-flow run this is the flow value when called with the
// source. Reverse partners carry negative flow, so summing forward
// edges only is sufficient.
func (rg *ResidualGraph) TotalFlow(node int) int64 {
	var total int64
	for _, i := range rg.adj[node] {
		if IsForward(i) {
			total += rg.edges[i].Flow
		}
	}
	return total
}

// Reset zeroes all flow, restoring the graph to its post-construction
// state. Topology and capacities are untouched. Reset after Reset is a
// no-op.
func (rg *ResidualGraph) Reset() {
	for i := range rg.edges {
		rg.edges[i].Flow = 0
	}
}

// Clone creates a deep copy of the graph.
//
// The copy shares no state with the original: the arena and all
// adjacency lists are duplicated. Current flow is carried over; call
// Reset on the clone for a fresh run.
func (rg *ResidualGraph) Clone() *ResidualGraph {
	clone := &ResidualGraph{
		nodeCount: rg.nodeCount,
		edges:     make([]Edge, len(rg.edges)),
		adj:       make([][]int32, len(rg.adj)),
	}
	copy(clone.edges, rg.edges)
	for node, list := range rg.adj {
		if len(list) == 0 {
			continue
		}
		clone.adj[node] = make([]int32, len(list))
		copy(clone.adj[node], list)
	}
	return clone
}

// =============================================================================
// Residual Reachability
// =============================================================================

// ReachableInResidual returns the set of nodes reachable from start
// over edges with positive residual capacity.
//
// After a max-flow run with the source as start this is the source side
// of a minimum cut. The sink is never in the set once the algorithm has
// terminated.
func (rg *ResidualGraph) ReachableInResidual(start int) []bool {
	visited := make([]bool, rg.nodeCount)
	if !rg.ContainsNode(start) {
		return visited
	}

	queue := NewQueue(rg.nodeCount)
	queue.Push(start)
	visited[start] = true

	for !queue.Empty() {
		u := queue.Pop()
		for _, i := range rg.adj[u] {
			e := &rg.edges[i]
			if !visited[e.To] && e.HasCapacity() {
				visited[e.To] = true
				queue.Push(e.To)
			}
		}
	}

	return visited
}
