// Package graph provides the residual graph and breadth-first search
// used to find augmenting paths.
//
// The BFS here is the shortest-augmenting-path search of Edmonds-Karp:
// nodes are marked visited on discovery, traversal follows only edges
// with positive residual capacity, and the search stops as soon as the
// sink is discovered. All search state is allocated per call, so
// concurrent searches over independent graphs never share buffers.
package graph

// =============================================================================
// Queue Implementation
// =============================================================================

// Queue provides an efficient FIFO queue for BFS traversal.
// It uses a slice with a head pointer to avoid repeated allocations
// during typical BFS operations.
type Queue struct {
	data []int // Underlying storage
	head int   // Index of next element to dequeue
}

// NewQueue creates a new Queue with the specified initial capacity.
// The capacity should be the expected maximum queue size, typically
// the number of nodes in the graph.
func NewQueue(capacity int) *Queue {
	return &Queue{
		data: make([]int, 0, capacity),
		head: 0,
	}
}

// Push adds an element to the end of the queue.
// Amortized O(1) time complexity.
func (q *Queue) Push(v int) {
	q.data = append(q.data, v)
}

// Pop removes and returns the element at the front of the queue.
// O(1) time complexity.
//
// Panics if the queue is empty. Always check Empty() before calling Pop().
func (q *Queue) Pop() int {
	v := q.data[q.head]
	q.head++
	return v
}

// Empty returns true if the queue contains no elements.
func (q *Queue) Empty() bool {
	return q.head >= len(q.data)
}

// Len returns the number of elements currently in the queue.
func (q *Queue) Len() int {
	return len(q.data) - q.head
}

// Reset clears the queue for reuse, keeping the underlying capacity.
func (q *Queue) Reset() {
	q.data = q.data[:0]
	q.head = 0
}

// =============================================================================
// BFS
// =============================================================================

// NoParent marks a node without a parent edge in a BFS result.
const NoParent int32 = -1

// BFSResult encapsulates the result of a BFS traversal.
//
// ParentEdge[v] is the arena index of the edge over which v was
// discovered, or NoParent for the source and unreached nodes. Storing
// edge indices rather than predecessor nodes disambiguates parallel
// edges and gives the augmentation step direct access to the edge pair.
type BFSResult struct {
	Found      bool
	ParentEdge []int32
	Visited    []bool
}

// BFS performs breadth-first search from source to sink over edges
// with positive residual capacity.
//
// Nodes are marked visited when discovered, not when dequeued, so no
// node is enqueued twice. The search terminates as soon as the sink is
// discovered; among same-length candidates the path taken follows edge
// insertion order, which keeps results reproducible.
//
// Time Complexity: O(V + E)
// Space Complexity: O(V)
func BFS(g *ResidualGraph, source, sink int) *BFSResult {
	n := g.NodeCount()
	parentEdge := make([]int32, n)
	for i := range parentEdge {
		parentEdge[i] = NoParent
	}
	visited := make([]bool, n)

	queue := NewQueue(n)
	queue.Push(source)
	visited[source] = true

	for !queue.Empty() {
		u := queue.Pop()

		for _, i := range g.EdgesFrom(u) {
			e := g.Edge(i)
			v := e.To

			// Only traverse edges with positive residual capacity
			if !visited[v] && e.HasCapacity() {
				parentEdge[v] = i
				visited[v] = true
				queue.Push(v)

				// Early termination when sink is found
				if v == sink {
					return &BFSResult{
						Found:      true,
						ParentEdge: parentEdge,
						Visited:    visited,
					}
				}
			}
		}
	}

	return &BFSResult{
		Found:      false,
		ParentEdge: parentEdge,
		Visited:    visited,
	}
}
