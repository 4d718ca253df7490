package graph

import "math"

// ReconstructPath rebuilds the node sequence of an augmenting path from
// a BFS parent-edge array.
//
// Returns nil if the sink was not reached. The returned slice starts at
// the source and ends at the sink.
func ReconstructPath(g *ResidualGraph, parentEdge []int32, source, sink int) []int {
	if sink < 0 || sink >= len(parentEdge) {
		return nil
	}
	if source == sink {
		return []int{source}
	}
	if parentEdge[sink] == NoParent {
		return nil
	}

	var reversed []int
	node := sink
	for node != source {
		reversed = append(reversed, node)
		node = g.Edge(parentEdge[node]).From
	}
	reversed = append(reversed, source)

	// Reverse in place
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	return reversed
}

// BottleneckOnPath finds the minimum residual capacity along the parent
// chain from sink back to source.
//
// Returns 0 if the sink was not reached.
func BottleneckOnPath(g *ResidualGraph, parentEdge []int32, source, sink int) int64 {
	if sink < 0 || sink >= len(parentEdge) || parentEdge[sink] == NoParent {
		return 0
	}

	bottleneck := int64(math.MaxInt64)
	for node := sink; node != source; {
		e := g.Edge(parentEdge[node])
		if rc := e.ResidualCapacity(); rc < bottleneck {
			bottleneck = rc
		}
		node = e.From
	}
	return bottleneck
}

// AugmentParentChain pushes the given amount of flow along the parent
// chain from sink back to source.
//
// Every edge on the chain gains flow and its reverse partner loses the
// same amount, preserving antisymmetry. The caller must pass a flow no
// larger than the chain's bottleneck.
func AugmentParentChain(g *ResidualGraph, parentEdge []int32, source, sink int, flow int64) {
	for node := sink; node != source; {
		i := parentEdge[node]
		g.Push(i, flow)
		node = g.Edge(i).From
	}
}
