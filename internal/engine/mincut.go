package engine

import (
	"netflow/internal/graph"
)

// =============================================================================
// Minimum Cut
// =============================================================================

// CutEdge is an original edge crossing the cut from the source side to
// the sink side.
type CutEdge struct {
	From     int
	To       int
	Capacity int64
}

// MinCut describes a minimum s-t cut extracted from a solved graph.
type MinCut struct {
	// SourceSide marks the nodes reachable from the source in the
	// residual graph.
	SourceSide []bool

	// Edges are the saturated original edges crossing the cut.
	Edges []CutEdge

	// Capacity is the total capacity of the crossing edges. By the
	// max-flow min-cut theorem it equals the maximum flow value.
	Capacity int64
}

// ComputeMinCut extracts a minimum cut from a graph after a completed
// max-flow run.
//
// The source side is the set of nodes still reachable from the source
// over positive residual capacity; every original edge leaving that set
// is saturated and belongs to the cut. Calling this on an unsolved
// graph returns the trivial cut around whatever is reachable.
func ComputeMinCut(g *graph.ResidualGraph, source int) *MinCut {
	reachable := g.ReachableInResidual(source)

	cut := &MinCut{SourceSide: reachable}
	for _, i := range g.ForwardEdges() {
		e := g.Edge(i)
		if reachable[e.From] && !reachable[e.To] {
			cut.Edges = append(cut.Edges, CutEdge{
				From:     e.From,
				To:       e.To,
				Capacity: e.Capacity,
			})
			cut.Capacity += e.Capacity
		}
	}
	return cut
}
