// Package report renders solver results for people: a console reporter
// for interactive runs and an Excel exporter for offline analysis.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"netflow/internal/bench"
	"netflow/internal/engine"
	"netflow/internal/graph"
)

// Summary collects everything the console reporter prints after a run.
type Summary struct {
	InputFile  string
	Nodes      int
	Edges      int
	Source     int
	Sink       int
	MaxFlow    int64
	Iterations int64
	Algorithm  string
	ParseTime  time.Duration
	SolveTime  time.Duration
}

// ConsoleReporter writes human-readable run output.
//
// Verbose mode additionally prints every augmenting path and the final
// per-edge flow assignment; it is meant for small networks, the caller
// decides based on edge count.
type ConsoleReporter struct {
	w       io.Writer
	Verbose bool

	// EdgeLimit caps the number of edge flow lines in verbose mode.
	// Zero means unlimited.
	EdgeLimit int
}

// NewConsoleReporter creates a reporter writing to w.
func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{w: w}
}

// PrintFileMenu lists available network files as a numbered menu.
func (r *ConsoleReporter) PrintFileMenu(files []string) {
	fmt.Fprintln(r.w, "Available network files:")
	for i, f := range files {
		fmt.Fprintf(r.w, "%d. %s\n", i+1, baseName(f))
	}
}

// PrintPaths prints each augmenting path with its bottleneck and the
// running flow total. No-op unless verbose.
func (r *ConsoleReporter) PrintPaths(paths []engine.PathWithFlow) {
	if !r.Verbose {
		return
	}
	var total int64
	for i, p := range paths {
		total += p.Flow
		fmt.Fprintf(r.w, "Iteration %d: path %s, bottleneck %d, total flow %d\n",
			i+1, formatPath(p.Nodes), p.Flow, total)
	}
}

// PrintSummary prints the run summary: input identification, graph
// size, result and timings.
func (r *ConsoleReporter) PrintSummary(s *Summary) {
	fmt.Fprintf(r.w, "\nInput file: %s\n", s.InputFile)
	fmt.Fprintf(r.w, "Algorithm: %s\n", s.Algorithm)
	fmt.Fprintf(r.w, "Number of nodes: %d\n", s.Nodes)
	fmt.Fprintf(r.w, "Number of edges: %d\n", s.Edges)
	fmt.Fprintf(r.w, "Source: %d, sink: %d\n", s.Source, s.Sink)
	fmt.Fprintf(r.w, "Maximum flow: %d\n", s.MaxFlow)
	fmt.Fprintf(r.w, "Augmenting paths: %d\n", s.Iterations)
	fmt.Fprintf(r.w, "Parse time: %s\n", s.ParseTime)
	fmt.Fprintf(r.w, "Algorithm execution time: %s\n", s.SolveTime)
	fmt.Fprintf(r.w, "Total time (parsing + algorithm): %s\n", s.ParseTime+s.SolveTime)

	if s.Nodes > 0 {
		fmt.Fprintf(r.w, "\nNetwork complexity:\n")
		fmt.Fprintf(r.w, "- Average edges per node: %.2f\n", float64(s.Edges)/float64(s.Nodes))
	}
}

// PrintEdgeFlows prints the final flow on every original edge that
// carries flow. No-op unless verbose; EdgeLimit caps the output.
func (r *ConsoleReporter) PrintEdgeFlows(g *graph.ResidualGraph) {
	if !r.Verbose {
		return
	}
	fmt.Fprintln(r.w, "\nEdge flows:")
	printed := 0
	for _, i := range g.ForwardEdges() {
		e := g.Edge(i)
		if e.Flow <= 0 {
			continue
		}
		if r.EdgeLimit > 0 && printed >= r.EdgeLimit {
			fmt.Fprintf(r.w, "... (%d more edges omitted)\n", g.EdgeCount()-printed)
			return
		}
		fmt.Fprintf(r.w, "%d -> %d: %d/%d\n", e.From, e.To, e.Flow, e.Capacity)
		printed++
	}
}

// PrintMinCut prints a minimum cut extracted after the run.
func (r *ConsoleReporter) PrintMinCut(cut *engine.MinCut) {
	fmt.Fprintf(r.w, "\nMinimum cut (capacity %d):\n", cut.Capacity)
	for _, e := range cut.Edges {
		fmt.Fprintf(r.w, "%d -> %d (capacity %d)\n", e.From, e.To, e.Capacity)
	}
}

// PrintBenchmark prints per-run timings and aggregate statistics.
func (r *ConsoleReporter) PrintBenchmark(stats *bench.Stats) {
	fmt.Fprintf(r.w, "\nRunning benchmark (%d iterations)...\n", stats.Runs)
	for i, t := range stats.Times {
		fmt.Fprintf(r.w, "Iteration %d: %s\n", i+1, t)
	}
	fmt.Fprintln(r.w, "\nBenchmark results:")
	fmt.Fprintf(r.w, "- Average execution time: %s\n", stats.Mean)
	fmt.Fprintf(r.w, "- Standard deviation: %s\n", stats.StdDev)
	fmt.Fprintf(r.w, "- Minimum time: %s\n", stats.Min)
	fmt.Fprintf(r.w, "- Maximum time: %s\n", stats.Max)
}

// formatPath renders a node sequence as "0 -> 2 -> 5".
func formatPath(nodes []int) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, " -> ")
}

func baseName(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
