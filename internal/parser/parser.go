// Package parser reads flow network descriptions from text files.
//
// The expected format is:
//   - first non-blank line: number of nodes n (nodes are numbered 0 to n-1)
//   - each subsequent line: three integers "from to capacity"
//
// Node 0 is the source and node n-1 is the sink by convention. Blank
// lines are skipped and lines starting with '#' are treated as comments.
// All validation failures carry the one-based input line number.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"netflow/internal/graph"
	"netflow/pkg/apperror"
)

// Network is a parsed flow network together with its metadata.
type Network struct {
	// Graph is the residual graph built from the file.
	Graph *graph.ResidualGraph

	// Source and Sink follow the file format convention:
	// node 0 and node n-1.
	Source int
	Sink   int

	// Name identifies the input, typically the file base name.
	Name string
}

// ParseFile reads and parses a network description file.
func ParseFile(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeNotFound,
			fmt.Sprintf("cannot open network file %q", path))
	}
	defer f.Close()

	network, err := Parse(f)
	if err != nil {
		return nil, err
	}
	network.Name = filepath.Base(path)
	return network, nil
}

// Parse reads a network description from r.
//
// Parsing is strict: the first error aborts and is returned with its
// line number. A syntactically valid file always yields a usable graph;
// connectivity is not checked here (a sink unreachable from the source
// is a legal network with maximum flow zero).
func Parse(r io.Reader) (*Network, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	n := -1
	var g *graph.ResidualGraph

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		if n < 0 {
			// Header line: node count
			v, err := strconv.Atoi(text)
			if err != nil {
				return nil, apperror.NewAtLine(apperror.CodeMissingHeader, line,
					fmt.Sprintf("first line must be the node count, got %q", text))
			}
			if v < 2 {
				return nil, apperror.NewAtLine(apperror.CodeInvalidGraph, line,
					fmt.Sprintf("network must have at least 2 nodes, got %d", v))
			}
			n = v
			g, err = graph.NewResidualGraph(n)
			if err != nil {
				return nil, err
			}
			continue
		}

		from, to, capacity, err := parseEdgeLine(text, line)
		if err != nil {
			return nil, err
		}
		if err := g.AddEdge(from, to, capacity); err != nil {
			// Carry the construction error code, bound to the input line.
			var appErr *apperror.Error
			if errors.As(err, &appErr) {
				return nil, appErr.WithLine(line)
			}
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeParseError, "reading network input")
	}

	if n < 0 {
		return nil, apperror.NewAtLine(apperror.CodeMissingHeader, 1,
			"empty input: expected node count on the first line")
	}

	return &Network{
		Graph:  g,
		Source: 0,
		Sink:   n - 1,
	}, nil
}

// parseEdgeLine splits an edge line into its three integer fields.
func parseEdgeLine(text string, line int) (from, to int, capacity int64, err error) {
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return 0, 0, 0, apperror.NewAtLine(apperror.CodeMalformedEdge, line,
			fmt.Sprintf("expected 3 values (from, to, capacity), found %d", len(fields)))
	}

	from, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, 0, apperror.NewAtLine(apperror.CodeMalformedEdge, line,
			fmt.Sprintf("invalid from node %q", fields[0]))
	}
	to, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, 0, apperror.NewAtLine(apperror.CodeMalformedEdge, line,
			fmt.Sprintf("invalid to node %q", fields[1]))
	}
	capacity, err = strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return 0, 0, 0, apperror.NewAtLine(apperror.CodeMalformedEdge, line,
			fmt.Sprintf("invalid capacity %q", fields[2]))
	}
	return from, to, capacity, nil
}
