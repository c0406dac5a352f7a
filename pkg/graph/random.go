package graph

import (
	"github.com/go-air/gini/gen"
	"github.com/pkg/errors"
)

// FromAdjacency builds a graph from adjacency lists over 0-based indices. Index i becomes node i+1.
func FromAdjacency(adjacency [][]int) (*Graph, error) {
	graph := New()
	for i := range adjacency {
		if err := graph.AddNode(Node(i+1), nil); err != nil {
			return nil, err
		}
	}
	for i, neighbors := range adjacency {
		for _, j := range neighbors {
			if j < 0 || j >= len(adjacency) {
				return nil, errors.Wrapf(ErrUnknownNode, "index %d", j)
			}
			if err := graph.AddEdge(Node(i+1), Node(j+1), nil); err != nil {
				return nil, err
			}
		}
	}
	return graph, nil
}

// Random samples a graph with nodes 1..n and m distinct edges uniformly
func Random(n, m int) (*Graph, error) {
	if n < 0 || m < 0 || m > n*(n-1)/2 {
		return nil, errors.Errorf("cannot place %d edges among %d nodes", m, n)
	}
	return FromAdjacency(gen.RandGraph(n, m))
}
