package property

import (
	"github.com/limaJavier/graphsat/pkg/graph"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Verify checks solution against the graph directly, without going through the encoding.
// Violations are reported as errors matching ErrUnsound.
func Verify(g *graph.Graph, spec Spec, solution Solution) error {
	if solution.Kind != spec.Kind {
		return errors.Wrapf(ErrUnsound, "solution of kind %q for property %q", solution.Kind, spec.Kind)
	}

	switch spec.Kind {
	case Coloring:
		return verifyColoring(g, spec, solution.Coloring)
	case IndependentSet:
		return verifySelection(g, spec, solution.Nodes, false)
	case Clique:
		return verifySelection(g, spec, solution.Nodes, true)
	case Isomorphism:
		return verifyIsomorphism(g, spec, solution.Mapping)
	default:
		return &UnsupportedPropertyError{Kind: spec.Kind}
	}
}

func verifyColoring(g *graph.Graph, spec Spec, coloring map[graph.Node]int) error {
	if len(coloring) != g.Order() {
		return errors.Wrapf(ErrUnsound, "%d of %d nodes are colored", len(coloring), g.Order())
	}
	for _, node := range g.Nodes() {
		color, ok := coloring[node]
		if !ok {
			return errors.Wrapf(ErrUnsound, "node %d has no color", node)
		}
		if color < 0 || color >= spec.Colors {
			return errors.Wrapf(ErrUnsound, "node %d has color %d outside 0..%d", node, color, spec.Colors-1)
		}
	}
	for _, edge := range g.Edges() {
		if coloring[edge.U] == coloring[edge.V] {
			return errors.Wrapf(ErrUnsound, "adjacent nodes %v share color %d", edge, coloring[edge.U])
		}
	}
	return nil
}

func verifySelection(g *graph.Graph, spec Spec, nodes []graph.Node, adjacent bool) error {
	if len(lo.Uniq(nodes)) != len(nodes) {
		return errors.Wrapf(ErrUnsound, "repeated nodes in %v", nodes)
	}
	if len(nodes) < spec.Size {
		return errors.Wrapf(ErrUnsound, "%d nodes selected, at least %d required", len(nodes), spec.Size)
	}
	for i, u := range nodes {
		if !g.HasNode(u) {
			return errors.Wrapf(ErrUnsound, "node %d is not in the graph", u)
		}
		for _, v := range nodes[i+1:] {
			if g.HasEdge(u, v) != adjacent {
				return errors.Wrapf(ErrUnsound, "nodes %d and %d break the selection", u, v)
			}
		}
	}
	return nil
}

func verifyIsomorphism(g *graph.Graph, spec Spec, mapping map[graph.Node]graph.Node) error {
	target := spec.Target
	if target == nil {
		return invalidGraph("isomorphism requires a target graph")
	}
	if g.Order() != target.Order() || g.Size() != target.Size() || len(mapping) != g.Order() {
		return errors.Wrap(ErrUnsound, "mapping is not a bijection")
	}

	images := make(map[graph.Node]bool, len(mapping))
	for _, node := range g.Nodes() {
		image, ok := mapping[node]
		if !ok || !target.HasNode(image) || images[image] {
			return errors.Wrapf(ErrUnsound, "node %d has no valid image", node)
		}
		images[image] = true
	}

	// Both graphs have the same number of edges, so mapping edges onto edges is enough
	for _, edge := range g.Edges() {
		if !target.HasEdge(mapping[edge.U], mapping[edge.V]) {
			return errors.Wrapf(ErrUnsound, "edge %v is not preserved", edge)
		}
	}

	for from, to := range spec.Mapping {
		if mapping[from] != to {
			return errors.Wrapf(ErrUnsound, "node %d is pinned to %d but mapped onto %d", from, to, mapping[from])
		}
	}
	return nil
}
