package property

import (
	"slices"

	"github.com/limaJavier/graphsat/pkg/graph"
	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

type pair struct {
	from, to graph.Node
}

func validateIsomorphism(g *graph.Graph, spec Spec) error {
	if spec.Target == nil {
		return invalidGraph("isomorphism requires a target graph")
	}
	if err := spec.Target.Validate(); err != nil {
		return &InvalidGraphError{Reason: "target", Err: err}
	}

	images := make(map[graph.Node]graph.Node, len(spec.Mapping))
	for from, to := range spec.Mapping {
		if !g.HasNode(from) {
			return invalidGraph("pinned node %d is not in the graph", from)
		}
		if !spec.Target.HasNode(to) {
			return invalidGraph("pinned image %d is not in the target graph", to)
		}
		if other, ok := images[to]; ok {
			return invalidGraph("nodes %d and %d are both pinned to %d", min(from, other), max(from, other), to)
		}
		images[to] = from
	}
	return nil
}

// isomorphismConstraints encodes a bijection m from the graph's nodes onto the target's nodes
// that preserves adjacency and honors the pinned pairs. Only degree-compatible pairs get a
// variable m(v,w).
func isomorphismConstraints(state *encodingState) [][]int64 {
	source, target := state.graph, state.spec.Target
	if source.Order() != target.Order() || source.Size() != target.Size() {
		return [][]int64{{}}
	}

	//** Candidate pairs
	candidates := []pair{}
	for _, from := range source.Nodes() {
		for _, to := range target.Nodes() {
			if source.Degree(from) == target.Degree(to) {
				candidates = append(candidates, pair{from: from, to: to})
			}
		}
	}
	candidateSet := lo.SliceToMap(candidates, func(p pair) (pair, bool) { return p, true })

	// Pins must be candidates themselves
	for from, to := range state.spec.Mapping {
		if !candidateSet[pair{from: from, to: to}] {
			return [][]int64{{}}
		}
	}

	if !perfectMatching(source.Nodes(), target.Nodes(), candidates, state.spec.Mapping) {
		return [][]int64{{}}
	}

	mapping := func(p pair) int64 {
		return state.variable(predicateMap, int64(p.from), int64(p.to))
	}

	clauses := [][]int64{}

	//** Bijection
	bySource := lo.GroupBy(candidates, func(p pair) graph.Node { return p.from })
	for _, from := range source.Nodes() {
		clauses = append(clauses, exactlyOne(lo.Map(bySource[from], func(p pair, _ int) int64 { return mapping(p) }))...)
	}
	byTarget := lo.GroupBy(candidates, func(p pair) graph.Node { return p.to })
	for _, to := range target.Nodes() {
		clauses = append(clauses, exactlyOne(lo.Map(byTarget[to], func(p pair, _ int) int64 { return mapping(p) }))...)
	}

	//** Edge preservation
	for i, first := range candidates {
		for _, second := range candidates[i+1:] {
			if first.from == second.from || first.to == second.to {
				continue
			}
			if source.HasEdge(first.from, second.from) != target.HasEdge(first.to, second.to) {
				clauses = append(clauses, []int64{-mapping(first), -mapping(second)})
			}
		}
	}

	//** Pins
	pinned := lo.Keys(state.spec.Mapping)
	slices.Sort(pinned)
	for _, from := range pinned {
		clauses = append(clauses, []int64{mapping(pair{from: from, to: state.spec.Mapping[from]})})
	}

	return clauses
}

// perfectMatching reports whether the candidate pairs, restricted by the pins, admit a
// bijection between sources and targets
func perfectMatching(sources, targets []graph.Node, candidates []pair, pins map[graph.Node]graph.Node) bool {
	if len(sources) == 0 {
		return len(targets) == 0
	}

	pinnedTargets := lo.Invert(pins)
	allowed := make(map[pair]bool, len(candidates))
	for _, candidate := range candidates {
		if to, ok := pins[candidate.from]; ok && to != candidate.to {
			continue
		}
		if from, ok := pinnedTargets[candidate.to]; ok && from != candidate.from {
			continue
		}
		allowed[candidate] = true
	}

	// Build neighbors predicate based on the allowed pairs
	neighbors := func(fromAny any, toAny any) (bool, error) {
		return allowed[pair{from: fromAny.(graph.Node), to: toAny.(graph.Node)}], nil
	}

	sourcesAny := lo.Map(sources, func(node graph.Node, _ int) any { return node })
	targetsAny := lo.Map(targets, func(node graph.Node, _ int) any { return node })

	bipartite, err := bipartitegraph.NewBipartiteGraph(sourcesAny, targetsAny, neighbors)
	if err != nil {
		return false
	}
	return len(bipartite.LargestMatching()) == len(sources)
}
