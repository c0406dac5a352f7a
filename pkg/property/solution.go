package property

import (
	"fmt"
	"slices"
	"strings"

	"github.com/limaJavier/graphsat/pkg/graph"
	"github.com/limaJavier/graphsat/pkg/sat"
	"github.com/mitchellh/hashstructure"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Solution is a decoded graph-level witness of a property. Only the field matching Kind is set.
type Solution struct {
	Kind Kind `json:"kind"`
	// Coloring assigns every node a color in 0..k-1
	Coloring map[graph.Node]int `json:"coloring,omitempty"`
	// Nodes holds the selected nodes of an independent set or clique in ascending order
	Nodes []graph.Node `json:"nodes,omitempty"`
	// Mapping sends every node of the graph to a node of the target
	Mapping map[graph.Node]graph.Node `json:"mapping,omitempty"`
}

// Fingerprint is a stable hash of the solution's content, equal for equal solutions
func (solution Solution) Fingerprint() (uint64, error) {
	return hashstructure.Hash(solution, nil)
}

func (solution Solution) String() string {
	switch solution.Kind {
	case Coloring:
		nodes := lo.Keys(solution.Coloring)
		slices.Sort(nodes)
		return strings.Join(lo.Map(nodes, func(node graph.Node, _ int) string {
			return fmt.Sprintf("%d:%d", node, solution.Coloring[node])
		}), " ")
	case IndependentSet, Clique:
		return "{" + strings.Join(lo.Map(solution.Nodes, func(node graph.Node, _ int) string {
			return fmt.Sprint(int64(node))
		}), ",") + "}"
	case Isomorphism:
		nodes := lo.Keys(solution.Mapping)
		slices.Sort(nodes)
		return strings.Join(lo.Map(nodes, func(node graph.Node, _ int) string {
			return fmt.Sprintf("%d->%d", node, solution.Mapping[node])
		}), " ")
	default:
		return string(solution.Kind)
	}
}

// Decode reads the graph-level solution out of a model of the encoding's formula. Only the
// relevant variables are consulted, missing ones count as false.
func (encoding *Encoding) Decode(model sat.Model) (Solution, error) {
	solution := Solution{Kind: encoding.Spec.Kind}
	switch solution.Kind {
	case Coloring:
		solution.Coloring = make(map[graph.Node]int, encoding.Graph.Order())
	case IndependentSet, Clique:
		solution.Nodes = []graph.Node{}
	case Isomorphism:
		solution.Mapping = make(map[graph.Node]graph.Node, encoding.Graph.Order())
	}

	for _, variable := range encoding.Relevant() {
		if !model.Value(variable) {
			continue
		}
		proposition, err := encoding.Registry.Lookup(variable)
		if err != nil {
			return Solution{}, err
		}

		node := graph.Node(proposition.Subject)
		switch proposition.Predicate {
		case predicateColor:
			if color, ok := solution.Coloring[node]; ok {
				return Solution{}, errors.Errorf("model gives node %d colors %d and %d", node, color, proposition.Object)
			}
			solution.Coloring[node] = int(proposition.Object)
		case predicateSelect:
			solution.Nodes = append(solution.Nodes, node)
		case predicateMap:
			if image, ok := solution.Mapping[node]; ok {
				return Solution{}, errors.Errorf("model maps node %d onto %d and %d", node, image, proposition.Object)
			}
			solution.Mapping[node] = graph.Node(proposition.Object)
		default:
			return Solution{}, errors.Errorf("variable %d has unexpected proposition %v", variable, proposition)
		}
	}

	slices.Sort(solution.Nodes)
	return solution, nil
}
