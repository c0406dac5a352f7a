package property

import "github.com/limaJavier/graphsat/pkg/graph"

// Adjacent nodes are never selected together
func independenceConstraints(state *encodingState) [][]int64 {
	return exclusionConstraints(state, state.graph)
}

// Non-adjacent nodes are never selected together
func cliqueConstraints(state *encodingState) [][]int64 {
	return exclusionConstraints(state, state.graph.Complement())
}

// At least Size nodes are selected
func selectionSizeConstraints(state *encodingState) [][]int64 {
	literals := make([]int64, 0, state.graph.Order())
	for _, node := range state.graph.Nodes() {
		literals = append(literals, state.variable(predicateSelect, int64(node), 0))
	}
	return state.atLeast(literals, state.spec.Size)
}

// exclusionConstraints forbids selecting both endpoints of any edge of conflicts
func exclusionConstraints(state *encodingState, conflicts *graph.Graph) [][]int64 {
	clauses := make([][]int64, 0, conflicts.Size())
	for _, edge := range conflicts.Edges() {
		clauses = append(clauses, []int64{
			-state.variable(predicateSelect, int64(edge.U), 0),
			-state.variable(predicateSelect, int64(edge.V), 0),
		})
	}
	return clauses
}
