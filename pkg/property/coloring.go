package property

import (
	"github.com/limaJavier/graphsat/pkg/graph"
)

// palette returns the number of colors the node at position index (ascending order) may take.
// With symmetry breaking the i-th node only takes colors 0..i, see colorSymmetryConstraints.
func palette(spec Spec, index int) int {
	if spec.BreakSymmetry {
		return min(spec.Colors, index+1)
	}
	return spec.Colors
}

// Every node takes exactly one color of its palette
func colorCompletenessConstraints(state *encodingState) [][]int64 {
	clauses := [][]int64{}
	for index, node := range state.graph.Nodes() {
		literals := make([]int64, 0, palette(state.spec, index))
		for color := range palette(state.spec, index) {
			literals = append(literals, state.variable(predicateColor, int64(node), int64(color)))
		}
		clauses = append(clauses, exactlyOne(literals)...)
	}
	return clauses
}

// colorSymmetryConstraints keeps a single coloring out of every class of colorings equal up
// to a permutation of colors: colors first appear in ascending order over the nodes. A node
// takes color c > 0 only if an earlier node takes color c-1.
func colorSymmetryConstraints(state *encodingState) [][]int64 {
	nodes := state.graph.Nodes()
	clauses := [][]int64{}
	for index, node := range nodes {
		for color := 1; color < palette(state.spec, index); color++ {
			clause := []int64{-state.variable(predicateColor, int64(node), int64(color))}
			// Earlier nodes with color-1 in their palette
			for earlier := color - 1; earlier < index; earlier++ {
				clause = append(clause, state.variable(predicateColor, int64(nodes[earlier]), int64(color-1)))
			}
			clauses = append(clauses, clause)
		}
	}
	return clauses
}

// Adjacent nodes never share a color
func colorConflictConstraints(state *encodingState) [][]int64 {
	position := make(map[graph.Node]int, state.graph.Order())
	for index, node := range state.graph.Nodes() {
		position[node] = index
	}

	clauses := [][]int64{}
	for _, edge := range state.graph.Edges() {
		shared := min(palette(state.spec, position[edge.U]), palette(state.spec, position[edge.V]))
		for color := range shared {
			clauses = append(clauses, []int64{
				-state.variable(predicateColor, int64(edge.U), int64(color)),
				-state.variable(predicateColor, int64(edge.V), int64(color)),
			})
		}
	}
	return clauses
}
