package tree

import (
	"encoding/json"
	"testing"

	"github.com/limaJavier/graphsat/pkg/graph"
	"github.com/limaJavier/graphsat/pkg/property"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selection(nodes ...graph.Node) property.Solution {
	return property.Solution{Kind: property.IndependentSet, Nodes: nodes}
}

func buildTree(t *testing.T, solutions ...property.Solution) *Tree {
	builder := NewBuilder()
	for i, solution := range solutions {
		require.NoError(t, builder.Append(Step{Call: i + 1, Solution: solution}))
	}
	return builder.Finalize()
}

func collect(tree *Tree) ([]int, []property.Solution) {
	depths, solutions := []int{}, []property.Solution{}
	for depth, solution := range tree.All() {
		depths = append(depths, depth)
		solutions = append(solutions, solution)
	}
	return depths, solutions
}

func TestBuilder(t *testing.T) {
	t.Run("Append after finalize", func(t *testing.T) {
		//** Arrange
		builder := NewBuilder()
		require.NoError(t, builder.Append(Step{Call: 1, Solution: selection(1)}))

		//** Act
		tree := builder.Finalize()
		err := builder.Append(Step{Call: 2, Solution: selection(2)})

		//** Assert
		assert.ErrorIs(t, err, ErrFinalized)
		assert.Equal(t, 1, tree.Len())
		assert.Same(t, tree, builder.Finalize())
	})

	t.Run("Empty tree", func(t *testing.T) {
		tree := NewBuilder().Finalize()

		depths, _ := collect(tree)

		assert.Empty(t, depths)
		assert.Len(t, tree.Nodes(), 1)
	})
}

func TestAll(t *testing.T) {
	//** Arrange
	tree := buildTree(t, selection(1), selection(2), selection(3))

	//** Act
	depths, solutions := collect(tree)
	_, again := collect(tree)

	//** Assert
	assert.Equal(t, []int{1, 1, 1}, depths)
	assert.Equal(t, []property.Solution{selection(1), selection(2), selection(3)}, solutions)
	assert.Equal(t, solutions, again)

	// Early exit
	count := 0
	for range tree.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestGroupBy(t *testing.T) {
	//** Arrange
	tree := buildTree(t, selection(1), selection(2, 4), selection(3), selection(1, 3))

	//** Act
	grouped := tree.GroupBy(property.SymmetryClass)

	//** Assert
	depths, solutions := collect(grouped)
	assert.Equal(t, []int{2, 2, 2, 2}, depths)
	assert.Equal(t, []property.Solution{selection(1), selection(3), selection(2, 4), selection(1, 3)}, solutions)

	nodes := grouped.Nodes()
	require.Len(t, nodes[0].Children, 2)
	assert.Equal(t, "independent-set size=1", nodes[nodes[0].Children[0]].Label)
	assert.Equal(t, "independent-set size=2", nodes[nodes[0].Children[1]].Label)

	// The original tree is untouched
	depths, solutions = collect(tree)
	assert.Equal(t, []int{1, 1, 1, 1}, depths)
	assert.Equal(t, selection(2, 4), solutions[1])
}

func TestNodesAreCopies(t *testing.T) {
	tree := buildTree(t, selection(1), selection(2))

	nodes := tree.Nodes()
	nodes[0].Children[0] = 7
	steps := tree.Steps()
	steps[0].Call = 9

	assert.Equal(t, []int{1, 2}, tree.Nodes()[0].Children)
	assert.Equal(t, 1, tree.Steps()[0].Call)
}

func TestMarshalJSON(t *testing.T) {
	tree := buildTree(t, selection(1), selection(3))

	bytes, err := json.Marshal(tree.GroupBy(func(property.Solution) string { return "all" }))

	require.NoError(t, err)
	assert.JSONEq(t, `{"children": [{"label": "all", "children": [
		{"call": 1, "solution": {"kind": "independent-set", "nodes": [1]}},
		{"call": 2, "solution": {"kind": "independent-set", "nodes": [3]}}
	]}]}`, string(bytes))
}
