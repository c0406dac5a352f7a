package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEdges(t *testing.T) {
	t.Run("Duplicated edges collapse", func(t *testing.T) {
		//** Act
		graph, err := FromEdges([][]int64{{1, 2}, {1, 2}, {2, 3}, {3, 1}, {3, 2}})

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, []Node{1, 2, 3}, graph.Nodes())
		assert.Equal(t, []Edge{{1, 2}, {1, 3}, {2, 3}}, graph.Edges())
		assert.Equal(t, "(1,2),(1,3),(2,3)", graph.String())
	})

	t.Run("Isolated vertices", func(t *testing.T) {
		graph, err := FromEdges([][]int64{{1, 2}, {4}})

		require.NoError(t, err)
		assert.Equal(t, 3, graph.Order())
		assert.Equal(t, 1, graph.Size())
		assert.Equal(t, 0, graph.Degree(4))
		assert.Equal(t, "(1,2),(4)", graph.String())
	})

	t.Run("Invalid inputs", func(t *testing.T) {
		scenarios := []struct {
			name  string
			edges [][]int64
			err   error
		}{
			{"empty edge", [][]int64{{}}, ErrEmptyEdge},
			{"hyperedge", [][]int64{{1, 2, 3}}, ErrHyperedge},
			{"non positive node", [][]int64{{0, 1}}, ErrInvalidNode},
			{"self-loop", [][]int64{{2, 2}}, ErrSelfLoop},
			{"mixed", [][]int64{{1, 2}, {2}}, ErrMixedEdge},
		}

		for _, scenario := range scenarios {
			_, err := FromEdges(scenario.edges)
			assert.ErrorIs(t, err, scenario.err, scenario.name)
		}
	})
}

func TestAddEdge(t *testing.T) {
	//** Arrange
	graph := New()
	require.NoError(t, graph.AddNode(1, Attributes{"label": "a"}))
	require.NoError(t, graph.AddNode(2, nil))

	//** Act
	err := graph.AddEdge(2, 1, Attributes{"weight": 3})
	unknownErr := graph.AddEdge(1, 5, nil)

	//** Assert
	require.NoError(t, err)
	assert.ErrorIs(t, unknownErr, ErrUnknownNode)
	assert.EqualError(t, unknownErr, "node 5: edge references a node that is not in the graph")
	assert.True(t, graph.HasEdge(1, 2))
	assert.True(t, graph.HasEdge(2, 1))
	assert.Equal(t, Attributes{"weight": 3}, graph.EdgeAttributes(1, 2))
	assert.Equal(t, Attributes{"label": "a"}, graph.NodeAttributes(1))
	assert.Nil(t, graph.NodeAttributes(7))
	assert.NoError(t, graph.Validate())
}

func TestAttributesAreCopies(t *testing.T) {
	graph := New()
	require.NoError(t, graph.AddNode(1, Attributes{"label": "a"}))

	attributes := graph.NodeAttributes(1)
	attributes["label"] = "b"

	assert.Equal(t, "a", graph.NodeAttributes(1)["label"])
}

func TestComplement(t *testing.T) {
	//** Arrange
	cycle, err := FromEdges([][]int64{{1, 2}, {2, 3}, {3, 4}, {4, 1}})
	require.NoError(t, err)

	//** Act
	complement := cycle.Complement()

	//** Assert
	assert.Equal(t, cycle.Nodes(), complement.Nodes())
	assert.Equal(t, []Edge{{1, 3}, {2, 4}}, complement.Edges())
	assert.NoError(t, complement.Validate())
}

func TestNeighbors(t *testing.T) {
	graph, err := FromEdges([][]int64{{3, 1}, {1, 2}, {4, 1}})
	require.NoError(t, err)

	assert.Equal(t, []Node{2, 3, 4}, graph.Neighbors(1))
	assert.Equal(t, 3, graph.Degree(1))
	assert.Empty(t, graph.Neighbors(9))
}

func TestValidateUninitialized(t *testing.T) {
	var graph *Graph
	assert.Error(t, graph.Validate())
	assert.Error(t, (&Graph{}).Validate())
}

func TestRandom(t *testing.T) {
	for range 10 {
		//** Act
		graph, err := Random(8, 12)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, 8, graph.Order())
		assert.Equal(t, 12, graph.Size())
		assert.NoError(t, graph.Validate())
	}

	_, err := Random(3, 4)
	assert.Error(t, err)
}

func TestFromAdjacency(t *testing.T) {
	graph, err := FromAdjacency([][]int{{1}, {0, 2}, {1}, {}})

	require.NoError(t, err)
	assert.Equal(t, "(1,2),(2,3),(4)", graph.String())

	_, err = FromAdjacency([][]int{{5}})
	assert.ErrorIs(t, err, ErrUnknownNode)
}
