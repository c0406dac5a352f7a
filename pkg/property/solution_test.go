package property

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/limaJavier/graphsat/pkg/graph"
	"github.com/limaJavier/graphsat/pkg/sat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecFromMap(t *testing.T) {
	t.Run("Isomorphism document", func(t *testing.T) {
		//** Arrange
		document := map[string]any{
			"kind":    "isomorphism",
			"target":  []any{[]any{1, 2}, []any{2, 3}},
			"mapping": map[string]any{"1": "3"},
		}

		//** Act
		spec, err := SpecFromMap(document)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, Isomorphism, spec.Kind)
		assert.Equal(t, "(1,2),(2,3)", spec.Target.String())
		assert.Equal(t, map[graph.Node]graph.Node{1: 3}, spec.Mapping)
	})

	t.Run("Coloring document", func(t *testing.T) {
		spec, err := SpecFromMap(map[string]any{"kind": "coloring", "colors": "3", "breakSymmetry": true})

		require.NoError(t, err)
		if diff := cmp.Diff(Spec{Kind: Coloring, Colors: 3, BreakSymmetry: true}, spec, cmp.AllowUnexported(graph.Graph{})); diff != "" {
			t.Errorf("unexpected spec (-want +got):\n%s", diff)
		}
	})

	t.Run("Invalid documents", func(t *testing.T) {
		_, unknownField := SpecFromMap(map[string]any{"kind": "clique", "colour": 3})
		_, invalidTarget := SpecFromMap(map[string]any{"kind": "isomorphism", "target": []any{[]any{1, 1}}})

		assert.Error(t, unknownField)
		assert.ErrorIs(t, invalidTarget, ErrInvalidGraph)
		assert.ErrorIs(t, invalidTarget, graph.ErrSelfLoop)
	})
}

func TestSolutionString(t *testing.T) {
	scenarios := []struct {
		solution Solution
		expected string
	}{
		{Solution{Kind: Coloring, Coloring: map[graph.Node]int{2: 1, 1: 0}}, "1:0 2:1"},
		{Solution{Kind: IndependentSet, Nodes: []graph.Node{1, 3}}, "{1,3}"},
		{Solution{Kind: Clique, Nodes: []graph.Node{}}, "{}"},
		{Solution{Kind: Isomorphism, Mapping: map[graph.Node]graph.Node{2: 1, 1: 2}}, "1->2 2->1"},
	}

	for _, scenario := range scenarios {
		assert.Equal(t, scenario.expected, scenario.solution.String())
	}
}

func TestFingerprint(t *testing.T) {
	first, err := Solution{Kind: Coloring, Coloring: map[graph.Node]int{1: 0, 2: 1, 3: 0}}.Fingerprint()
	require.NoError(t, err)
	same, err := Solution{Kind: Coloring, Coloring: map[graph.Node]int{3: 0, 2: 1, 1: 0}}.Fingerprint()
	require.NoError(t, err)
	other, err := Solution{Kind: Coloring, Coloring: map[graph.Node]int{1: 1, 2: 0, 3: 1}}.Fingerprint()
	require.NoError(t, err)

	assert.Equal(t, first, same)
	assert.NotEqual(t, first, other)
}

func TestSymmetryClass(t *testing.T) {
	first := Solution{Kind: Coloring, Coloring: map[graph.Node]int{1: 0, 2: 1, 3: 0, 4: 1}}
	swapped := Solution{Kind: Coloring, Coloring: map[graph.Node]int{1: 1, 2: 0, 3: 1, 4: 0}}
	different := Solution{Kind: Coloring, Coloring: map[graph.Node]int{1: 0, 2: 1, 3: 2, 4: 1}}

	assert.Equal(t, SymmetryClass(first), SymmetryClass(swapped))
	assert.NotEqual(t, SymmetryClass(first), SymmetryClass(different))
	assert.Equal(t, "independent-set size=2", SymmetryClass(Solution{Kind: IndependentSet, Nodes: []graph.Node{1, 3}}))
	assert.Equal(t, "isomorphism fixed=1", SymmetryClass(Solution{Kind: Isomorphism, Mapping: map[graph.Node]graph.Node{1: 1, 2: 3, 3: 2}}))
}

func TestDecode(t *testing.T) {
	t.Run("Unknown relevant variable", func(t *testing.T) {
		encoding := &Encoding{
			Spec:     Spec{Kind: Clique},
			Graph:    graph.New(),
			Registry: sat.NewRegistry(),
			relevant: []uint64{3},
		}

		_, err := encoding.Decode(sat.Model{3: true})

		assert.ErrorIs(t, err, sat.ErrUnknownVariable)
	})

	t.Run("Auxiliary variables are ignored", func(t *testing.T) {
		g, err := graph.FromEdges([][]int64{{1}, {2}, {3}, {4}, {5}, {6}, {7}, {8}, {9}, {10}})
		require.NoError(t, err)
		// At least 5 of 10 is encoded with a sequential counter
		encoding, err := Encode(g, Spec{Kind: IndependentSet, Size: 5})
		require.NoError(t, err)
		require.Greater(t, encoding.Registry.Len(), uint64(10))

		model := sat.Model{}
		for id := uint64(1); id <= encoding.Registry.Len(); id++ {
			model[id] = true
		}
		model[2] = false

		solution, err := encoding.Decode(model)

		require.NoError(t, err)
		assert.Equal(t, []graph.Node{1, 3, 4, 5, 6, 7, 8, 9, 10}, solution.Nodes)
	})

	t.Run("Blocking clause", func(t *testing.T) {
		encoding, err := Encode(cycle(t, 3), Spec{Kind: Coloring, Colors: 1})
		require.NoError(t, err)

		clause := encoding.BlockingClause(sat.Model{1: true})

		assert.Equal(t, []int64{-1, 2, 3}, clause)
	})
}

func TestVerify(t *testing.T) {
	square := cycle(t, 4)

	scenarios := []struct {
		name     string
		spec     Spec
		solution Solution
	}{
		{"kind mismatch", Spec{Kind: Clique, Size: 1}, Solution{Kind: IndependentSet, Nodes: []graph.Node{1}}},
		{"uncolored node", Spec{Kind: Coloring, Colors: 2}, Solution{Kind: Coloring, Coloring: map[graph.Node]int{1: 0, 2: 1, 3: 0}}},
		{"color out of range", Spec{Kind: Coloring, Colors: 2}, Solution{Kind: Coloring, Coloring: map[graph.Node]int{1: 0, 2: 1, 3: 0, 4: 2}}},
		{"conflict", Spec{Kind: Coloring, Colors: 2}, Solution{Kind: Coloring, Coloring: map[graph.Node]int{1: 0, 2: 0, 3: 1, 4: 1}}},
		{"adjacent selection", Spec{Kind: IndependentSet, Size: 2}, Solution{Kind: IndependentSet, Nodes: []graph.Node{1, 2}}},
		{"small selection", Spec{Kind: IndependentSet, Size: 3}, Solution{Kind: IndependentSet, Nodes: []graph.Node{1, 3}}},
		{"non adjacent clique", Spec{Kind: Clique, Size: 2}, Solution{Kind: Clique, Nodes: []graph.Node{1, 3}}},
		{"repeated node", Spec{Kind: Clique, Size: 2}, Solution{Kind: Clique, Nodes: []graph.Node{1, 1}}},
		{"broken edge", Spec{Kind: Isomorphism, Target: square}, Solution{Kind: Isomorphism, Mapping: map[graph.Node]graph.Node{1: 1, 2: 3, 3: 2, 4: 4}}},
		{"ignored pin", Spec{Kind: Isomorphism, Target: square, Mapping: map[graph.Node]graph.Node{1: 2}}, Solution{Kind: Isomorphism, Mapping: map[graph.Node]graph.Node{1: 1, 2: 2, 3: 3, 4: 4}}},
	}

	for _, scenario := range scenarios {
		assert.ErrorIs(t, Verify(square, scenario.spec, scenario.solution), ErrUnsound, scenario.name)
	}
	assert.ErrorContains(t, Verify(square, scenarios[2].spec, scenarios[2].solution), "node 4 has color 2 outside 0..1")

	assert.NoError(t, Verify(square, Spec{Kind: Isomorphism, Target: square}, Solution{Kind: Isomorphism, Mapping: map[graph.Node]graph.Node{1: 2, 2: 3, 3: 4, 4: 1}}))
}
