package sat

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDIMACS(t *testing.T) {
	sat := SAT{Variables: 3, Clauses: [][]int64{{1, -2}, {3}, {}}}

	assert.Equal(t, "p cnf 3 3\n1 -2 0\n3 0\n0\n", sat.ToDIMACS())

	var buffer bytes.Buffer
	require.NoError(t, sat.WriteDIMACS(&buffer))
	assert.Equal(t, sat.ToDIMACS(), buffer.String())
}

func TestParseDIMACS(t *testing.T) {
	t.Run("Clauses spanning lines and empty clauses", func(t *testing.T) {
		//** Arrange
		input := "c comment\np cnf 3 3\n1 -2\n0 3 0\n0\n"

		//** Act
		sat, err := ParseDIMACS(strings.NewReader(input))

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, uint64(3), sat.Variables)
		assert.Equal(t, [][]int64{{1, -2}, {3}, {}}, sat.Clauses)
	})

	t.Run("Missing problem line", func(t *testing.T) {
		sat, err := ParseDIMACS(strings.NewReader("1 -7 0\n2"))

		require.NoError(t, err)
		assert.Equal(t, uint64(7), sat.Variables)
		assert.Equal(t, [][]int64{{1, -7}, {2}}, sat.Clauses)
	})

	t.Run("SATLIB trailer and inner comments", func(t *testing.T) {
		sat, err := ParseDIMACS(strings.NewReader("p cnf 4 2\n1 -4 0\nc between\n2 0\n%\n0\n"))

		require.NoError(t, err)
		assert.Equal(t, uint64(4), sat.Variables)
		assert.Equal(t, [][]int64{{1, -4}, {2}}, sat.Clauses)
	})

	t.Run("Round trip", func(t *testing.T) {
		//** Arrange
		formula := SAT{Variables: 5, Clauses: [][]int64{{1, -2, 5}, {-3}, {2, 4}, {}}}

		//** Act
		parsed, err := ParseDIMACS(strings.NewReader(formula.ToDIMACS()))

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, formula, parsed)
	})

	t.Run("Empty input", func(t *testing.T) {
		sat, err := ParseDIMACS(strings.NewReader(""))

		require.NoError(t, err)
		assert.Zero(t, sat.Variables)
		assert.Empty(t, sat.Clauses)
	})

	t.Run("Invalid inputs", func(t *testing.T) {
		for _, input := range []string{"p dnf 1 1\n1 0\n", "p cnf x 1\n", "p cnf 1 1\n2 0\n", "p cnf 1 1\na 0\n"} {
			_, err := ParseDIMACS(strings.NewReader(input))
			assert.Error(t, err, input)
		}
	})
}

func TestParseSolution(t *testing.T) {
	output := "c kissat\ns SATISFIABLE\nv 1 -2 3\nv -4 5 0\n"

	solution, err := ParseSolution(output)

	require.NoError(t, err)
	assert.Equal(t, SATSolution{1, -2, 3, -4, 5}, solution)

	solution, err = ParseSolution("s SATISFIABLE\nv 0\n")
	require.NoError(t, err)
	assert.NotNil(t, solution)
	assert.Empty(t, solution)

	_, err = ParseSolution("v 1 x 0")
	assert.Error(t, err)
}

func TestParseMinisatResult(t *testing.T) {
	solution, err := parseMinisatResult("SAT\n-1 2 -3 0\n")
	require.NoError(t, err)
	assert.Equal(t, SATSolution{-1, 2, -3}, solution)

	_, err = parseMinisatResult("UNSAT\n")
	assert.Error(t, err)
}

func TestParseGlucoseResult(t *testing.T) {
	solution, err := parseGlucoseResult("SAT\n1 -2 3 0\n")
	require.NoError(t, err)
	assert.Equal(t, SATSolution{1, -2, 3}, solution)

	solution, err = parseGlucoseResult("-1 2 0")
	require.NoError(t, err)
	assert.Equal(t, SATSolution{-1, 2}, solution)

	_, err = parseGlucoseResult("SAT\n1 x 0")
	assert.Error(t, err)
}

func TestModel(t *testing.T) {
	model := SATSolution{1, -2, 4}.Model()

	assert.True(t, model.Value(1))
	assert.False(t, model.Value(2))
	assert.False(t, model.Value(3))
	assert.True(t, model.Holds(-3))
	assert.True(t, model.Holds(4))

	assert.Nil(t, SATSolution{1, -1}.Model())
	assert.Nil(t, SATSolution{0}.Model())
}

func TestExtend(t *testing.T) {
	base := SAT{Variables: 2, Clauses: [][]int64{{1, 2}}}

	extended := base.Extend([]int64{-1}, []int64{-2})

	assert.Len(t, base.Clauses, 1)
	assert.Equal(t, [][]int64{{1, 2}, {-1}, {-2}}, extended.Clauses)
	assert.False(t, extended.Satisfied(SATSolution{-1, -2}))
	assert.True(t, base.Satisfied(SATSolution{-1, 2}))
	assert.False(t, base.Satisfied(nil))
}

func TestGenerateSATInstance(t *testing.T) {
	instance := GenerateSATInstance(7, 5, 20)

	assert.Equal(t, instance, GenerateSATInstance(7, 5, 20))
	assert.Equal(t, uint64(5), instance.Variables)
	require.Len(t, instance.Clauses, 20)
	for _, clause := range instance.Clauses {
		require.Len(t, clause, 3)
		variables := map[int64]bool{}
		for _, literal := range clause {
			assert.NotZero(t, literal)
			assert.LessOrEqual(t, abs(literal), int64(5))
			variables[abs(literal)] = true
		}
		assert.Len(t, variables, 3, "clause %v repeats a variable", clause)
	}
}

func TestGeneratePigeonhole(t *testing.T) {
	instance := GeneratePigeonhole(3, 2)

	assert.Equal(t, uint64(6), instance.Variables)
	// One clause per pigeon and one per pair of pigeons per hole
	assert.Len(t, instance.Clauses, 3+3*2)
}
