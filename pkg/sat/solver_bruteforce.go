package sat

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type bruteforceSolver struct {
	maxVariables int
}

// NewBruteforceSolver returns a reference solver that tries every assignment of the variables
// occurring in the formula. Formulas with more than maxVariables such variables are rejected.
func NewBruteforceSolver(maxVariables int) SATSolver {
	return &bruteforceSolver{maxVariables: maxVariables}
}

func (solver *bruteforceSolver) Solve(sat SAT) (SATSolution, error) {
	if err := validate(Bruteforce, sat); err != nil {
		return nil, err
	}
	if solution, decided := decideTrivially(sat); decided {
		return solution, nil
	}

	variables := lo.Uniq(lo.FlatMap(sat.Clauses, func(clause []int64, _ int) []int64 {
		return lo.Map(clause, func(literal int64, _ int) int64 { return abs(literal) })
	}))
	slices.Sort(variables)
	if len(variables) > solver.maxVariables || len(variables) > 62 {
		return nil, &OracleError{
			Solver: Bruteforce,
			Err:    errors.Errorf("%d variables exceed the limit of %d", len(variables), solver.maxVariables),
		}
	}

	position := make(map[int64]uint, len(variables))
	for i, variable := range variables {
		position[variable] = uint(i)
	}

	// Bit i of the assignment holds the value of variables[i]
	holds := func(assignment uint64, literal int64) bool {
		value := assignment&(1<<position[abs(literal)]) != 0
		return value == (literal > 0)
	}

	for assignment := uint64(0); assignment < 1<<len(variables); assignment++ {
		satisfied := lo.EveryBy(sat.Clauses, func(clause []int64) bool {
			return lo.SomeBy(clause, func(literal int64) bool { return holds(assignment, literal) })
		})
		if !satisfied {
			continue
		}

		return lo.Map(variables, func(variable int64, _ int) int64 {
			if holds(assignment, variable) {
				return variable
			}
			return -variable
		}), nil
	}
	return nil, nil
}
