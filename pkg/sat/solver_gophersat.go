package sat

import (
	"github.com/crillab/gophersat/solver"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type gophersatSolver struct{}

// NewGophersatSolver returns an in-process solver backed by gophersat's CDCL engine
func NewGophersatSolver() SATSolver {
	return &gophersatSolver{}
}

func (gophersat *gophersatSolver) Solve(sat SAT) (SATSolution, error) {
	if err := validate(Gophersat, sat); err != nil {
		return nil, err
	}
	if solution, decided := decideTrivially(sat); decided {
		return solution, nil
	}

	clauses := lo.Map(sat.Clauses, func(clause []int64, _ int) []int {
		return lo.Map(clause, func(literal int64, _ int) int { return int(literal) })
	})

	engine := solver.New(solver.ParseSlice(clauses))
	switch engine.Solve() {
	case solver.Unsat:
		return nil, nil
	case solver.Sat:
	default:
		return nil, &OracleError{Solver: Gophersat, Err: errors.New("search ended without a decision")}
	}

	// Index i of the model holds the value of variable i+1
	model := engine.Model()
	solution := make(SATSolution, len(model))
	for i, value := range model {
		literal := int64(i + 1)
		if !value {
			literal = -literal
		}
		solution[i] = literal
	}
	return solution, nil
}
